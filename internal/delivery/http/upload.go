package http

import (
	"errors"
	"net/http"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupUpload(base *echo.Group) {
	base.POST("/upload", h.UploadFile)
}

// UploadFile accepts a multipart CSV upload and imports its rows for the
// given customer.
func (h *HttpAPIHandler) UploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("No file provided"))
	}

	fileType := c.FormValue("file_type")
	customerID := c.FormValue("customer_id")
	if fileType == "" || customerID == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("file_type and customer_id are required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to read uploaded file", nil))
	}
	defer src.Close()

	uploadedFile, err := h.service.UploadService.ProcessUpload(c.Request().Context(), fileHeader.Filename, fileType, customerID, src)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":          "File uploaded and processed successfully",
		"records_imported": uploadedFile.RecordsImported,
	})
}
