package http

import (
	"errors"
	"net/http"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupChat(base *echo.Group) {
	base.POST("/chat", h.Chat)
}

// Chat handles one conversational turn.
func (h *HttpAPIHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	resp, err := h.service.ChatService.Chat(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, resp)
}
