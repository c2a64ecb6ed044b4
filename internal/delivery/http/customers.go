package http

import (
	"errors"
	"net/http"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupCustomers(base *echo.Group) {
	customers := base.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:customer_id", h.GetCustomer)
		customers.PUT("/:customer_id", h.UpdateCustomer)
		customers.DELETE("/:customer_id", h.DeleteCustomer)
	}
}

func (h *HttpAPIHandler) ListCustomers(c echo.Context) error {
	customers, err := h.service.RecordService.ListCustomers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *HttpAPIHandler) GetCustomer(c echo.Context) error {
	customer, err := h.service.RecordService.GetCustomer(c.Request().Context(), c.Param("customer_id"))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *HttpAPIHandler) CreateCustomer(c echo.Context) error {
	var req dto.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	customer, err := h.service.RecordService.CreateCustomer(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *HttpAPIHandler) UpdateCustomer(c echo.Context) error {
	var req dto.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	customer, err := h.service.RecordService.UpdateCustomer(c.Request().Context(), c.Param("customer_id"), req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *HttpAPIHandler) DeleteCustomer(c echo.Context) error {
	if err := h.service.RecordService.DeleteCustomer(c.Request().Context(), c.Param("customer_id")); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.NoContent(http.StatusNoContent)
}
