package http

import (
	"errors"
	"net/http"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/service"
	"banking-chatbot/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTransactions(base *echo.Group) {
	transactions := base.Group("/transactions")
	{
		transactions.GET("", h.ListTransactions)
		transactions.POST("", h.CreateTransaction)
		transactions.GET("/:transaction_id", h.GetTransaction)
		transactions.PUT("/:transaction_id", h.UpdateTransaction)
		transactions.DELETE("/:transaction_id", h.DeleteTransaction)
	}
}

// ListTransactions supports customer_id and category query filters, newest
// first.
func (h *HttpAPIHandler) ListTransactions(c echo.Context) error {
	filter := dto.TransactionFilter{
		CustomerID: c.QueryParam("customer_id"),
	}
	if category := c.QueryParam("category"); category != "" {
		filter.Category = utils.ToPointer(category)
	}

	transactions, err := h.service.RecordService.ListTransactions(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, transactions)
}

func (h *HttpAPIHandler) CreateTransaction(c echo.Context) error {
	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	txn, err := h.service.RecordService.CreateTransaction(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusCreated, txn)
}

func (h *HttpAPIHandler) GetTransaction(c echo.Context) error {
	txn, err := h.service.RecordService.GetTransaction(c.Request().Context(), c.Param("transaction_id"))
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Transaction not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, txn)
}

func (h *HttpAPIHandler) UpdateTransaction(c echo.Context) error {
	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	txn, err := h.service.RecordService.UpdateTransaction(c.Request().Context(), c.Param("transaction_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Transaction not found"))
		case errors.Is(err, service.ErrCustomerNotFound):
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
		}
	}
	return c.JSON(http.StatusOK, txn)
}

func (h *HttpAPIHandler) DeleteTransaction(c echo.Context) error {
	if err := h.service.RecordService.DeleteTransaction(c.Request().Context(), c.Param("transaction_id")); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.NoContent(http.StatusNoContent)
}
