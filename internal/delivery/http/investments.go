package http

import (
	"errors"
	"net/http"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/service"
	"banking-chatbot/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupInvestments(base *echo.Group) {
	investments := base.Group("/investments")
	{
		investments.GET("", h.ListInvestments)
		investments.POST("", h.CreateInvestment)
		investments.GET("/:investment_id", h.GetInvestment)
		investments.PUT("/:investment_id", h.UpdateInvestment)
		investments.DELETE("/:investment_id", h.DeleteInvestment)
	}
}

// ListInvestments supports customer_id, product_type and risk_level query
// filters, best returns first.
func (h *HttpAPIHandler) ListInvestments(c echo.Context) error {
	filter := dto.InvestmentFilter{
		CustomerID: c.QueryParam("customer_id"),
	}
	if productType := c.QueryParam("product_type"); productType != "" {
		filter.ProductType = utils.ToPointer(productType)
	}
	if riskLevel := c.QueryParam("risk_level"); riskLevel != "" {
		filter.RiskLevel = utils.ToPointer(riskLevel)
	}

	investments, err := h.service.RecordService.ListInvestments(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, investments)
}

func (h *HttpAPIHandler) CreateInvestment(c echo.Context) error {
	var req dto.InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	inv, err := h.service.RecordService.CreateInvestment(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *HttpAPIHandler) GetInvestment(c echo.Context) error {
	inv, err := h.service.RecordService.GetInvestment(c.Request().Context(), c.Param("investment_id"))
	if err != nil {
		if errors.Is(err, service.ErrInvestmentNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Investment not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *HttpAPIHandler) UpdateInvestment(c echo.Context) error {
	var req dto.InvestmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	inv, err := h.service.RecordService.UpdateInvestment(c.Request().Context(), c.Param("investment_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvestmentNotFound):
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Investment not found"))
		case errors.Is(err, service.ErrCustomerNotFound):
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Customer not found"))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
		}
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *HttpAPIHandler) DeleteInvestment(c echo.Context) error {
	if err := h.service.RecordService.DeleteInvestment(c.Request().Context(), c.Param("investment_id")); err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.NoContent(http.StatusNoContent)
}
