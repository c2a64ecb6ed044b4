package http

import (
	"net/http"
	"strconv"

	"banking-chatbot/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupContext(base *echo.Group) {
	base.GET("/context/:customer_id", h.GetCustomerContext)
	base.GET("/spending/:customer_id", h.GetSpendingByCategory)
	base.GET("/portfolio/:customer_id", h.GetPortfolioAllocation)
}

// GetCustomerContext returns the aggregated financial snapshot. An unknown
// customer yields an empty object, not a 404.
func (h *HttpAPIHandler) GetCustomerContext(c echo.Context) error {
	customerID := c.Param("customer_id")

	snapshot, err := h.service.ContextService.GetCustomerContext(c.Request().Context(), customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	if snapshot.Customer == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{})
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *HttpAPIHandler) GetSpendingByCategory(c echo.Context) error {
	customerID := c.Param("customer_id")

	months := 6
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("months must be a positive integer"))
		}
		months = parsed
	}

	spending, err := h.service.ContextService.GetSpendingByCategory(c.Request().Context(), customerID, months)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, spending)
}

func (h *HttpAPIHandler) GetPortfolioAllocation(c echo.Context) error {
	customerID := c.Param("customer_id")

	allocation, err := h.service.ContextService.GetPortfolioAllocation(c.Request().Context(), customerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, allocation)
}
