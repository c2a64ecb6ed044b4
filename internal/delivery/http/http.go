package http

import (
	"context"

	"banking-chatbot/internal/service"
	"banking-chatbot/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api", middleware.NewRateLimiterMiddleware())

	h.SetupChat(base)
	h.SetupContext(base)
	h.SetupConversations(base)
	h.SetupCustomers(base)
	h.SetupTransactions(base)
	h.SetupInvestments(base)
	h.SetupUpload(base)
	h.SetupJobs(base)
}
