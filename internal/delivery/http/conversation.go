package http

import (
	"errors"
	"net/http"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupConversations(base *echo.Group) {
	base.GET("/conversation/:conversation_id", h.GetConversationHistory)
}

// GetConversationHistory returns a conversation with its messages in
// timestamp order.
func (h *HttpAPIHandler) GetConversationHistory(c echo.Context) error {
	conversationID := c.Param("conversation_id")

	conversation, err := h.service.ConversationService.GetWithMessages(c.Request().Context(), conversationID)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse("Conversation not found"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, conversation)
}
