package dto

import "time"

type ChatRequest struct {
	CustomerID     string `json:"customer_id" validate:"required"`
	Message        string `json:"message" validate:"required"`
	ConversationID string `json:"conversation_id"`
}

type DataContext struct {
	TransactionCount int `json:"transaction_count"`
	InvestmentCount  int `json:"investment_count"`
}

type ChatResponse struct {
	ConversationID string      `json:"conversation_id"`
	Response       string      `json:"response"`
	Intent         string      `json:"intent"`
	Suggestions    []string    `json:"suggestions"`
	DataContext    DataContext `json:"data_context"`
}

// HistoryEntry is one prior turn fed back into the generation service.
type HistoryEntry struct {
	Role             string    `json:"role"`
	Content          string    `json:"content"`
	ThoughtSignature *string   `json:"thought_signature,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
