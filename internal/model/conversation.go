package model

import "time"

type Conversation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"conversation_id"`
	CustomerID     string    `gorm:"not null;index" json:"customer_id"`
	StartedAt      time.Time `gorm:"autoCreateTime" json:"started_at"`
	LastActivity   time.Time `gorm:"not null" json:"last_activity"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	Customer       Customer  `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
	Messages       []Message `gorm:"foreignKey:ConversationID;references:ID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "chat_conversations"
}
