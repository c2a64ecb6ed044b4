package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one turn of a conversation. Messages are totally ordered by
// timestamp within a conversation, that order is the canonical history.
type Message struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ConversationID   uint           `gorm:"not null;index" json:"-"`
	Role             string         `gorm:"type:varchar(10);not null" json:"role"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	Timestamp        time.Time      `gorm:"not null;index" json:"timestamp"`
	Intent           *string        `gorm:"type:varchar(100)" json:"intent,omitempty"`
	DataSources      datatypes.JSON `gorm:"type:jsonb" json:"data_sources,omitempty"`
	ThoughtSignature *string        `gorm:"type:text" json:"thought_signature,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"-"`
}

func (Message) TableName() string {
	return "chat_messages"
}
