package repository

import (
	"context"
	"time"

	"banking-chatbot/internal/model"
	"banking-chatbot/pkg/utils"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	GetByConversationID(ctx context.Context, conversationID string, opts ...utils.DBOption) (*model.Conversation, error)
	Create(ctx context.Context, conversation *model.Conversation, opts ...utils.DBOption) error
	CreateMessage(ctx context.Context, message *model.Message, opts ...utils.DBOption) error
	UpdateLastActivity(ctx context.Context, conversationID uint, at time.Time, opts ...utils.DBOption) error
	GetMessages(ctx context.Context, conversationID uint, opts ...utils.DBOption) ([]model.Message, error)
	DeactivateIdleBefore(ctx context.Context, cutoff time.Time, opts ...utils.DBOption) (int64, error)
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByConversationID(ctx context.Context, conversationID string, opts ...utils.DBOption) (*model.Conversation, error) {
	var conversation model.Conversation
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("conversation_id = ?", conversationID).First(&conversation)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	return &conversation, nil
}

func (r *conversationRepository) Create(ctx context.Context, conversation *model.Conversation, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(conversation).Error
}

func (r *conversationRepository) CreateMessage(ctx context.Context, message *model.Message, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(message).Error
}

func (r *conversationRepository) UpdateLastActivity(ctx context.Context, conversationID uint, at time.Time, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_activity", at).Error
}

// GetMessages returns the conversation history in canonical order, ascending
// by timestamp.
func (r *conversationRepository) GetMessages(ctx context.Context, conversationID uint, opts ...utils.DBOption) ([]model.Message, error) {
	var messages []model.Message
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	if err := tx.Where("conversation_id = ?", conversationID).
		Order("timestamp ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *conversationRepository) DeactivateIdleBefore(ctx context.Context, cutoff time.Time, opts ...utils.DBOption) (int64, error) {
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.Conversation{}).
		Where("is_active = ? AND last_activity < ?", true, cutoff).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
