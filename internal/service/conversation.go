package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/logger"
	"banking-chatbot/pkg/utils"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrConversationNotFound = errors.New("conversation not found")
)

type ConversationService interface {
	ResolveOrCreate(ctx context.Context, customerID string, conversationID string) (*model.Conversation, error)
	AppendMessage(ctx context.Context, conversation *model.Conversation, message *model.Message) error
	History(ctx context.Context, conversation *model.Conversation) ([]dto.HistoryEntry, error)
	GetWithMessages(ctx context.Context, conversationID string) (*model.Conversation, error)
}

type conversationService struct {
	log              *logger.Logger
	conversationRepo repository.ConversationRepository
	unitOfWork       repository.UnitOfWork
}

func NewConversationService(log *logger.Logger, conversationRepo repository.ConversationRepository, unitOfWork repository.UnitOfWork) ConversationService {
	return &conversationService{
		log:              log,
		conversationRepo: conversationRepo,
		unitOfWork:       unitOfWork,
	}
}

// ResolveOrCreate returns the conversation for the given key if it exists
// AND belongs to the customer. A missing key, an unknown key, or a key owned
// by another customer all start a fresh conversation. One customer's turn
// can never land in another customer's thread.
func (s *conversationService) ResolveOrCreate(ctx context.Context, customerID string, conversationID string) (*model.Conversation, error) {
	if conversationID != "" {
		existing, err := s.conversationRepo.GetByConversationID(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve conversation: %w", err)
		}
		if existing != nil && existing.CustomerID == customerID {
			return existing, nil
		}
	}

	conversation := &model.Conversation{
		ConversationID: uuid.NewString(),
		CustomerID:     customerID,
		LastActivity:   time.Now(),
		IsActive:       true,
	}
	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	s.log.DebugContext(ctx, "started new conversation",
		logger.StringField("conversation_id", conversation.ConversationID),
		logger.StringField("customer_id", customerID),
	)

	return conversation, nil
}

// AppendMessage persists one turn and bumps the conversation's last-activity
// stamp in the same transaction.
func (s *conversationService) AppendMessage(ctx context.Context, conversation *model.Conversation, message *model.Message) error {
	message.ConversationID = conversation.ID
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	return s.unitOfWork.Run(func(opts ...utils.DBOption) error {
		if err := s.conversationRepo.CreateMessage(ctx, message, opts...); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		if err := s.conversationRepo.UpdateLastActivity(ctx, conversation.ID, message.Timestamp, opts...); err != nil {
			return fmt.Errorf("failed to update conversation activity: %w", err)
		}
		return nil
	})
}

// History returns every message of the conversation in timestamp order.
func (s *conversationService) History(ctx context.Context, conversation *model.Conversation) ([]dto.HistoryEntry, error) {
	messages, err := s.conversationRepo.GetMessages(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation history: %w", err)
	}

	entries := make([]dto.HistoryEntry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, dto.HistoryEntry{
			Role:             msg.Role,
			Content:          msg.Content,
			ThoughtSignature: msg.ThoughtSignature,
			Timestamp:        msg.Timestamp,
		})
	}
	return entries, nil
}

// GetWithMessages loads a conversation and its messages in timestamp order.
func (s *conversationService) GetWithMessages(ctx context.Context, conversationID string) (*model.Conversation, error) {
	conversation, err := s.conversationRepo.GetByConversationID(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}

	messages, err := s.conversationRepo.GetMessages(ctx, conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation messages: %w", err)
	}
	conversation.Messages = messages

	return conversation, nil
}
