package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/logger"
	"banking-chatbot/pkg/utils"

	"gorm.io/datatypes"
)

type ChatService interface {
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	cfg                 *config.Config
	log                 *logger.Logger
	customerRepo        repository.CustomerRepository
	aiRepo              repository.AIRepository
	contextService      ContextService
	conversationService ConversationService
}

func NewChatService(
	cfg *config.Config,
	log *logger.Logger,
	customerRepo repository.CustomerRepository,
	aiRepo repository.AIRepository,
	contextService ContextService,
	conversationService ConversationService,
) ChatService {
	return &chatService{
		cfg:                 cfg,
		log:                 log,
		customerRepo:        customerRepo,
		aiRepo:              aiRepo,
		contextService:      contextService,
		conversationService: conversationService,
	}
}

// Chat runs one full turn: verify the customer, resolve the conversation,
// persist the user message, classify intent, build the financial context,
// generate a grounded reply and persist it. Generation failures degrade to a
// fallback text, they never fail the request.
func (s *chatService) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	customer, err := s.customerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	conversation, err := s.conversationService.ResolveOrCreate(ctx, req.CustomerID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	userMsg := &model.Message{
		Role:      model.RoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	}
	if err := s.conversationService.AppendMessage(ctx, conversation, userMsg); err != nil {
		return nil, err
	}

	history, err := s.conversationService.History(ctx, conversation)
	if err != nil {
		return nil, err
	}

	intent, err := s.aiRepo.ClassifyIntent(ctx, req.Message)
	if err != nil {
		s.log.WarnContext(ctx, "intent classification fell back to general query", logger.ErrorField(err))
		intent = dto.IntentGeneralQuery
	}

	contextData, err := s.contextService.GetCustomerContext(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	previousThought := lastAssistantThought(history)

	responseText := dto.FallbackGenerationError
	var thoughtSignature *string
	result, genErr := s.aiRepo.GenerateResponse(ctx, req.Message, contextData.Customer, contextData, history, previousThought)
	switch {
	case genErr == nil:
		responseText = result.Response
		thoughtSignature = result.ThoughtSignature
	case errors.Is(genErr, repository.ErrEmptyCompletion):
		responseText = dto.FallbackEmptyCompletion
		s.log.WarnContext(ctx, "generation returned empty completion",
			logger.StringField("conversation_id", conversation.ConversationID))
	default:
		s.log.ErrorContextWithAlert(ctx, "generation failed, serving fallback",
			logger.StringField("conversation_id", conversation.ConversationID),
			logger.ErrorField(genErr))
	}

	dataSources, err := json.Marshal([]string{
		dto.DataSourceTransactions,
		dto.DataSourceInvestments,
		dto.DataSourceCustomerProfile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode data sources: %w", err)
	}

	assistantMsg := &model.Message{
		Role:             model.RoleAssistant,
		Content:          responseText,
		Timestamp:        time.Now(),
		Intent:           utils.ToPointer(intent),
		DataSources:      datatypes.JSON(dataSources),
		ThoughtSignature: thoughtSignature,
	}
	if err := s.conversationService.AppendMessage(ctx, conversation, assistantMsg); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		ConversationID: conversation.ConversationID,
		Response:       responseText,
		Intent:         intent,
		Suggestions:    s.aiRepo.FollowUpSuggestions(intent),
		DataContext: dto.DataContext{
			TransactionCount: len(contextData.Transactions),
			InvestmentCount:  len(contextData.Investments),
		},
	}, nil
}

// lastAssistantThought walks the history backwards for the most recent
// assistant turn's thought signature, if any.
func lastAssistantThought(history []dto.HistoryEntry) *string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == model.RoleAssistant {
			return history[i].ThoughtSignature
		}
	}
	return nil
}
