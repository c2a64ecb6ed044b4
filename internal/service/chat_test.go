package service

import (
	"context"
	"testing"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T, customerRepo *fakeCustomerRepo, aiRepo *fakeAIRepo) (ChatService, *fakeConversationRepo) {
	t.Helper()

	conversationRepo := &fakeConversationRepo{}
	contextSvc := NewContextService(testConfig(), testLogger(t), newFakeCache(), customerRepo, &fakeTransactionRepo{}, &fakeInvestmentRepo{})
	conversationSvc := NewConversationService(testLogger(t), conversationRepo, &fakeUnitOfWork{})
	chatSvc := NewChatService(testConfig(), testLogger(t), customerRepo, aiRepo, contextSvc, conversationSvc)
	return chatSvc, conversationRepo
}

func TestChat(t *testing.T) {
	ctx := context.Background()
	customer := model.Customer{CustomerID: "CUST001", Name: "Priya", RiskLevel: "medium"}

	t.Run("unknown customer creates nothing", func(t *testing.T) {
		aiRepo := &fakeAIRepo{intent: dto.IntentGeneralQuery}
		svc, conversationRepo := newChatFixture(t, newFakeCustomerRepo(), aiRepo)

		_, err := svc.Chat(ctx, dto.ChatRequest{CustomerID: "CUST404", Message: "hi"})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
		assert.Empty(t, conversationRepo.conversations)
		assert.Empty(t, conversationRepo.messages)
		assert.Zero(t, aiRepo.generateSeen)
	})

	t.Run("successful turn persists both messages", func(t *testing.T) {
		aiRepo := &fakeAIRepo{
			intent: dto.IntentTransactionAnalysis,
			generated: &dto.GenerateResult{
				Response:         "Here's where your money went.",
				ThoughtSignature: utils.ToPointer("sig-1"),
				ModelUsed:        "gemini-2.0-flash",
			},
		}
		svc, conversationRepo := newChatFixture(t, newFakeCustomerRepo(customer), aiRepo)

		resp, err := svc.Chat(ctx, dto.ChatRequest{CustomerID: "CUST001", Message: "where did my money go?"})
		require.NoError(t, err)
		assert.Equal(t, "Here's where your money went.", resp.Response)
		assert.Equal(t, dto.IntentTransactionAnalysis, resp.Intent)
		assert.NotEmpty(t, resp.ConversationID)
		assert.NotEmpty(t, resp.Suggestions)

		require.Len(t, conversationRepo.messages, 2)
		user, assistant := conversationRepo.messages[0], conversationRepo.messages[1]
		assert.Equal(t, model.RoleUser, user.Role)
		assert.Equal(t, "where did my money go?", user.Content)
		assert.Equal(t, model.RoleAssistant, assistant.Role)
		require.NotNil(t, assistant.Intent)
		assert.Equal(t, dto.IntentTransactionAnalysis, *assistant.Intent)
		require.NotNil(t, assistant.ThoughtSignature)
		assert.Equal(t, "sig-1", *assistant.ThoughtSignature)
		assert.JSONEq(t, `["transactions","investments","customer_profile"]`, string(assistant.DataSources))
	})

	t.Run("generator failure persists the fallback", func(t *testing.T) {
		aiRepo := &fakeAIRepo{intent: dto.IntentGeneralQuery, generateErr: errRepoDown}
		svc, conversationRepo := newChatFixture(t, newFakeCustomerRepo(customer), aiRepo)

		resp, err := svc.Chat(ctx, dto.ChatRequest{CustomerID: "CUST001", Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, dto.FallbackGenerationError, resp.Response)

		require.Len(t, conversationRepo.messages, 2)
		assert.Equal(t, dto.FallbackGenerationError, conversationRepo.messages[1].Content)
		assert.Nil(t, conversationRepo.messages[1].ThoughtSignature)
	})

	t.Run("empty completion gets its own fallback", func(t *testing.T) {
		aiRepo := &fakeAIRepo{intent: dto.IntentGeneralQuery, generateErr: repository.ErrEmptyCompletion}
		svc, _ := newChatFixture(t, newFakeCustomerRepo(customer), aiRepo)

		resp, err := svc.Chat(ctx, dto.ChatRequest{CustomerID: "CUST001", Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, dto.FallbackEmptyCompletion, resp.Response)
	})

	t.Run("classification failure degrades to general query", func(t *testing.T) {
		aiRepo := &fakeAIRepo{
			intentErr: errRepoDown,
			generated: &dto.GenerateResult{Response: "Happy to help!"},
		}
		svc, _ := newChatFixture(t, newFakeCustomerRepo(customer), aiRepo)

		resp, err := svc.Chat(ctx, dto.ChatRequest{CustomerID: "CUST001", Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, dto.IntentGeneralQuery, resp.Intent)
		assert.Equal(t, "Happy to help!", resp.Response)
	})

	t.Run("turns in the same conversation stay threaded", func(t *testing.T) {
		aiRepo := &fakeAIRepo{intent: dto.IntentGeneralQuery, generated: &dto.GenerateResult{Response: "ok"}}
		svc, conversationRepo := newChatFixture(t, newFakeCustomerRepo(customer), aiRepo)

		first, err := svc.Chat(ctx, dto.ChatRequest{CustomerID: "CUST001", Message: "hi"})
		require.NoError(t, err)

		second, err := svc.Chat(ctx, dto.ChatRequest{CustomerID: "CUST001", Message: "more", ConversationID: first.ConversationID})
		require.NoError(t, err)
		assert.Equal(t, first.ConversationID, second.ConversationID)
		assert.Len(t, conversationRepo.conversations, 1)
		assert.Len(t, conversationRepo.messages, 4)
	})
}

func TestLastAssistantThought(t *testing.T) {
	sig := "sig-42"
	history := []dto.HistoryEntry{
		{Role: model.RoleUser, Content: "a"},
		{Role: model.RoleAssistant, Content: "b", ThoughtSignature: &sig},
		{Role: model.RoleUser, Content: "c"},
	}
	got := lastAssistantThought(history)
	require.NotNil(t, got)
	assert.Equal(t, "sig-42", *got)

	assert.Nil(t, lastAssistantThought([]dto.HistoryEntry{{Role: model.RoleUser, Content: "a"}}))
	assert.Nil(t, lastAssistantThought(nil))
}
