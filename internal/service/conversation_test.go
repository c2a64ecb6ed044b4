package service

import (
	"context"
	"testing"
	"time"

	"banking-chatbot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key starts a new conversation", func(t *testing.T) {
		repo := &fakeConversationRepo{}
		svc := NewConversationService(testLogger(t), repo, &fakeUnitOfWork{})

		conversation, err := svc.ResolveOrCreate(ctx, "CUST001", "")
		require.NoError(t, err)
		assert.NotEmpty(t, conversation.ConversationID)
		assert.Equal(t, "CUST001", conversation.CustomerID)
		assert.True(t, conversation.IsActive)
		assert.Len(t, repo.conversations, 1)
	})

	t.Run("known key for the same customer is reused", func(t *testing.T) {
		repo := &fakeConversationRepo{}
		svc := NewConversationService(testLogger(t), repo, &fakeUnitOfWork{})

		first, err := svc.ResolveOrCreate(ctx, "CUST001", "")
		require.NoError(t, err)

		second, err := svc.ResolveOrCreate(ctx, "CUST001", first.ConversationID)
		require.NoError(t, err)
		assert.Equal(t, first.ConversationID, second.ConversationID)
		assert.Len(t, repo.conversations, 1)
	})

	t.Run("another customer's key is never reused", func(t *testing.T) {
		repo := &fakeConversationRepo{}
		svc := NewConversationService(testLogger(t), repo, &fakeUnitOfWork{})

		foreign, err := svc.ResolveOrCreate(ctx, "CUST001", "")
		require.NoError(t, err)

		mine, err := svc.ResolveOrCreate(ctx, "CUST002", foreign.ConversationID)
		require.NoError(t, err)
		assert.NotEqual(t, foreign.ConversationID, mine.ConversationID)
		assert.Equal(t, "CUST002", mine.CustomerID)
		assert.Len(t, repo.conversations, 2)
	})

	t.Run("unknown key starts fresh", func(t *testing.T) {
		repo := &fakeConversationRepo{}
		svc := NewConversationService(testLogger(t), repo, &fakeUnitOfWork{})

		conversation, err := svc.ResolveOrCreate(ctx, "CUST001", "no-such-key")
		require.NoError(t, err)
		assert.NotEqual(t, "no-such-key", conversation.ConversationID)
	})
}

func TestAppendMessageAndHistory(t *testing.T) {
	ctx := context.Background()
	repo := &fakeConversationRepo{}
	svc := NewConversationService(testLogger(t), repo, &fakeUnitOfWork{})

	conversation, err := svc.ResolveOrCreate(ctx, "CUST001", "")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, svc.AppendMessage(ctx, conversation, &model.Message{Role: model.RoleUser, Content: "hello", Timestamp: base}))
	require.NoError(t, svc.AppendMessage(ctx, conversation, &model.Message{Role: model.RoleAssistant, Content: "hi there", Timestamp: base.Add(time.Second)}))

	history, err := svc.History(ctx, conversation)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.RoleUser, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, model.RoleAssistant, history[1].Role)

	// Appending bumps the conversation's activity stamp.
	assert.Equal(t, base.Add(time.Second), repo.conversations[0].LastActivity)
}

func TestGetWithMessages(t *testing.T) {
	ctx := context.Background()
	repo := &fakeConversationRepo{}
	svc := NewConversationService(testLogger(t), repo, &fakeUnitOfWork{})

	t.Run("unknown conversation", func(t *testing.T) {
		_, err := svc.GetWithMessages(ctx, "missing")
		assert.ErrorIs(t, err, ErrConversationNotFound)
	})

	t.Run("messages come back in timestamp order", func(t *testing.T) {
		conversation, err := svc.ResolveOrCreate(ctx, "CUST001", "")
		require.NoError(t, err)

		base := time.Now()
		require.NoError(t, svc.AppendMessage(ctx, conversation, &model.Message{Role: model.RoleAssistant, Content: "second", Timestamp: base.Add(time.Second)}))
		require.NoError(t, svc.AppendMessage(ctx, conversation, &model.Message{Role: model.RoleUser, Content: "first", Timestamp: base}))

		loaded, err := svc.GetWithMessages(ctx, conversation.ConversationID)
		require.NoError(t, err)
		require.Len(t, loaded.Messages, 2)
		assert.Equal(t, "first", loaded.Messages[0].Content)
		assert.Equal(t, "second", loaded.Messages[1].Content)
	})
}
