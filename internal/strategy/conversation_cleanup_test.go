package strategy

import (
	"context"
	"testing"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/model"
	"banking-chatbot/pkg/logger"
	"banking-chatbot/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type stubConversationRepo struct {
	cutoff      time.Time
	deactivated int64
	err         error
}

func (r *stubConversationRepo) GetByConversationID(ctx context.Context, conversationID string, opts ...utils.DBOption) (*model.Conversation, error) {
	return nil, nil
}

func (r *stubConversationRepo) Create(ctx context.Context, conversation *model.Conversation, opts ...utils.DBOption) error {
	return nil
}

func (r *stubConversationRepo) CreateMessage(ctx context.Context, message *model.Message, opts ...utils.DBOption) error {
	return nil
}

func (r *stubConversationRepo) UpdateLastActivity(ctx context.Context, conversationID uint, at time.Time, opts ...utils.DBOption) error {
	return nil
}

func (r *stubConversationRepo) GetMessages(ctx context.Context, conversationID uint, opts ...utils.DBOption) ([]model.Message, error) {
	return nil, nil
}

func (r *stubConversationRepo) DeactivateIdleBefore(ctx context.Context, cutoff time.Time, opts ...utils.DBOption) (int64, error) {
	r.cutoff = cutoff
	return r.deactivated, r.err
}

func cleanupFixture(t *testing.T, repo *stubConversationRepo) *ConversationCleanUpStrategy {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewConversationCleanUpStrategy(&config.Config{}, log, repo)
}

func TestConversationCleanUpExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("uses idle_days from the payload", func(t *testing.T) {
		repo := &stubConversationRepo{deactivated: 4}
		s := cleanupFixture(t, repo)

		job := &model.Job{Payload: datatypes.JSON(`{"idle_days": 7}`)}
		result, err := s.Execute(ctx, job)
		require.NoError(t, err)

		assert.Equal(t, JOB_EXIT_CODE_SUCCESS, result.ExitCode)
		assert.Contains(t, result.Output, "deactivated 4 conversations")
		assert.WithinDuration(t, time.Now().AddDate(0, 0, -7), repo.cutoff, time.Minute)
	})

	t.Run("defaults to thirty idle days", func(t *testing.T) {
		repo := &stubConversationRepo{}
		s := cleanupFixture(t, repo)

		_, err := s.Execute(ctx, &model.Job{Payload: datatypes.JSON(`{}`)})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), repo.cutoff, time.Minute)
	})

	t.Run("bad payload fails the job", func(t *testing.T) {
		s := cleanupFixture(t, &stubConversationRepo{})

		result, err := s.Execute(ctx, &model.Job{Payload: datatypes.JSON(`not-json`)})
		assert.Error(t, err)
		assert.Equal(t, JOB_EXIT_CODE_FAILED, result.ExitCode)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		repo := &stubConversationRepo{err: assert.AnError}
		s := cleanupFixture(t, repo)

		result, err := s.Execute(ctx, &model.Job{Payload: datatypes.JSON(`{"idle_days": 1}`)})
		assert.Error(t, err)
		assert.Equal(t, JOB_EXIT_CODE_FAILED, result.ExitCode)
	})
}

func TestConversationCleanUpGetType(t *testing.T) {
	s := &ConversationCleanUpStrategy{}
	assert.Equal(t, JobTypeConversationCleanup, s.GetType())
}
