package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/logger"
)

type ConversationCleanUpPayload struct {
	IdleDays int `json:"idle_days"`
}

// ConversationCleanUpStrategy marks conversations inactive once they have
// seen no messages for the configured number of days. Deactivated threads
// stay readable through the history endpoint.
type ConversationCleanUpStrategy struct {
	cfg              *config.Config
	log              *logger.Logger
	ConversationRepo repository.ConversationRepository
}

func NewConversationCleanUpStrategy(cfg *config.Config, log *logger.Logger, conversationRepo repository.ConversationRepository) *ConversationCleanUpStrategy {
	return &ConversationCleanUpStrategy{
		cfg:              cfg,
		log:              log,
		ConversationRepo: conversationRepo,
	}
}

func (s *ConversationCleanUpStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	var payload ConversationCleanUpPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		s.log.ErrorContext(ctx, "Failed to unmarshal job payload", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to unmarshal job payload: %v", err)}, fmt.Errorf("failed to unmarshal job payload: %w", err)
	}
	if payload.IdleDays <= 0 {
		payload.IdleDays = 30
	}

	cutoff := time.Now().AddDate(0, 0, -payload.IdleDays)
	deactivated, err := s.ConversationRepo.DeactivateIdleBefore(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to deactivate idle conversations", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to deactivate idle conversations: %v", err)}, fmt.Errorf("failed to deactivate idle conversations: %w", err)
	}

	s.log.InfoContext(ctx, "Deactivated idle conversations",
		logger.IntField("deactivated", int(deactivated)),
		logger.IntField("idle_days", payload.IdleDays),
	)

	return JobResult{
		ExitCode: JOB_EXIT_CODE_SUCCESS,
		Output:   fmt.Sprintf("deactivated %d conversations idle since %s", deactivated, cutoff.Format("2006-01-02")),
	}, nil
}

func (s *ConversationCleanUpStrategy) GetType() JobType {
	return JobTypeConversationCleanup
}
