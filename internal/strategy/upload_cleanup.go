package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/logger"
)

type UploadCleanUpPayload struct {
	RetentionDays int `json:"retention_days"`
}

type UploadCleanUpResult struct {
	Table string `json:"table"`
	Total int64  `json:"total"`
	Error string `json:"error,omitempty"`
}

// UploadCleanUpStrategy removes processed upload files and their records
// past the retention window, and prunes old job history alongside.
type UploadCleanUpStrategy struct {
	cfg              *config.Config
	log              *logger.Logger
	UploadedFileRepo repository.UploadedFileRepository
	JobRepo          repository.JobRepository
}

func NewUploadCleanUpStrategy(cfg *config.Config, log *logger.Logger, uploadedFileRepo repository.UploadedFileRepository, jobRepo repository.JobRepository) *UploadCleanUpStrategy {
	return &UploadCleanUpStrategy{
		cfg:              cfg,
		log:              log,
		UploadedFileRepo: uploadedFileRepo,
		JobRepo:          jobRepo,
	}
}

func (s *UploadCleanUpStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	var payload UploadCleanUpPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		s.log.ErrorContext(ctx, "Failed to unmarshal job payload", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to unmarshal job payload: %v", err)}, fmt.Errorf("failed to unmarshal job payload: %w", err)
	}
	if payload.RetentionDays <= 0 {
		payload.RetentionDays = 90
	}

	cutoff := time.Now().AddDate(0, 0, -payload.RetentionDays)
	outputMsg := []UploadCleanUpResult{}

	files, err := s.UploadedFileRepo.ListProcessedBefore(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list stale uploads", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to list stale uploads: %v", err)}, fmt.Errorf("failed to list stale uploads: %w", err)
	}

	ids := make([]uint, 0, len(files))
	for _, file := range files {
		if err := os.Remove(file.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.WarnContext(ctx, "Failed to remove upload from disk",
				logger.ErrorField(err),
				logger.StringField("file_path", file.FilePath),
			)
			continue
		}
		ids = append(ids, file.ID)
	}

	var deletedUploads int64
	if len(ids) > 0 {
		deletedUploads, err = s.UploadedFileRepo.DeleteByIDs(ctx, ids)
		if err != nil {
			outputMsg = append(outputMsg, UploadCleanUpResult{
				Table: "uploaded_files",
				Total: deletedUploads,
				Error: fmt.Sprintf("failed to delete upload records older than %v: %v", cutoff, err),
			})
		}
	}
	if err == nil {
		outputMsg = append(outputMsg, UploadCleanUpResult{
			Table: "uploaded_files",
			Total: deletedUploads,
		})
	}

	deletedHistory, err := s.JobRepo.DeleteTaskHistoryOlderThan(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to prune job history", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		outputMsg = append(outputMsg, UploadCleanUpResult{
			Table: "task_execution_history",
			Total: deletedHistory,
			Error: fmt.Sprintf("failed to delete job history older than %v: %v", cutoff, err),
		})
	} else {
		outputMsg = append(outputMsg, UploadCleanUpResult{
			Table: "task_execution_history",
			Total: deletedHistory,
		})
	}

	res, err := json.Marshal(outputMsg)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to marshal output message: %v", err)}, fmt.Errorf("failed to marshal output message: %w", err)
	}
	return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: string(res)}, nil
}

func (s *UploadCleanUpStrategy) GetType() JobType {
	return JobTypeUploadCleanup
}
