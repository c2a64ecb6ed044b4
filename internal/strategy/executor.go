package strategy

import (
	"context"

	"banking-chatbot/internal/model"
)

type JobType string

const (
	JobTypeConversationCleanup JobType = "conversation_cleanup"
	JobTypeUploadCleanup       JobType = "upload_cleanup"
)

const (
	JOB_EXIT_CODE_SUCCESS int32 = 0
	JOB_EXIT_CODE_FAILED  int32 = 1
)

type JobResult struct {
	ExitCode int32
	Output   string
}

// JobExecutionStrategy runs one background job type. The job row's payload
// carries the per-job parameters.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, job *model.Job) (JobResult, error)
	GetType() JobType
}
