package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/logger"
	"banking-chatbot/pkg/utils"

	"github.com/robfig/cron/v3"
)

var ErrJobNotFound = errors.New("job not found")

type SchedulerService interface {
	Execute(ctx context.Context) error
	GetJobSchedule(ctx context.Context, param model.GetJobParam) ([]model.Job, error)
	RunJobTask(ctx context.Context, jobID uint) error
}

type schedulerService struct {
	cfg          *config.Config
	log          *logger.Logger
	cronParser   cron.Parser
	jobRepo      repository.JobRepository
	taskExecutor TaskExecutor
	semaphore    chan struct{}
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	jobRepo repository.JobRepository,
	taskExecutor TaskExecutor,
) SchedulerService {
	return &schedulerService{
		cfg:          cfg,
		log:          log,
		jobRepo:      jobRepo,
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		taskExecutor: taskExecutor,
		semaphore:    make(chan struct{}, cfg.Scheduler.MaxConcurrency),
	}
}

// Execute picks up every due schedule and dispatches it. Called on each tick
// of the scheduler loop.
func (s *schedulerService) Execute(ctx context.Context) error {
	schedules, err := s.jobRepo.FindJobsToSchedule(ctx, utils.WithPreload("Job"))
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to find jobs to schedule", logger.ErrorField(err))
		return fmt.Errorf("failed to find jobs to schedule: %w", err)
	}

	if len(schedules) == 0 {
		return nil
	}
	s.log.InfoContext(ctx, "Start running jobs",
		logger.IntField("job_count", len(schedules)),
		logger.IntField("max_concurrency", s.cfg.Scheduler.MaxConcurrency),
	)

	for _, schedule := range schedules {
		if ctx.Err() != nil {
			s.log.WarnContext(ctx, "Job execution cancelled", logger.ErrorField(ctx.Err()))
			return nil
		}

		if err := s.executeJob(ctx, schedule); err != nil {
			s.log.ErrorContextWithAlert(ctx, "Failed to execute job",
				logger.ErrorField(err),
				logger.IntField("job_id", int(schedule.JobID)),
				logger.IntField("schedule_id", int(schedule.ID)),
				logger.StringField("job_name", schedule.Job.Name),
				logger.StringField("job_type", schedule.Job.Type),
			)
		}
	}

	return nil
}

func (s *schedulerService) executeJob(ctx context.Context, schedule model.TaskSchedule) error {
	s.log.DebugContext(ctx, "Executing job",
		logger.IntField("job_id", int(schedule.JobID)),
		logger.IntField("schedule_id", int(schedule.ID)),
		logger.StringField("job_name", schedule.Job.Name),
		logger.StringField("job_type", schedule.Job.Type),
		logger.IntField("timeout", schedule.Job.Timeout),
		logger.IntField("active_concurrency", len(s.semaphore)),
	)

	now := time.Now()
	history := &model.TaskExecutionHistory{
		JobID:      schedule.JobID,
		ScheduleID: schedule.ID,
		Status:     model.StatusRunning,
		StartedAt:  now,
	}

	if err := s.jobRepo.CreateTaskExecutionHistory(ctx, history); err != nil {
		s.log.ErrorContext(ctx, "Failed to create task history", logger.ErrorField(err), logger.IntField("schedule_id", int(schedule.ID)))
		return fmt.Errorf("failed to create task history: %w", err)
	}

	s.semaphore <- struct{}{}
	utils.GoSafe(func() {
		defer func() {
			<-s.semaphore
		}()

		// The job runs detached from the scheduling tick, its deadline comes
		// from the job row.
		newCtx, cancel := context.WithTimeout(context.Background(), time.Duration(schedule.Job.Timeout)*time.Second)
		defer cancel()

		if err := s.taskExecutor.Execute(newCtx, history); err != nil {
			s.log.ErrorContextWithAlert(newCtx, "Failed to execute task", logger.ErrorField(err), logger.IntField("schedule_id", int(schedule.ID)))
		}
	})

	cronSchedule, err := s.cronParser.Parse(schedule.CronExpression)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to parse cron expression", logger.ErrorField(err), logger.IntField("schedule_id", int(schedule.ID)))
		return fmt.Errorf("failed to parse cron expression: %w", err)
	}

	schedule.LastExecution = sql.NullTime{Time: now, Valid: true}
	schedule.NextExecution = sql.NullTime{Time: cronSchedule.Next(now), Valid: true}

	if err := s.jobRepo.UpdateTaskSchedule(ctx, &schedule); err != nil {
		s.log.ErrorContext(ctx, "Failed to update task schedule", logger.ErrorField(err), logger.IntField("schedule_id", int(schedule.ID)))
		return fmt.Errorf("failed to update task schedule: %w", err)
	}
	return nil
}

func (s *schedulerService) GetJobSchedule(ctx context.Context, param model.GetJobParam) ([]model.Job, error) {
	return s.jobRepo.Get(ctx, &param)
}

// RunJobTask triggers a job immediately, outside its schedule.
func (s *schedulerService) RunJobTask(ctx context.Context, jobID uint) error {
	s.log.InfoContext(ctx, "Running job task", logger.IntField("job_id", int(jobID)))

	jobs, err := s.jobRepo.Get(ctx, &model.GetJobParam{IDs: []uint{jobID}})
	if err != nil {
		return fmt.Errorf("failed to find job: %w", err)
	}
	if len(jobs) == 0 {
		return ErrJobNotFound
	}
	if len(jobs[0].Schedules) == 0 {
		return fmt.Errorf("job %d has no schedule", jobID)
	}

	schedule := jobs[0].Schedules[0]
	schedule.Job = jobs[0]
	return s.executeJob(ctx, schedule)
}
