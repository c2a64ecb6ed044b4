package service

import (
	"banking-chatbot/config"
	"banking-chatbot/internal/repository"
	"banking-chatbot/internal/strategy"
	"banking-chatbot/pkg/cache"
	"banking-chatbot/pkg/logger"
)

type Service struct {
	ContextService      ContextService
	ConversationService ConversationService
	ChatService         ChatService
	ImportService       ImportService
	UploadService       UploadService
	RecordService       RecordService
	SchedulerService    SchedulerService
	TaskExecutor        TaskExecutor
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	contextService := NewContextService(cfg, log, inmemoryCache, repo.CustomerRepo, repo.TransactionRepo, repo.InvestmentRepo)
	conversationService := NewConversationService(log, repo.ConversationRepo, repo.UnitOfWork)
	chatService := NewChatService(cfg, log, repo.CustomerRepo, repo.GeminiAIRepo, contextService, conversationService)
	importService := NewImportService(log, repo.CustomerRepo, repo.TransactionRepo, repo.InvestmentRepo)
	uploadService := NewUploadService(cfg, log, repo.CustomerRepo, repo.UploadedFileRepo, importService)
	recordService := NewRecordService(repo.CustomerRepo, repo.TransactionRepo, repo.InvestmentRepo)

	executorStrategies := make(map[strategy.JobType]strategy.JobExecutionStrategy)
	executorStrategies[strategy.JobTypeConversationCleanup] = strategy.NewConversationCleanUpStrategy(cfg, log, repo.ConversationRepo)
	executorStrategies[strategy.JobTypeUploadCleanup] = strategy.NewUploadCleanUpStrategy(cfg, log, repo.UploadedFileRepo, repo.JobRepo)

	taskExecutor := NewTaskExecutor(cfg, log, repo.JobRepo, executorStrategies)
	schedulerService := NewSchedulerService(cfg, log, repo.JobRepo, taskExecutor)

	return &Service{
		ContextService:      contextService,
		ConversationService: conversationService,
		ChatService:         chatService,
		ImportService:       importService,
		UploadService:       uploadService,
		RecordService:       recordService,
		SchedulerService:    schedulerService,
		TaskExecutor:        taskExecutor,
	}
}
