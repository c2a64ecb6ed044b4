package repository

import (
	"banking-chatbot/config"
	"banking-chatbot/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	CustomerRepo     CustomerRepository
	TransactionRepo  TransactionRepository
	InvestmentRepo   InvestmentRepository
	ConversationRepo ConversationRepository
	UploadedFileRepo UploadedFileRepository
	JobRepo          JobRepository
	GeminiAIRepo     AIRepository
	UnitOfWork       UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	geminiAIRepo, err := NewGeminiAIRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Repository{
		CustomerRepo:     NewCustomerRepository(db),
		TransactionRepo:  NewTransactionRepository(db),
		InvestmentRepo:   NewInvestmentRepository(db),
		ConversationRepo: NewConversationRepository(db),
		UploadedFileRepo: NewUploadedFileRepository(db),
		JobRepo:          NewJobRepository(db),
		GeminiAIRepo:     geminiAIRepo,
		UnitOfWork:       NewUnitOfWork(db),
	}, nil
}
