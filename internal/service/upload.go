package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/logger"

	"github.com/google/uuid"
)

type UploadService interface {
	ProcessUpload(ctx context.Context, fileName, fileType, customerID string, content io.Reader) (*model.UploadedFile, error)
}

type uploadService struct {
	cfg              *config.Config
	log              *logger.Logger
	customerRepo     repository.CustomerRepository
	uploadedFileRepo repository.UploadedFileRepository
	importService    ImportService
}

func NewUploadService(
	cfg *config.Config,
	log *logger.Logger,
	customerRepo repository.CustomerRepository,
	uploadedFileRepo repository.UploadedFileRepository,
	importService ImportService,
) UploadService {
	return &uploadService{
		cfg:              cfg,
		log:              log,
		customerRepo:     customerRepo,
		uploadedFileRepo: uploadedFileRepo,
		importService:    importService,
	}
}

// ProcessUpload stores the uploaded CSV on disk, records it, and imports its
// rows for the given customer. The stored record stays unprocessed when the
// import fails, so the failure is visible and the file can be retried.
func (s *uploadService) ProcessUpload(ctx context.Context, fileName, fileType, customerID string, content io.Reader) (*model.UploadedFile, error) {
	customer, err := s.customerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	filePath, err := s.saveFile(fileName, content)
	if err != nil {
		return nil, err
	}

	uploadedFile := &model.UploadedFile{
		FileName:   fileName,
		FileType:   fileType,
		FilePath:   filePath,
		CustomerID: customerID,
		UploadedAt: time.Now(),
	}
	if err := s.uploadedFileRepo.Create(ctx, uploadedFile); err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	var imported int
	switch fileType {
	case model.FileTypeTransaction, model.FileTypeInvestment:
		imported, err = s.importRows(ctx, fileType, customerID, filePath)
		if err != nil {
			return nil, err
		}
	default:
		// Other declared types carry no importable rows. The file is kept
		// and the record marked processed with zero imports.
	}

	uploadedFile.Processed = true
	uploadedFile.RecordsImported = imported
	if err := s.uploadedFileRepo.Update(ctx, uploadedFile); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	s.log.InfoContext(ctx, "processed uploaded file",
		logger.StringField("file_name", fileName),
		logger.StringField("file_type", fileType),
		logger.IntField("records_imported", imported),
	)

	return uploadedFile, nil
}

func (s *uploadService) importRows(ctx context.Context, fileType, customerID, filePath string) (int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to reopen uploaded file: %w", err)
	}
	defer f.Close()

	rows, err := s.importService.ParseCSV(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse file: %w", err)
	}

	var imported int
	if fileType == model.FileTypeTransaction {
		imported, err = s.importService.ImportTransactions(ctx, customerID, rows)
	} else {
		imported, err = s.importService.ImportInvestments(ctx, customerID, rows)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to process file: %w", err)
	}
	return imported, nil
}

func (s *uploadService) saveFile(fileName string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.cfg.Upload.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	// Prefix with a fresh key so repeated uploads of the same file name
	// never clobber each other.
	filePath := filepath.Join(s.cfg.Upload.Dir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(fileName)))

	out, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	return filePath, nil
}
