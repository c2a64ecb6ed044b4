package repository

import (
	"context"
	"time"

	"banking-chatbot/internal/model"
	"banking-chatbot/pkg/utils"

	"gorm.io/gorm"
)

type UploadedFileRepository interface {
	Create(ctx context.Context, file *model.UploadedFile, opts ...utils.DBOption) error
	Update(ctx context.Context, file *model.UploadedFile, opts ...utils.DBOption) error
	ListProcessedBefore(ctx context.Context, cutoff time.Time, opts ...utils.DBOption) ([]model.UploadedFile, error)
	DeleteByIDs(ctx context.Context, ids []uint, opts ...utils.DBOption) (int64, error)
}

type uploadedFileRepository struct {
	db *gorm.DB
}

func NewUploadedFileRepository(db *gorm.DB) UploadedFileRepository {
	return &uploadedFileRepository{db: db}
}

func (r *uploadedFileRepository) Create(ctx context.Context, file *model.UploadedFile, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(file).Error
}

func (r *uploadedFileRepository) Update(ctx context.Context, file *model.UploadedFile, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(file).Error
}

func (r *uploadedFileRepository) ListProcessedBefore(ctx context.Context, cutoff time.Time, opts ...utils.DBOption) ([]model.UploadedFile, error) {
	var files []model.UploadedFile
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	if err := tx.Where("processed = ? AND uploaded_at < ?", true, cutoff).Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *uploadedFileRepository) DeleteByIDs(ctx context.Context, ids []uint, opts ...utils.DBOption) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("id IN ?", ids).Delete(&model.UploadedFile{})
	return result.RowsAffected, result.Error
}
