package repository

import (
	"context"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/pkg/utils"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	Get(ctx context.Context, transactionID string, opts ...utils.DBOption) (*model.Transaction, error)
	Query(ctx context.Context, filter dto.TransactionFilter, opts ...utils.DBOption) ([]model.Transaction, error)
	Create(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error
	FirstOrCreate(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error
	Update(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error
	Delete(ctx context.Context, transactionID string, opts ...utils.DBOption) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Get(ctx context.Context, transactionID string, opts ...utils.DBOption) (*model.Transaction, error) {
	var txn model.Transaction
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("transaction_id = ?", transactionID).First(&txn)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	return &txn, nil
}

// Query returns matching transactions ordered newest-first. The filter set is
// conjunctive, date bounds are inclusive.
func (r *transactionRepository) Query(ctx context.Context, filter dto.TransactionFilter, opts ...utils.DBOption) ([]model.Transaction, error) {
	var transactions []model.Transaction
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	if filter.CustomerID != "" {
		tx = tx.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Category != nil {
		tx = tx.Where("category = ?", *filter.Category)
	}
	if filter.StartDate != nil {
		tx = tx.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		tx = tx.Where("date <= ?", *filter.EndDate)
	}
	if filter.MinAmount != nil {
		tx = tx.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	if err := tx.Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *transactionRepository) Create(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(txn).Error
}

func (r *transactionRepository) FirstOrCreate(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Where("transaction_id = ?", txn.TransactionID).FirstOrCreate(txn).Error
}

func (r *transactionRepository) Update(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(txn).Error
}

func (r *transactionRepository) Delete(ctx context.Context, transactionID string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("transaction_id = ?", transactionID).Delete(&model.Transaction{}).Error
}
