package repository

import (
	"context"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/pkg/utils"

	"gorm.io/gorm"
)

type InvestmentRepository interface {
	Get(ctx context.Context, investmentID string, opts ...utils.DBOption) (*model.Investment, error)
	Query(ctx context.Context, filter dto.InvestmentFilter, opts ...utils.DBOption) ([]model.Investment, error)
	Create(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error
	FirstOrCreate(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error
	Update(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error
	Delete(ctx context.Context, investmentID string, opts ...utils.DBOption) error
}

type investmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) Get(ctx context.Context, investmentID string, opts ...utils.DBOption) (*model.Investment, error) {
	var inv model.Investment
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("investment_id = ?", investmentID).First(&inv)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	return &inv, nil
}

// Query returns matching investments ordered by descending stored returns
// percentage.
func (r *investmentRepository) Query(ctx context.Context, filter dto.InvestmentFilter, opts ...utils.DBOption) ([]model.Investment, error) {
	var investments []model.Investment
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	if filter.CustomerID != "" {
		tx = tx.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.ProductType != nil {
		tx = tx.Where("product_type = ?", *filter.ProductType)
	}
	if filter.RiskLevel != nil {
		tx = tx.Where("risk_level = ?", *filter.RiskLevel)
	}

	if err := tx.Order("returns_percentage DESC").Find(&investments).Error; err != nil {
		return nil, err
	}

	return investments, nil
}

func (r *investmentRepository) Create(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(inv).Error
}

func (r *investmentRepository) FirstOrCreate(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Where("investment_id = ?", inv.InvestmentID).FirstOrCreate(inv).Error
}

func (r *investmentRepository) Update(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(inv).Error
}

func (r *investmentRepository) Delete(ctx context.Context, investmentID string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("investment_id = ?", investmentID).Delete(&model.Investment{}).Error
}
