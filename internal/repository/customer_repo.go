package repository

import (
	"context"

	"banking-chatbot/internal/model"
	"banking-chatbot/pkg/utils"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Get(ctx context.Context, customerID string, opts ...utils.DBOption) (*model.Customer, error)
	List(ctx context.Context, opts ...utils.DBOption) ([]model.Customer, error)
	Create(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error
	FirstOrCreate(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error
	Update(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error
	Delete(ctx context.Context, customerID string, opts ...utils.DBOption) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Get(ctx context.Context, customerID string, opts ...utils.DBOption) (*model.Customer, error) {
	var customer model.Customer
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("customer_id = ?", customerID).First(&customer)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, opts ...utils.DBOption) ([]model.Customer, error) {
	var customers []model.Customer
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	if err := tx.Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(customer).Error
}

// FirstOrCreate inserts the customer only when its identity key is absent,
// an existing record is left untouched.
func (r *customerRepository) FirstOrCreate(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Where("customer_id = ?", customer.CustomerID).FirstOrCreate(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, customerID string, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("customer_id = ?", customerID).Delete(&model.Customer{}).Error
}
