package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
)

// RecordService is the thin CRUD layer behind the record endpoints. All
// reads of missing rows surface ErrCustomerNotFound and friends so handlers
// can map them to 404s uniformly.
type RecordService interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
	CreateCustomer(ctx context.Context, req dto.CustomerRequest) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error

	ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*model.Transaction, error)
	CreateTransaction(ctx context.Context, req dto.TransactionRequest) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.TransactionRequest) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error

	ListInvestments(ctx context.Context, filter dto.InvestmentFilter) ([]model.Investment, error)
	GetInvestment(ctx context.Context, investmentID string) (*model.Investment, error)
	CreateInvestment(ctx context.Context, req dto.InvestmentRequest) (*model.Investment, error)
	UpdateInvestment(ctx context.Context, investmentID string, req dto.InvestmentRequest) (*model.Investment, error)
	DeleteInvestment(ctx context.Context, investmentID string) error
}

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvestmentNotFound  = errors.New("investment not found")
)

type recordService struct {
	customerRepo    repository.CustomerRepository
	transactionRepo repository.TransactionRepository
	investmentRepo  repository.InvestmentRepository
}

func NewRecordService(
	customerRepo repository.CustomerRepository,
	transactionRepo repository.TransactionRepository,
	investmentRepo repository.InvestmentRepository,
) RecordService {
	return &recordService{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		investmentRepo:  investmentRepo,
	}
}

func (s *recordService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *recordService) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	customer, err := s.customerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

func (s *recordService) CreateCustomer(ctx context.Context, req dto.CustomerRequest) (*model.Customer, error) {
	customer, err := customerFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *recordService) UpdateCustomer(ctx context.Context, customerID string, req dto.CustomerRequest) (*model.Customer, error) {
	existing, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	updated, err := customerFromRequest(req)
	if err != nil {
		return nil, err
	}
	updated.CustomerID = existing.CustomerID
	updated.CreatedAt = existing.CreatedAt

	if err := s.customerRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return updated, nil
}

func (s *recordService) DeleteCustomer(ctx context.Context, customerID string) error {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, customerID)
}

func (s *recordService) ListTransactions(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, error) {
	return s.transactionRepo.Query(ctx, filter)
}

func (s *recordService) CreateTransaction(ctx context.Context, req dto.TransactionRequest) (*model.Transaction, error) {
	if _, err := s.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodUPI
	}

	txn := &model.Transaction{
		TransactionID: req.TransactionID,
		CustomerID:    req.CustomerID,
		Date:          date,
		Category:      req.Category,
		Merchant:      req.Merchant,
		Amount:        req.Amount,
		PaymentMethod: paymentMethod,
		Description:   req.Description,
	}
	if err := s.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return txn, nil
}

func (s *recordService) GetTransaction(ctx context.Context, transactionID string) (*model.Transaction, error) {
	txn, err := s.transactionRepo.Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

func (s *recordService) UpdateTransaction(ctx context.Context, transactionID string, req dto.TransactionRequest) (*model.Transaction, error) {
	existing, err := s.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodUPI
	}

	updated := &model.Transaction{
		TransactionID: existing.TransactionID,
		CustomerID:    req.CustomerID,
		Date:          date,
		Category:      req.Category,
		Merchant:      req.Merchant,
		Amount:        req.Amount,
		PaymentMethod: paymentMethod,
		Description:   req.Description,
		CreatedAt:     existing.CreatedAt,
	}
	if err := s.transactionRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return updated, nil
}

func (s *recordService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.transactionRepo.Delete(ctx, transactionID)
}

func (s *recordService) ListInvestments(ctx context.Context, filter dto.InvestmentFilter) ([]model.Investment, error) {
	return s.investmentRepo.Query(ctx, filter)
}

func (s *recordService) CreateInvestment(ctx context.Context, req dto.InvestmentRequest) (*model.Investment, error) {
	if _, err := s.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase_date %q: %w", req.PurchaseDate, err)
	}

	inv := &model.Investment{
		InvestmentID:      req.InvestmentID,
		CustomerID:        req.CustomerID,
		ProductType:       req.ProductType,
		ProductName:       req.ProductName,
		PurchaseDate:      purchaseDate,
		InvestedAmount:    req.InvestedAmount,
		CurrentValue:      req.CurrentValue,
		Units:             req.Units,
		PurchaseNAV:       req.PurchaseNAV,
		CurrentNAV:        req.CurrentNAV,
		ReturnsAbsolute:   req.ReturnsAbsolute,
		ReturnsPercentage: req.ReturnsPercentage,
		RiskLevel:         req.RiskLevel,
	}
	if err := s.investmentRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return inv, nil
}

func (s *recordService) GetInvestment(ctx context.Context, investmentID string) (*model.Investment, error) {
	inv, err := s.investmentRepo.Get(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInvestmentNotFound
	}
	return inv, nil
}

func (s *recordService) UpdateInvestment(ctx context.Context, investmentID string, req dto.InvestmentRequest) (*model.Investment, error) {
	existing, err := s.GetInvestment(ctx, investmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase_date %q: %w", req.PurchaseDate, err)
	}

	updated := &model.Investment{
		InvestmentID:      existing.InvestmentID,
		CustomerID:        req.CustomerID,
		ProductType:       req.ProductType,
		ProductName:       req.ProductName,
		PurchaseDate:      purchaseDate,
		InvestedAmount:    req.InvestedAmount,
		CurrentValue:      req.CurrentValue,
		Units:             req.Units,
		PurchaseNAV:       req.PurchaseNAV,
		CurrentNAV:        req.CurrentNAV,
		ReturnsAbsolute:   req.ReturnsAbsolute,
		ReturnsPercentage: req.ReturnsPercentage,
		RiskLevel:         req.RiskLevel,
		CreatedAt:         existing.CreatedAt,
	}
	if err := s.investmentRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}
	return updated, nil
}

func (s *recordService) DeleteInvestment(ctx context.Context, investmentID string) error {
	return s.investmentRepo.Delete(ctx, investmentID)
}

func customerFromRequest(req dto.CustomerRequest) (*model.Customer, error) {
	openingDate, err := time.Parse("2006-01-02", req.AccountOpeningDate)
	if err != nil {
		return nil, fmt.Errorf("invalid account_opening_date %q: %w", req.AccountOpeningDate, err)
	}

	return &model.Customer{
		CustomerID:         req.CustomerID,
		Name:               req.Name,
		Age:                req.Age,
		RiskLevel:          req.RiskLevel,
		AnnualIncome:       req.AnnualIncome,
		FinancialGoals:     req.FinancialGoals,
		AccountOpeningDate: openingDate,
		Email:              req.Email,
		Phone:              req.Phone,
	}, nil
}
