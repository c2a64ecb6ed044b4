package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/logger"
)

// ImportRow is one CSV record keyed by header name.
type ImportRow map[string]string

type ImportService interface {
	ParseCSV(r io.Reader) ([]ImportRow, error)
	ImportTransactions(ctx context.Context, customerID string, rows []ImportRow) (int, error)
	ImportInvestments(ctx context.Context, customerID string, rows []ImportRow) (int, error)
	ImportCustomers(ctx context.Context, rows []ImportRow) (int, error)
}

type importService struct {
	log             *logger.Logger
	customerRepo    repository.CustomerRepository
	transactionRepo repository.TransactionRepository
	investmentRepo  repository.InvestmentRepository
}

func NewImportService(
	log *logger.Logger,
	customerRepo repository.CustomerRepository,
	transactionRepo repository.TransactionRepository,
	investmentRepo repository.InvestmentRepository,
) ImportService {
	return &importService{
		log:             log,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		investmentRepo:  investmentRepo,
	}
}

// ParseCSV reads a whole CSV stream into header-keyed rows. Cell values are
// whitespace-trimmed.
func (s *importService) ParseCSV(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []ImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}

		row := make(ImportRow, len(header))
		for i, col := range header {
			row[col] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ImportTransactions inserts each row unless a transaction with the same key
// already exists. The returned count includes rows skipped as duplicates.
// Any malformed row fails the whole import.
func (s *importService) ImportTransactions(ctx context.Context, customerID string, rows []ImportRow) (int, error) {
	imported := 0
	for i, row := range rows {
		txn, err := transactionFromRow(customerID, row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := s.transactionRepo.FirstOrCreate(ctx, txn); err != nil {
			return 0, fmt.Errorf("row %d: failed to import transaction: %w", i+1, err)
		}
		imported++
	}
	return imported, nil
}

func (s *importService) ImportInvestments(ctx context.Context, customerID string, rows []ImportRow) (int, error) {
	imported := 0
	for i, row := range rows {
		inv, err := investmentFromRow(customerID, row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := s.investmentRepo.FirstOrCreate(ctx, inv); err != nil {
			return 0, fmt.Errorf("row %d: failed to import investment: %w", i+1, err)
		}
		imported++
	}
	return imported, nil
}

// ImportCustomers backs the seed command, the row carries its own
// customer_id.
func (s *importService) ImportCustomers(ctx context.Context, rows []ImportRow) (int, error) {
	imported := 0
	for i, row := range rows {
		customer, err := customerFromRow(row)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := s.customerRepo.FirstOrCreate(ctx, customer); err != nil {
			return 0, fmt.Errorf("row %d: failed to import customer: %w", i+1, err)
		}
		imported++
	}
	return imported, nil
}

func transactionFromRow(customerID string, row ImportRow) (*model.Transaction, error) {
	if err := requireFields(row, "transaction_id", "date", "category", "merchant", "amount"); err != nil {
		return nil, err
	}

	date, err := parseDate(row["date"])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", row["date"], err)
	}
	amount, err := strconv.ParseFloat(row["amount"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", row["amount"], err)
	}

	// Rows may carry their own customer_id; the upload's customer owns the
	// record regardless.
	if customerID == "" {
		customerID = row["customer_id"]
	}
	if customerID == "" {
		return nil, fmt.Errorf("missing customer_id")
	}

	paymentMethod := row["payment_method"]
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodUPI
	}

	return &model.Transaction{
		TransactionID: row["transaction_id"],
		CustomerID:    customerID,
		Date:          date,
		Category:      row["category"],
		Merchant:      row["merchant"],
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Description:   row["description"],
	}, nil
}

func investmentFromRow(customerID string, row ImportRow) (*model.Investment, error) {
	if err := requireFields(row,
		"investment_id", "product_type", "product_name", "purchase_date",
		"invested_amount", "current_value", "returns_absolute", "returns_percentage", "risk_level",
	); err != nil {
		return nil, err
	}

	purchaseDate, err := parseDate(row["purchase_date"])
	if err != nil {
		return nil, fmt.Errorf("invalid purchase_date %q: %w", row["purchase_date"], err)
	}

	investedAmount, err := strconv.ParseFloat(row["invested_amount"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid invested_amount %q: %w", row["invested_amount"], err)
	}
	currentValue, err := strconv.ParseFloat(row["current_value"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid current_value %q: %w", row["current_value"], err)
	}
	returnsAbsolute, err := strconv.ParseFloat(row["returns_absolute"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid returns_absolute %q: %w", row["returns_absolute"], err)
	}
	returnsPercentage, err := strconv.ParseFloat(row["returns_percentage"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid returns_percentage %q: %w", row["returns_percentage"], err)
	}

	if customerID == "" {
		customerID = row["customer_id"]
	}
	if customerID == "" {
		return nil, fmt.Errorf("missing customer_id")
	}

	return &model.Investment{
		InvestmentID:      row["investment_id"],
		CustomerID:        customerID,
		ProductType:       row["product_type"],
		ProductName:       row["product_name"],
		PurchaseDate:      purchaseDate,
		InvestedAmount:    investedAmount,
		CurrentValue:      currentValue,
		Units:             parseFloatOrZero(row["units"]),
		PurchaseNAV:       parseFloatOrZero(row["purchase_nav"]),
		CurrentNAV:        parseFloatOrZero(row["current_nav"]),
		ReturnsAbsolute:   returnsAbsolute,
		ReturnsPercentage: returnsPercentage,
		RiskLevel:         row["risk_level"],
	}, nil
}

func customerFromRow(row ImportRow) (*model.Customer, error) {
	if err := requireFields(row,
		"customer_id", "name", "age", "risk_level", "annual_income",
		"financial_goals", "account_opening_date", "email", "phone",
	); err != nil {
		return nil, err
	}

	age, err := strconv.Atoi(row["age"])
	if err != nil {
		return nil, fmt.Errorf("invalid age %q: %w", row["age"], err)
	}
	annualIncome, err := strconv.ParseFloat(row["annual_income"], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid annual_income %q: %w", row["annual_income"], err)
	}
	openingDate, err := parseDate(row["account_opening_date"])
	if err != nil {
		return nil, fmt.Errorf("invalid account_opening_date %q: %w", row["account_opening_date"], err)
	}

	return &model.Customer{
		CustomerID:         row["customer_id"],
		Name:               row["name"],
		Age:                age,
		RiskLevel:          row["risk_level"],
		AnnualIncome:       annualIncome,
		FinancialGoals:     row["financial_goals"],
		AccountOpeningDate: openingDate,
		Email:              row["email"],
		Phone:              row["phone"],
	}, nil
}

func requireFields(row ImportRow, fields ...string) error {
	for _, field := range fields {
		if row[field] == "" {
			return fmt.Errorf("missing required field %q", field)
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func parseFloatOrZero(value string) float64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}
