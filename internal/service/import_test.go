package service

import (
	"context"
	"strings"
	"testing"

	"banking-chatbot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transactionsCSV = `transaction_id,date,category,merchant,amount,payment_method,description
TXN001,2026-07-01,groceries,BigBasket,2500,upi,weekly run
TXN002,2026-07-03,fuel,IndianOil,1800,credit_card,
`

func newImportFixture(t *testing.T) (ImportService, *fakeCustomerRepo, *fakeTransactionRepo, *fakeInvestmentRepo) {
	t.Helper()
	customerRepo := newFakeCustomerRepo()
	txnRepo := &fakeTransactionRepo{}
	invRepo := &fakeInvestmentRepo{}
	return NewImportService(testLogger(t), customerRepo, txnRepo, invRepo), customerRepo, txnRepo, invRepo
}

func TestParseCSV(t *testing.T) {
	svc, _, _, _ := newImportFixture(t)

	t.Run("maps cells by header", func(t *testing.T) {
		rows, err := svc.ParseCSV(strings.NewReader(transactionsCSV))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "TXN001", rows[0]["transaction_id"])
		assert.Equal(t, "BigBasket", rows[0]["merchant"])
		assert.Equal(t, "", rows[1]["description"])
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := svc.ParseCSV(strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("ragged row fails", func(t *testing.T) {
		_, err := svc.ParseCSV(strings.NewReader("a,b\n1\n"))
		assert.Error(t, err)
	})
}

func TestImportTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("imports rows and counts duplicates", func(t *testing.T) {
		svc, _, txnRepo, _ := newImportFixture(t)
		rows, err := svc.ParseCSV(strings.NewReader(transactionsCSV))
		require.NoError(t, err)

		count, err := svc.ImportTransactions(ctx, "CUST001", rows)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, 2, txnRepo.creates)

		// A re-run creates nothing new but still reports every row.
		count, err = svc.ImportTransactions(ctx, "CUST001", rows)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, 2, txnRepo.creates)
	})

	t.Run("missing payment method defaults to upi", func(t *testing.T) {
		svc, _, txnRepo, _ := newImportFixture(t)
		rows := []ImportRow{{
			"transaction_id": "TXN010", "date": "2026-07-10", "category": "dining",
			"merchant": "Cafe", "amount": "600",
		}}

		_, err := svc.ImportTransactions(ctx, "CUST001", rows)
		require.NoError(t, err)
		require.Len(t, txnRepo.transactions, 1)
		assert.Equal(t, model.PaymentMethodUPI, txnRepo.transactions[0].PaymentMethod)
		assert.Equal(t, "CUST001", txnRepo.transactions[0].CustomerID)
	})

	t.Run("malformed row fails the whole import", func(t *testing.T) {
		svc, _, txnRepo, _ := newImportFixture(t)
		rows := []ImportRow{
			{"transaction_id": "TXN020", "date": "2026-07-10", "category": "dining", "merchant": "Cafe", "amount": "600"},
			{"transaction_id": "TXN021", "date": "not-a-date", "category": "dining", "merchant": "Cafe", "amount": "600"},
		}

		count, err := svc.ImportTransactions(ctx, "CUST001", rows)
		assert.Error(t, err)
		assert.Zero(t, count)
		assert.Contains(t, err.Error(), "row 2")
		// The first row was written before the bad one was hit.
		assert.Len(t, txnRepo.transactions, 1)
	})

	t.Run("missing required field fails", func(t *testing.T) {
		svc, _, _, _ := newImportFixture(t)
		rows := []ImportRow{{"transaction_id": "TXN030", "date": "2026-07-10", "merchant": "Cafe", "amount": "600"}}

		_, err := svc.ImportTransactions(ctx, "CUST001", rows)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "category")
	})
}

func TestImportInvestments(t *testing.T) {
	ctx := context.Background()
	svc, _, _, invRepo := newImportFixture(t)

	rows := []ImportRow{{
		"investment_id": "INV001", "product_type": "mutual_fund", "product_name": "Alpha Growth",
		"purchase_date": "2025-01-15", "invested_amount": "50000", "current_value": "56000",
		"returns_absolute": "6000", "returns_percentage": "12", "risk_level": "medium",
	}}

	count, err := svc.ImportInvestments(ctx, "CUST001", rows)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, invRepo.investments, 1)

	inv := invRepo.investments[0]
	assert.Equal(t, "CUST001", inv.CustomerID)
	assert.Equal(t, 12.0, inv.ReturnsPercentage)
	// Optional NAV columns default to zero when absent.
	assert.Zero(t, inv.Units)
	assert.Zero(t, inv.PurchaseNAV)
}

func TestImportCustomers(t *testing.T) {
	ctx := context.Background()
	svc, customerRepo, _, _ := newImportFixture(t)

	rows := []ImportRow{{
		"customer_id": "CUST001", "name": "Priya Sharma", "age": "32", "risk_level": "medium",
		"annual_income": "1200000", "financial_goals": "retirement_planning",
		"account_opening_date": "2020-03-01", "email": "priya@example.com", "phone": "9876543210",
	}}

	count, err := svc.ImportCustomers(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, customerRepo.creates)

	// Existing customers are untouched on re-import.
	count, err = svc.ImportCustomers(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, customerRepo.creates)
}
