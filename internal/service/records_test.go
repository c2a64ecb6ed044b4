package service

import (
	"context"
	"testing"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordFixture(t *testing.T) (RecordService, *fakeTransactionRepo, *fakeInvestmentRepo) {
	t.Helper()
	customerRepo := newFakeCustomerRepo(model.Customer{CustomerID: "CUST001", Name: "Priya"})
	txnRepo := &fakeTransactionRepo{transactions: []model.Transaction{{
		TransactionID: "TXN001",
		CustomerID:    "CUST001",
		Date:          date("2026-08-01"),
		Category:      "groceries",
		Merchant:      "BigBasket",
		Amount:        2500,
		PaymentMethod: model.PaymentMethodUPI,
	}}}
	invRepo := &fakeInvestmentRepo{investments: []model.Investment{{
		InvestmentID:      "INV001",
		CustomerID:        "CUST001",
		ProductType:       "mutual_fund",
		ProductName:       "Alpha Growth",
		PurchaseDate:      date("2025-01-15"),
		InvestedAmount:    50000,
		CurrentValue:      56000,
		ReturnsAbsolute:   6000,
		ReturnsPercentage: 12,
		RiskLevel:         "medium",
	}}}
	return NewRecordService(customerRepo, txnRepo, invRepo), txnRepo, invRepo
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newRecordFixture(t)

	tests := []struct {
		name          string
		transactionID string
		wantErr       error
	}{
		{name: "existing transaction", transactionID: "TXN001"},
		{name: "missing transaction", transactionID: "TXN404", wantErr: ErrTransactionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := svc.GetTransaction(ctx, tt.transactionID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.transactionID, txn.TransactionID)
		})
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	validReq := dto.TransactionRequest{
		TransactionID: "TXN001",
		CustomerID:    "CUST001",
		Date:          "2026-08-03",
		Category:      "dining",
		Merchant:      "Swiggy",
		Amount:        780,
	}

	t.Run("updates fields and keeps the key", func(t *testing.T) {
		svc, txnRepo, _ := newRecordFixture(t)

		updated, err := svc.UpdateTransaction(ctx, "TXN001", validReq)
		require.NoError(t, err)
		assert.Equal(t, "TXN001", updated.TransactionID)
		assert.Equal(t, "dining", updated.Category)
		assert.Equal(t, 780.0, updated.Amount)
		// Omitted payment method falls back to upi, same as create.
		assert.Equal(t, model.PaymentMethodUPI, updated.PaymentMethod)

		require.Len(t, txnRepo.transactions, 1)
		assert.Equal(t, "Swiggy", txnRepo.transactions[0].Merchant)
	})

	t.Run("missing transaction", func(t *testing.T) {
		svc, _, _ := newRecordFixture(t)
		_, err := svc.UpdateTransaction(ctx, "TXN404", validReq)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc, txnRepo, _ := newRecordFixture(t)
		req := validReq
		req.CustomerID = "CUST404"

		_, err := svc.UpdateTransaction(ctx, "TXN001", req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
		assert.Equal(t, "groceries", txnRepo.transactions[0].Category)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, _, _ := newRecordFixture(t)
		req := validReq
		req.Date = "03-08-2026"

		_, err := svc.UpdateTransaction(ctx, "TXN001", req)
		assert.Error(t, err)
	})
}

func TestGetInvestment(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newRecordFixture(t)

	tests := []struct {
		name         string
		investmentID string
		wantErr      error
	}{
		{name: "existing investment", investmentID: "INV001"},
		{name: "missing investment", investmentID: "INV404", wantErr: ErrInvestmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := svc.GetInvestment(ctx, tt.investmentID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.investmentID, inv.InvestmentID)
		})
	}
}

func TestUpdateInvestment(t *testing.T) {
	ctx := context.Background()

	validReq := dto.InvestmentRequest{
		InvestmentID:      "INV001",
		CustomerID:        "CUST001",
		ProductType:       "mutual_fund",
		ProductName:       "Alpha Growth",
		PurchaseDate:      "2025-01-15",
		InvestedAmount:    50000,
		CurrentValue:      61000,
		ReturnsAbsolute:   11000,
		ReturnsPercentage: 22,
		RiskLevel:         "medium",
	}

	t.Run("updates valuation and keeps the key", func(t *testing.T) {
		svc, _, invRepo := newRecordFixture(t)

		updated, err := svc.UpdateInvestment(ctx, "INV001", validReq)
		require.NoError(t, err)
		assert.Equal(t, "INV001", updated.InvestmentID)
		assert.Equal(t, 61000.0, updated.CurrentValue)
		assert.Equal(t, 22.0, updated.ReturnsPercentage)

		require.Len(t, invRepo.investments, 1)
		assert.Equal(t, 61000.0, invRepo.investments[0].CurrentValue)
	})

	t.Run("missing investment", func(t *testing.T) {
		svc, _, _ := newRecordFixture(t)
		_, err := svc.UpdateInvestment(ctx, "INV404", validReq)
		assert.ErrorIs(t, err, ErrInvestmentNotFound)
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc, _, invRepo := newRecordFixture(t)
		req := validReq
		req.CustomerID = "CUST404"

		_, err := svc.UpdateInvestment(ctx, "INV001", req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
		assert.Equal(t, 56000.0, invRepo.investments[0].CurrentValue)
	})
}
