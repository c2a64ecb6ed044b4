package dto

// Request payloads for the record CRUD endpoints. Dates travel as
// YYYY-MM-DD strings and are coerced once at the handler boundary.

type CustomerRequest struct {
	CustomerID         string  `json:"customer_id" validate:"required"`
	Name               string  `json:"name" validate:"required"`
	Age                int     `json:"age" validate:"required,gt=0"`
	RiskLevel          string  `json:"risk_level" validate:"required,oneof=low medium high"`
	AnnualIncome       float64 `json:"annual_income" validate:"required"`
	FinancialGoals     string  `json:"financial_goals"`
	AccountOpeningDate string  `json:"account_opening_date" validate:"required,datetime=2006-01-02"`
	Email              string  `json:"email" validate:"required,email"`
	Phone              string  `json:"phone"`
}

type TransactionRequest struct {
	TransactionID string  `json:"transaction_id" validate:"required"`
	CustomerID    string  `json:"customer_id" validate:"required"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	Category      string  `json:"category" validate:"required"`
	Merchant      string  `json:"merchant" validate:"required"`
	Amount        float64 `json:"amount" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"omitempty,oneof=credit_card debit_card upi netbanking"`
	Description   string  `json:"description"`
}

type InvestmentRequest struct {
	InvestmentID      string  `json:"investment_id" validate:"required"`
	CustomerID        string  `json:"customer_id" validate:"required"`
	ProductType       string  `json:"product_type" validate:"required"`
	ProductName       string  `json:"product_name" validate:"required"`
	PurchaseDate      string  `json:"purchase_date" validate:"required,datetime=2006-01-02"`
	InvestedAmount    float64 `json:"invested_amount" validate:"required"`
	CurrentValue      float64 `json:"current_value" validate:"required"`
	Units             float64 `json:"units"`
	PurchaseNAV       float64 `json:"purchase_nav"`
	CurrentNAV        float64 `json:"current_nav"`
	ReturnsAbsolute   float64 `json:"returns_absolute"`
	ReturnsPercentage float64 `json:"returns_percentage"`
	RiskLevel         string  `json:"risk_level" validate:"required,oneof=low medium high"`
}
