package dto

import "time"

// CustomerContext is the aggregated, derived view of a customer's finances
// used to ground a generated response. A nil summary means "no data", which
// downstream renders as an absent section rather than zeros.
type CustomerContext struct {
	Customer           *CustomerProfile     `json:"customer,omitempty"`
	Transactions       []TransactionRecord  `json:"transactions"`
	Investments        []InvestmentRecord   `json:"investments"`
	TransactionSummary *TransactionSummary  `json:"transaction_summary,omitempty"`
	InvestmentSummary  *InvestmentSummary   `json:"investment_summary,omitempty"`
}

type CustomerProfile struct {
	CustomerID     string  `json:"customer_id"`
	Name           string  `json:"name"`
	Age            int     `json:"age"`
	RiskLevel      string  `json:"risk_level"`
	AnnualIncome   float64 `json:"annual_income"`
	FinancialGoals string  `json:"financial_goals"`
}

type TransactionRecord struct {
	TransactionID string  `json:"transaction_id"`
	Date          string  `json:"date"`
	Category      string  `json:"category"`
	Merchant      string  `json:"merchant"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
}

type InvestmentRecord struct {
	InvestmentID      string  `json:"investment_id"`
	ProductType       string  `json:"product_type"`
	ProductName       string  `json:"product_name"`
	InvestedAmount    float64 `json:"invested_amount"`
	CurrentValue      float64 `json:"current_value"`
	ReturnsAbsolute   float64 `json:"returns_absolute,omitempty"`
	ReturnsPercentage float64 `json:"returns_percentage"`
	RiskLevel         string  `json:"risk_level"`
}

type TransactionSummary struct {
	TotalSpent        float64            `json:"total_spent"`
	MonthlyAverage    float64            `json:"monthly_average"`
	TopCategories     []string           `json:"top_categories"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	TransactionCount  int                `json:"transaction_count"`
}

type BestPerformer struct {
	Name   string  `json:"name"`
	Return float64 `json:"return"`
}

type InvestmentSummary struct {
	TotalInvested    float64        `json:"total_invested"`
	CurrentValue     float64        `json:"current_value"`
	TotalReturns     float64        `json:"total_returns"`
	ReturnPercentage float64        `json:"return_percentage"`
	ProductTypes     map[string]int `json:"product_types"`
	InvestmentCount  int            `json:"investment_count"`
	BestPerformer    *BestPerformer `json:"best_performer"`
}

type TransactionFilter struct {
	CustomerID string
	Category   *string
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *float64
	Limit      int
}

type InvestmentFilter struct {
	CustomerID  string
	ProductType *string
	RiskLevel   *string
}

type CategorySpend struct {
	Category         string  `json:"category"`
	Total            float64 `json:"total"`
	TransactionCount int     `json:"transaction_count"`
}

type SpendingByCategory struct {
	Period     string          `json:"period"`
	Categories []CategorySpend `json:"categories"`
}

type AllocationItem struct {
	ProductType string  `json:"product_type"`
	Value       float64 `json:"value"`
	Percentage  float64 `json:"percentage"`
}

type PortfolioAllocation struct {
	TotalValue float64          `json:"total_value"`
	Allocation []AllocationItem `json:"allocation"`
}
