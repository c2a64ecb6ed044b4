package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"banking-chatbot/config"
	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/internal/repository"
	"banking-chatbot/pkg/cache"
	"banking-chatbot/pkg/common"
	"banking-chatbot/pkg/logger"
	"banking-chatbot/pkg/utils"

	"golang.org/x/sync/errgroup"
)

const (
	contextWindowDays   = 180
	contextTxnLimit     = 50
	topCategoryCount    = 3
	daysPerAverageMonth = 30
)

type ContextService interface {
	GetCustomerContext(ctx context.Context, customerID string) (*dto.CustomerContext, error)
	QueryTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionRecord, error)
	QueryInvestments(ctx context.Context, filter dto.InvestmentFilter) ([]dto.InvestmentRecord, error)
	GetSpendingByCategory(ctx context.Context, customerID string, months int) (*dto.SpendingByCategory, error)
	GetPortfolioAllocation(ctx context.Context, customerID string) (*dto.PortfolioAllocation, error)
}

type contextService struct {
	cfg             *config.Config
	log             *logger.Logger
	cache           cache.Cache
	customerRepo    repository.CustomerRepository
	transactionRepo repository.TransactionRepository
	investmentRepo  repository.InvestmentRepository
}

func NewContextService(
	cfg *config.Config,
	log *logger.Logger,
	inmemoryCache cache.Cache,
	customerRepo repository.CustomerRepository,
	transactionRepo repository.TransactionRepository,
	investmentRepo repository.InvestmentRepository,
) ContextService {
	return &contextService{
		cfg:             cfg,
		log:             log,
		cache:           inmemoryCache,
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
		investmentRepo:  investmentRepo,
	}
}

// GetCustomerContext aggregates the customer profile, the recent transaction
// window and all holdings into one snapshot. An unknown customer yields an
// empty context, not an error. Snapshots are cached briefly so a chat turn
// and the context endpoint do not each rebuild the same view.
func (s *contextService) GetCustomerContext(ctx context.Context, customerID string) (*dto.CustomerContext, error) {
	cacheKey := fmt.Sprintf(common.KEY_CUSTOMER_CONTEXT, customerID)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if snapshot, ok := cached.(*dto.CustomerContext); ok {
			return snapshot, nil
		}
	}

	customer, err := s.customerRepo.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if customer == nil {
		return &dto.CustomerContext{
			Transactions: []dto.TransactionRecord{},
			Investments:  []dto.InvestmentRecord{},
		}, nil
	}

	windowStart := time.Now().AddDate(0, 0, -contextWindowDays)

	var (
		transactions []model.Transaction
		investments  []model.Investment
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.Query(gCtx, dto.TransactionFilter{
			CustomerID: customerID,
			StartDate:  &windowStart,
			Limit:      contextTxnLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to query transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		investments, err = s.investmentRepo.Query(gCtx, dto.InvestmentFilter{CustomerID: customerID})
		if err != nil {
			return fmt.Errorf("failed to query investments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &dto.CustomerContext{
		Customer: &dto.CustomerProfile{
			CustomerID:     customer.CustomerID,
			Name:           customer.Name,
			Age:            customer.Age,
			RiskLevel:      customer.RiskLevel,
			AnnualIncome:   customer.AnnualIncome,
			FinancialGoals: customer.FinancialGoals,
		},
		Transactions:       toTransactionRecords(transactions),
		Investments:        toInvestmentRecords(investments, false),
		TransactionSummary: summarizeTransactions(transactions),
		InvestmentSummary:  summarizeInvestments(investments),
	}

	s.cache.Set(cacheKey, snapshot, s.cfg.Cache.ContextTTL)

	return snapshot, nil
}

func (s *contextService) QueryTransactions(ctx context.Context, filter dto.TransactionFilter) ([]dto.TransactionRecord, error) {
	transactions, err := s.transactionRepo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return toTransactionRecords(transactions), nil
}

func (s *contextService) QueryInvestments(ctx context.Context, filter dto.InvestmentFilter) ([]dto.InvestmentRecord, error) {
	investments, err := s.investmentRepo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	return toInvestmentRecords(investments, true), nil
}

// GetSpendingByCategory totals transactions per category over the last
// months * 30 days, largest first.
func (s *contextService) GetSpendingByCategory(ctx context.Context, customerID string, months int) (*dto.SpendingByCategory, error) {
	if months <= 0 {
		months = 6
	}
	windowStart := time.Now().AddDate(0, 0, -months*daysPerAverageMonth)

	transactions, err := s.transactionRepo.Query(ctx, dto.TransactionFilter{
		CustomerID: customerID,
		StartDate:  &windowStart,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	totals := map[string]float64{}
	counts := map[string]int{}
	for _, t := range transactions {
		totals[t.Category] += t.Amount
		counts[t.Category]++
	}

	categories := make([]dto.CategorySpend, 0, len(totals))
	for category, total := range totals {
		categories = append(categories, dto.CategorySpend{
			Category:         utils.NormalizeLabel(category),
			Total:            total,
			TransactionCount: counts[category],
		})
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Total > categories[j].Total
	})

	return &dto.SpendingByCategory{
		Period:     fmt.Sprintf("Last %d months", months),
		Categories: categories,
	}, nil
}

// GetPortfolioAllocation groups current value by product type. Percentages
// are rounded to two decimals and zero when the portfolio is empty.
func (s *contextService) GetPortfolioAllocation(ctx context.Context, customerID string) (*dto.PortfolioAllocation, error) {
	investments, err := s.investmentRepo.Query(ctx, dto.InvestmentFilter{CustomerID: customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}

	totals := map[string]float64{}
	order := []string{}
	var totalValue float64
	for _, inv := range investments {
		if _, seen := totals[inv.ProductType]; !seen {
			order = append(order, inv.ProductType)
		}
		totals[inv.ProductType] += inv.CurrentValue
		totalValue += inv.CurrentValue
	}

	allocation := make([]dto.AllocationItem, 0, len(order))
	for _, productType := range order {
		value := totals[productType]
		percentage := 0.0
		if totalValue > 0 {
			percentage = utils.Round2(value / totalValue * 100)
		}
		allocation = append(allocation, dto.AllocationItem{
			ProductType: utils.NormalizeLabel(productType),
			Value:       value,
			Percentage:  percentage,
		})
	}

	return &dto.PortfolioAllocation{
		TotalValue: totalValue,
		Allocation: allocation,
	}, nil
}

func toTransactionRecords(transactions []model.Transaction) []dto.TransactionRecord {
	records := make([]dto.TransactionRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, dto.TransactionRecord{
			TransactionID: t.TransactionID,
			Date:          t.Date.Format("2006-01-02"),
			Category:      t.Category,
			Merchant:      t.Merchant,
			Amount:        t.Amount,
			Description:   t.Description,
		})
	}
	return records
}

func toInvestmentRecords(investments []model.Investment, includeAbsolute bool) []dto.InvestmentRecord {
	records := make([]dto.InvestmentRecord, 0, len(investments))
	for _, inv := range investments {
		record := dto.InvestmentRecord{
			InvestmentID:      inv.InvestmentID,
			ProductType:       inv.ProductType,
			ProductName:       inv.ProductName,
			InvestedAmount:    inv.InvestedAmount,
			CurrentValue:      inv.CurrentValue,
			ReturnsPercentage: inv.ReturnsPercentage,
			RiskLevel:         inv.RiskLevel,
		}
		if includeAbsolute {
			record.ReturnsAbsolute = inv.ReturnsAbsolute
		}
		records = append(records, record)
	}
	return records
}

// summarizeTransactions derives spend analytics over the fetched window.
// Returns nil when the window is empty so callers can tell "no data" from
// "all zeros".
func summarizeTransactions(transactions []model.Transaction) *dto.TransactionSummary {
	if len(transactions) == 0 {
		return nil
	}

	var totalSpent float64
	categorySpending := map[string]float64{}
	categoryOrder := []string{}
	minDate := transactions[0].Date
	maxDate := transactions[0].Date

	for _, t := range transactions {
		totalSpent += t.Amount
		if _, seen := categorySpending[t.Category]; !seen {
			categoryOrder = append(categoryOrder, t.Category)
		}
		categorySpending[t.Category] += t.Amount
		if t.Date.Before(minDate) {
			minDate = t.Date
		}
		if t.Date.After(maxDate) {
			maxDate = t.Date
		}
	}

	// Ties keep first-seen order so repeated runs over the same rows agree.
	sort.SliceStable(categoryOrder, func(i, j int) bool {
		return categorySpending[categoryOrder[i]] > categorySpending[categoryOrder[j]]
	})

	topCategories := []string{}
	for i, category := range categoryOrder {
		if i >= topCategoryCount {
			break
		}
		topCategories = append(topCategories, utils.NormalizeLabel(category))
	}

	breakdown := make(map[string]float64, len(categorySpending))
	for category, amount := range categorySpending {
		breakdown[utils.NormalizeLabel(category)] += amount
	}

	spanDays := maxDate.Sub(minDate).Hours() / 24
	monthsCovered := spanDays / daysPerAverageMonth
	if monthsCovered < 1 {
		monthsCovered = 1
	}

	return &dto.TransactionSummary{
		TotalSpent:        totalSpent,
		MonthlyAverage:    totalSpent / monthsCovered,
		TopCategories:     topCategories,
		CategoryBreakdown: breakdown,
		TransactionCount:  len(transactions),
	}
}

// summarizeInvestments derives portfolio analytics. The best performer is
// ranked by the stored returns percentage, earlier rows win ties.
func summarizeInvestments(investments []model.Investment) *dto.InvestmentSummary {
	if len(investments) == 0 {
		return nil
	}

	var totalInvested, currentValue float64
	productTypes := map[string]int{}
	best := investments[0]

	for _, inv := range investments {
		totalInvested += inv.InvestedAmount
		currentValue += inv.CurrentValue
		productTypes[utils.NormalizeLabel(inv.ProductType)]++
		if inv.ReturnsPercentage > best.ReturnsPercentage {
			best = inv
		}
	}

	totalReturns := currentValue - totalInvested
	returnPercentage := 0.0
	if totalInvested > 0 {
		returnPercentage = totalReturns / totalInvested * 100
	}

	return &dto.InvestmentSummary{
		TotalInvested:    totalInvested,
		CurrentValue:     currentValue,
		TotalReturns:     totalReturns,
		ReturnPercentage: returnPercentage,
		ProductTypes:     productTypes,
		InvestmentCount:  len(investments),
		BestPerformer: &dto.BestPerformer{
			Name:   best.ProductName,
			Return: best.ReturnsPercentage,
		},
	}
}
