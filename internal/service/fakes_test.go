package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"banking-chatbot/internal/dto"
	"banking-chatbot/internal/model"
	"banking-chatbot/pkg/utils"
)

// In-memory doubles for the repository interfaces. They implement just
// enough filtering to drive the service logic under test.

type fakeCustomerRepo struct {
	customers map[string]model.Customer
	creates   int
}

func newFakeCustomerRepo(customers ...model.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: map[string]model.Customer{}}
	for _, c := range customers {
		repo.customers[c.CustomerID] = c
	}
	return repo
}

func (r *fakeCustomerRepo) Get(ctx context.Context, customerID string, opts ...utils.DBOption) (*model.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, opts ...utils.DBOption) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	r.customers[customer.CustomerID] = *customer
	r.creates++
	return nil
}

func (r *fakeCustomerRepo) FirstOrCreate(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	if _, ok := r.customers[customer.CustomerID]; ok {
		return nil
	}
	return r.Create(ctx, customer, opts...)
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *model.Customer, opts ...utils.DBOption) error {
	r.customers[customer.CustomerID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, customerID string, opts ...utils.DBOption) error {
	delete(r.customers, customerID)
	return nil
}

type fakeTransactionRepo struct {
	transactions []model.Transaction
	creates      int
}

func (r *fakeTransactionRepo) Get(ctx context.Context, transactionID string, opts ...utils.DBOption) (*model.Transaction, error) {
	for _, t := range r.transactions {
		if t.TransactionID == transactionID {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) Query(ctx context.Context, filter dto.TransactionFilter, opts ...utils.DBOption) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, t := range r.transactions {
		if filter.CustomerID != "" && t.CustomerID != filter.CustomerID {
			continue
		}
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}
		if filter.MinAmount != nil && t.Amount < *filter.MinAmount {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeTransactionRepo) Create(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error {
	r.transactions = append(r.transactions, *txn)
	r.creates++
	return nil
}

func (r *fakeTransactionRepo) FirstOrCreate(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error {
	for _, t := range r.transactions {
		if t.TransactionID == txn.TransactionID {
			return nil
		}
	}
	return r.Create(ctx, txn, opts...)
}

func (r *fakeTransactionRepo) Update(ctx context.Context, txn *model.Transaction, opts ...utils.DBOption) error {
	for i, t := range r.transactions {
		if t.TransactionID == txn.TransactionID {
			r.transactions[i] = *txn
		}
	}
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, transactionID string, opts ...utils.DBOption) error {
	out := r.transactions[:0]
	for _, t := range r.transactions {
		if t.TransactionID != transactionID {
			out = append(out, t)
		}
	}
	r.transactions = out
	return nil
}

type fakeInvestmentRepo struct {
	investments []model.Investment
	creates     int
}

func (r *fakeInvestmentRepo) Get(ctx context.Context, investmentID string, opts ...utils.DBOption) (*model.Investment, error) {
	for _, inv := range r.investments {
		if inv.InvestmentID == investmentID {
			return &inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvestmentRepo) Query(ctx context.Context, filter dto.InvestmentFilter, opts ...utils.DBOption) ([]model.Investment, error) {
	var out []model.Investment
	for _, inv := range r.investments {
		if filter.CustomerID != "" && inv.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProductType != nil && inv.ProductType != *filter.ProductType {
			continue
		}
		if filter.RiskLevel != nil && inv.RiskLevel != *filter.RiskLevel {
			continue
		}
		out = append(out, inv)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ReturnsPercentage > out[j].ReturnsPercentage })
	return out, nil
}

func (r *fakeInvestmentRepo) Create(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error {
	r.investments = append(r.investments, *inv)
	r.creates++
	return nil
}

func (r *fakeInvestmentRepo) FirstOrCreate(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error {
	for _, existing := range r.investments {
		if existing.InvestmentID == inv.InvestmentID {
			return nil
		}
	}
	return r.Create(ctx, inv, opts...)
}

func (r *fakeInvestmentRepo) Update(ctx context.Context, inv *model.Investment, opts ...utils.DBOption) error {
	for i, existing := range r.investments {
		if existing.InvestmentID == inv.InvestmentID {
			r.investments[i] = *inv
		}
	}
	return nil
}

func (r *fakeInvestmentRepo) Delete(ctx context.Context, investmentID string, opts ...utils.DBOption) error {
	out := r.investments[:0]
	for _, inv := range r.investments {
		if inv.InvestmentID != investmentID {
			out = append(out, inv)
		}
	}
	r.investments = out
	return nil
}

type fakeConversationRepo struct {
	conversations []model.Conversation
	messages      []model.Message
	nextID        uint
}

func (r *fakeConversationRepo) GetByConversationID(ctx context.Context, conversationID string, opts ...utils.DBOption) (*model.Conversation, error) {
	for _, c := range r.conversations {
		if c.ConversationID == conversationID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *model.Conversation, opts ...utils.DBOption) error {
	r.nextID++
	conversation.ID = r.nextID
	r.conversations = append(r.conversations, *conversation)
	return nil
}

func (r *fakeConversationRepo) CreateMessage(ctx context.Context, message *model.Message, opts ...utils.DBOption) error {
	message.ID = uint(len(r.messages) + 1)
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeConversationRepo) UpdateLastActivity(ctx context.Context, conversationID uint, at time.Time, opts ...utils.DBOption) error {
	for i, c := range r.conversations {
		if c.ID == conversationID {
			r.conversations[i].LastActivity = at
		}
	}
	return nil
}

func (r *fakeConversationRepo) GetMessages(ctx context.Context, conversationID uint, opts ...utils.DBOption) ([]model.Message, error) {
	var out []model.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *fakeConversationRepo) DeactivateIdleBefore(ctx context.Context, cutoff time.Time, opts ...utils.DBOption) (int64, error) {
	var n int64
	for i, c := range r.conversations {
		if c.IsActive && c.LastActivity.Before(cutoff) {
			r.conversations[i].IsActive = false
			n++
		}
	}
	return n, nil
}

type fakeAIRepo struct {
	intent       string
	intentErr    error
	generated    *dto.GenerateResult
	generateErr  error
	generateSeen int
}

func (r *fakeAIRepo) ClassifyIntent(ctx context.Context, query string) (string, error) {
	return r.intent, r.intentErr
}

func (r *fakeAIRepo) GenerateResponse(ctx context.Context, query string, profile *dto.CustomerProfile, contextData *dto.CustomerContext, history []dto.HistoryEntry, previousThought *string) (*dto.GenerateResult, error) {
	r.generateSeen++
	return r.generated, r.generateErr
}

func (r *fakeAIRepo) FollowUpSuggestions(intent string) []string {
	return []string{"Break down my spending by category"}
}

type fakeUnitOfWork struct{}

func (u *fakeUnitOfWork) Run(fn func(opts ...utils.DBOption) error) error {
	return fn()
}

type fakeCache struct {
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]interface{}{}}
}

func (c *fakeCache) Set(key string, value interface{}, _ time.Duration) {
	c.entries[key] = value
}

func (c *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Delete(key string) {
	delete(c.entries, key)
}

func (c *fakeCache) Flush() {
	c.entries = map[string]interface{}{}
}

type fakeUploadedFileRepo struct {
	files []model.UploadedFile
}

func (r *fakeUploadedFileRepo) Create(ctx context.Context, file *model.UploadedFile, opts ...utils.DBOption) error {
	file.ID = uint(len(r.files) + 1)
	r.files = append(r.files, *file)
	return nil
}

func (r *fakeUploadedFileRepo) Update(ctx context.Context, file *model.UploadedFile, opts ...utils.DBOption) error {
	for i, f := range r.files {
		if f.ID == file.ID {
			r.files[i] = *file
		}
	}
	return nil
}

func (r *fakeUploadedFileRepo) ListProcessedBefore(ctx context.Context, cutoff time.Time, opts ...utils.DBOption) ([]model.UploadedFile, error) {
	var out []model.UploadedFile
	for _, f := range r.files {
		if f.Processed && f.UploadedAt.Before(cutoff) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeUploadedFileRepo) DeleteByIDs(ctx context.Context, ids []uint, opts ...utils.DBOption) (int64, error) {
	keep := map[uint]bool{}
	for _, id := range ids {
		keep[id] = true
	}
	out := r.files[:0]
	var deleted int64
	for _, f := range r.files {
		if keep[f.ID] {
			deleted++
			continue
		}
		out = append(out, f)
	}
	r.files = out
	return deleted, nil
}

type fakeJobRepo struct {
	jobs      []model.Job
	histories []model.TaskExecutionHistory
	schedules []model.TaskSchedule
}

func (r *fakeJobRepo) Get(ctx context.Context, param *model.GetJobParam, opts ...utils.DBOption) ([]model.Job, error) {
	var out []model.Job
	for _, job := range r.jobs {
		if param != nil && len(param.IDs) > 0 {
			matched := false
			for _, id := range param.IDs {
				if job.ID == id {
					matched = true
				}
			}
			if !matched {
				continue
			}
		}
		if param != nil && param.IsActive != nil && job.IsActive != *param.IsActive {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

func (r *fakeJobRepo) FindJobsToSchedule(ctx context.Context, opts ...utils.DBOption) ([]model.TaskSchedule, error) {
	return r.schedules, nil
}

func (r *fakeJobRepo) CreateTaskExecutionHistory(ctx context.Context, history *model.TaskExecutionHistory, opts ...utils.DBOption) error {
	history.ID = uint(len(r.histories) + 1)
	r.histories = append(r.histories, *history)
	return nil
}

func (r *fakeJobRepo) UpdateTaskSchedule(ctx context.Context, schedule *model.TaskSchedule, opts ...utils.DBOption) error {
	for i, s := range r.schedules {
		if s.ID == schedule.ID {
			r.schedules[i] = *schedule
		}
	}
	return nil
}

func (r *fakeJobRepo) FindByID(ctx context.Context, id uint) (*model.Job, error) {
	for _, job := range r.jobs {
		if job.ID == id {
			return &job, nil
		}
	}
	return nil, nil
}

func (r *fakeJobRepo) UpdateTaskExecutionHistory(ctx context.Context, history *model.TaskExecutionHistory, opts ...utils.DBOption) error {
	for i, h := range r.histories {
		if h.ID == history.ID {
			r.histories[i] = *history
		}
	}
	return nil
}

func (r *fakeJobRepo) DeleteTaskHistoryOlderThan(ctx context.Context, date time.Time, opts ...utils.DBOption) (int64, error) {
	out := r.histories[:0]
	var deleted int64
	for _, h := range r.histories {
		if h.StartedAt.Before(date) {
			deleted++
			continue
		}
		out = append(out, h)
	}
	r.histories = out
	return deleted, nil
}

var errRepoDown = errors.New("repository unavailable")
