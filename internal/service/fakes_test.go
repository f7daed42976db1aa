package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/repository"
	"github.com/spec-kit/customer-portal/internal/tracker"
)

type fakeCustomerRepo struct {
	mu        sync.Mutex
	seq       int
	customers map[string]*domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*domain.Customer{}}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	customer.ID = "cust-" + strconv.Itoa(r.seq)
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer, ok := r.customers[id]; ok {
		clone := *customer
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCustomerRepo) GetByCustomerID(_ context.Context, customerID string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, customer := range r.customers {
		if customer.CustomerID == customerID {
			clone := *customer
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, customer := range r.customers {
		if strings.EqualFold(customer.CompanyEmail, email) {
			clone := *customer
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCustomerRepo) List(_ context.Context, _, _ int) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Customer
	for _, customer := range r.customers {
		result = append(result, *customer)
	}
	return result, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.customers, id)
	return nil
}

type fakeStaffRepo struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]*domain.StaffAccount
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{accounts: map[string]*domain.StaffAccount{}}
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	staff.ID = "staff-" + strconv.Itoa(r.seq)
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = staff.CreatedAt
	clone := *staff
	r.accounts[staff.ID] = &clone
	return nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *staff
	r.accounts[staff.ID] = &clone
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if staff, ok := r.accounts[id]; ok {
		clone := *staff
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, staff := range r.accounts {
		if strings.EqualFold(staff.Email, email) {
			clone := *staff
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeStaffRepo) List(_ context.Context, filter repository.StaffFilter) ([]domain.StaffAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.StaffAccount
	for _, staff := range r.accounts {
		if filter.Role != nil && staff.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && staff.Active != *filter.Active {
			continue
		}
		result = append(result, *staff)
	}
	return result, nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]*repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]*repository.PasswordResetToken{}}
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	token.ID = "reset-" + strconv.Itoa(r.seq)
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.Token == tokenStr {
			clone := *token
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	token.UsedAt = &now
	return nil
}

type fakeReportRepo struct {
	mu         sync.Mutex
	seq        int
	failCreate bool
	reports    map[string]*domain.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*domain.Report{}}
}

func (r *fakeReportRepo) Create(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return context.DeadlineExceeded
	}
	r.seq++
	report.ID = "report-" + strconv.Itoa(r.seq)
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *fakeReportRepo) Update(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[report.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report, ok := r.reports[id]; ok {
		clone := *report
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeReportRepo) GetByIssueKey(_ context.Context, key string) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, report := range r.reports {
		if report.JiraIssueKey == key {
			clone := *report
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeReportRepo) ListWithFilter(_ context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Report
	for _, report := range r.reports {
		if filter.ReporterEmail != nil && !strings.EqualFold(report.ReporterEmail, *filter.ReporterEmail) {
			continue
		}
		result = append(result, *report)
	}
	return result, nil
}

func (r *fakeReportRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.reports, id)
	return nil
}

type fakeUpgradeRepo struct {
	mu       sync.Mutex
	seq      int
	requests []*domain.UpgradeRequest
}

func newFakeUpgradeRepo() *fakeUpgradeRepo {
	return &fakeUpgradeRepo{}
}

func (r *fakeUpgradeRepo) Create(_ context.Context, req *domain.UpgradeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	req.ID = "upgrade-" + strconv.Itoa(r.seq)
	req.RequestedAt = time.Now()
	clone := *req
	r.requests = append(r.requests, &clone)
	return nil
}

func (r *fakeUpgradeRepo) Update(_ context.Context, req *domain.UpgradeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.requests {
		if existing.ID == req.ID {
			clone := *req
			r.requests[i] = &clone
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeUpgradeRepo) GetByID(_ context.Context, id string) (*domain.UpgradeRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			clone := *req
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUpgradeRepo) LatestByEmail(_ context.Context, email string) (*domain.UpgradeRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.UpgradeRequest
	for _, req := range r.requests {
		if !strings.EqualFold(req.Email, email) {
			continue
		}
		if latest == nil || req.RequestedAt.After(latest.RequestedAt) {
			latest = req
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeUpgradeRepo) List(_ context.Context, status *domain.UpgradeStatus, _, _ int) ([]domain.UpgradeRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.UpgradeRequest
	for _, req := range r.requests {
		if status != nil && req.Status != *status {
			continue
		}
		result = append(result, *req)
	}
	return result, nil
}

type fakeTracker struct {
	mu      sync.Mutex
	fail    bool
	created []tracker.IssueInput
	updated map[string]map[string]any
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{updated: map[string]map[string]any{}}
}

func (t *fakeTracker) CreateIssue(_ context.Context, input tracker.IssueInput) (*tracker.Issue, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return nil, context.DeadlineExceeded
	}
	t.created = append(t.created, input)
	key := "SUP-" + strconv.Itoa(len(t.created))
	return &tracker.Issue{ID: strconv.Itoa(10000 + len(t.created)), Key: key, URL: "https://example.atlassian.net/browse/" + key}, nil
}

func (t *fakeTracker) UpdateIssue(_ context.Context, key string, fields map[string]any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return context.DeadlineExceeded
	}
	t.updated[key] = fields
	return nil
}

func (t *fakeTracker) GetIssue(_ context.Context, key string, _ ...string) (map[string]any, error) {
	return map[string]any{"key": key}, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes++
	return nil
}
