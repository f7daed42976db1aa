package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-portal/internal/api/dto"
	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/repository"
	"github.com/spec-kit/customer-portal/internal/service"
)

type stubCustomerRepo struct {
	customer *domain.Customer
}

func (r *stubCustomerRepo) Create(context.Context, *domain.Customer) error { return nil }
func (r *stubCustomerRepo) Update(context.Context, *domain.Customer) error { return nil }
func (r *stubCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	if r.customer != nil && r.customer.ID == id {
		return r.customer, nil
	}
	return nil, pgx.ErrNoRows
}
func (r *stubCustomerRepo) GetByCustomerID(context.Context, string) (*domain.Customer, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubCustomerRepo) GetByEmail(context.Context, string) (*domain.Customer, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubCustomerRepo) List(context.Context, int, int) ([]domain.Customer, error) {
	return nil, nil
}
func (r *stubCustomerRepo) Delete(context.Context, string) error { return nil }

type stubStaffRepo struct {
	staff *domain.StaffAccount
}

func (r *stubStaffRepo) Create(context.Context, *domain.StaffAccount) error { return nil }
func (r *stubStaffRepo) Update(context.Context, *domain.StaffAccount) error { return nil }
func (r *stubStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffAccount, error) {
	if r.staff != nil && r.staff.ID == id {
		return r.staff, nil
	}
	return nil, pgx.ErrNoRows
}
func (r *stubStaffRepo) GetByEmail(context.Context, string) (*domain.StaffAccount, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubStaffRepo) List(context.Context, repository.StaffFilter) ([]domain.StaffAccount, error) {
	return nil, nil
}

type stubUpgradeRepo struct {
	created []*domain.UpgradeRequest
}

func (r *stubUpgradeRepo) Create(_ context.Context, req *domain.UpgradeRequest) error {
	req.ID = "upgrade-1"
	req.RequestedAt = time.Now()
	r.created = append(r.created, req)
	return nil
}
func (r *stubUpgradeRepo) Update(context.Context, *domain.UpgradeRequest) error { return nil }
func (r *stubUpgradeRepo) GetByID(context.Context, string) (*domain.UpgradeRequest, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubUpgradeRepo) LatestByEmail(context.Context, string) (*domain.UpgradeRequest, error) {
	return nil, pgx.ErrNoRows
}
func (r *stubUpgradeRepo) List(context.Context, *domain.UpgradeStatus, int, int) ([]domain.UpgradeRequest, error) {
	return nil, nil
}

func newUpgradeApp(tm *auth.TokenManager, customers repository.CustomerRepository, staff repository.StaffRepository, upgrades repository.UpgradeRequestRepository) *fiber.App {
	svc := service.NewUpgradeService(service.UpgradeDependencies{UpgradeRepo: upgrades})
	handler := NewUpgradesHandler(svc)
	mw := auth.NewAuthMiddleware(tm, customers, staff)

	app := fiber.New()
	app.Post("/api/upgrade-requests", mw.Handle, handler.Create)
	return app
}

func postUpgrade(t *testing.T, app *fiber.App, token, email, tier string) int {
	t.Helper()
	body, err := json.Marshal(dto.CreateUpgradeRequest{Email: email, SelectedTier: tier})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/upgrade-requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateUpgradeUsesAuthenticatedCustomerEmail(t *testing.T) {
	customer := &domain.Customer{
		ID:           "cust-1",
		CustomerID:   "CS-AAAA1111",
		CompanyEmail: "owner@acme.example",
		IsActive:     true,
	}
	upgrades := &stubUpgradeRepo{}
	tm := auth.NewTokenManager("test-secret", 60)
	app := newUpgradeApp(tm, &stubCustomerRepo{customer: customer}, &stubStaffRepo{}, upgrades)

	token, _, err := tm.GenerateToken(customer.ID, domain.SubjectTypeCustomer, nil)
	require.NoError(t, err)

	status := postUpgrade(t, app, token, "someone-else@other.example", "premium")
	require.Equal(t, fiber.StatusCreated, status)
	require.Len(t, upgrades.created, 1)
	assert.Equal(t, "owner@acme.example", upgrades.created[0].Email,
		"body email must not override the authenticated customer")
}

func TestCreateUpgradeHonorsBodyEmailForStaff(t *testing.T) {
	role := domain.StaffRoleAdmin
	staff := &domain.StaffAccount{ID: "staff-1", Name: "Ada", Email: "ada@portal.example", Role: role, Active: true}
	upgrades := &stubUpgradeRepo{}
	tm := auth.NewTokenManager("test-secret", 60)
	app := newUpgradeApp(tm, &stubCustomerRepo{}, &stubStaffRepo{staff: staff}, upgrades)

	token, _, err := tm.GenerateToken(staff.ID, domain.SubjectTypeStaff, &role)
	require.NoError(t, err)

	status := postUpgrade(t, app, token, "customer@acme.example", "business")
	require.Equal(t, fiber.StatusCreated, status)
	require.Len(t, upgrades.created, 1)
	assert.Equal(t, "customer@acme.example", upgrades.created[0].Email)
}
