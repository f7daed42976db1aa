package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/repository"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

func TestCreateStaffRequiresSuperAdmin(t *testing.T) {
	svc := NewStaffService(testConfig(), newFakeStaffRepo())

	admin := &domain.StaffAccount{Role: domain.StaffRoleAdmin}
	_, err := svc.CreateStaff(context.Background(), admin, "Ops", "ops@portal.example", "pw", domain.StaffRoleStaff)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	_, err = svc.CreateStaff(context.Background(), nil, "Ops", "ops@portal.example", "pw", domain.StaffRoleStaff)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestCreateStaffValidatesRoleAndDuplicates(t *testing.T) {
	svc := NewStaffService(testConfig(), newFakeStaffRepo())
	superAdmin := &domain.StaffAccount{Role: domain.StaffRoleSuperAdmin}

	_, err := svc.CreateStaff(context.Background(), superAdmin, "Ops", "ops@portal.example", "pw", "INTERN")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	created, err := svc.CreateStaff(context.Background(), superAdmin, "Ops", "ops@portal.example", "pw", domain.StaffRoleStaff)
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.NotEqual(t, "pw", created.PasswordHash)

	_, err = svc.CreateStaff(context.Background(), superAdmin, "Ops Two", "ops@portal.example", "pw2", domain.StaffRoleStaff)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestListRequiresAdmin(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(testConfig(), repo)
	superAdmin := &domain.StaffAccount{Role: domain.StaffRoleSuperAdmin}

	_, err := svc.CreateStaff(context.Background(), superAdmin, "Ops", "ops@portal.example", "pw", domain.StaffRoleStaff)
	require.NoError(t, err)

	staff := &domain.StaffAccount{Role: domain.StaffRoleStaff}
	_, err = svc.List(context.Background(), staff, repository.StaffFilter{})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	admin := &domain.StaffAccount{Role: domain.StaffRoleAdmin}
	accounts, err := svc.List(context.Background(), admin, repository.StaffFilter{})
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestDeactivateDisablesAccount(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewStaffService(testConfig(), repo)
	superAdmin := &domain.StaffAccount{Role: domain.StaffRoleSuperAdmin}

	created, err := svc.CreateStaff(context.Background(), superAdmin, "Ops", "ops@portal.example", "pw", domain.StaffRoleStaff)
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(context.Background(), superAdmin, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	admin := &domain.StaffAccount{Role: domain.StaffRoleAdmin}
	_, err = svc.Deactivate(context.Background(), admin, created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}
