package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-portal/internal/domain"
)

func TestGetProfileDefaultsWithoutUpgradeHistory(t *testing.T) {
	customers := newFakeCustomerRepo()
	upgrades := newFakeUpgradeRepo()
	svc := NewProfileService(customers, upgrades)

	require.NoError(t, customers.Create(context.Background(), &domain.Customer{
		CustomerID:   "CS-TEST0001",
		CompanyEmail: "plain@acme.example",
		PrimaryContact: domain.Contact{
			Name:  "Pat Smith",
			Phone: "+1-555-0101",
		},
	}))

	profile, err := svc.GetProfile(context.Background(), "plain@acme.example")
	require.NoError(t, err)
	assert.Equal(t, "Pat Smith", profile.Name)
	assert.Equal(t, "STANDARD TIER", profile.Tier)
	assert.Equal(t, "200GB", profile.Storage)
}

func TestGetProfileInfersTierFromFreeTextSelection(t *testing.T) {
	customers := newFakeCustomerRepo()
	upgrades := newFakeUpgradeRepo()
	svc := NewProfileService(customers, upgrades)

	require.NoError(t, customers.Create(context.Background(), &domain.Customer{
		CustomerID:   "CS-TEST0002",
		CompanyEmail: "biz@acme.example",
	}))
	require.NoError(t, upgrades.Create(context.Background(), &domain.UpgradeRequest{
		Email:        "biz@acme.example",
		SelectedTier: "Business Plan",
		Status:       domain.UpgradeStatusPending,
	}))

	profile, err := svc.GetProfile(context.Background(), "biz@acme.example")
	require.NoError(t, err)
	assert.Equal(t, "BUSINESS TIER", profile.Tier)
	assert.Equal(t, "400GB", profile.Storage)
}

func TestGetProfilePrefersExplicitTierFields(t *testing.T) {
	customers := newFakeCustomerRepo()
	upgrades := newFakeUpgradeRepo()
	svc := NewProfileService(customers, upgrades)

	require.NoError(t, customers.Create(context.Background(), &domain.Customer{
		CustomerID:   "CS-TEST0003",
		CompanyEmail: "explicit@acme.example",
	}))
	require.NoError(t, upgrades.Create(context.Background(), &domain.UpgradeRequest{
		Email:        "explicit@acme.example",
		NewTier:      "PREMIUM TIER",
		NewStorage:   "600GB",
		SelectedTier: "standard",
		Status:       domain.UpgradeStatusApproved,
	}))

	profile, err := svc.GetProfile(context.Background(), "explicit@acme.example")
	require.NoError(t, err)
	assert.Equal(t, "PREMIUM TIER", profile.Tier)
	assert.Equal(t, "600GB", profile.Storage)
}

func TestUpdateProfileUpsertsMissingCustomer(t *testing.T) {
	customers := newFakeCustomerRepo()
	upgrades := newFakeUpgradeRepo()
	svc := NewProfileService(customers, upgrades)

	customer, err := svc.UpdateProfile(context.Background(), "new@acme.example", ProfilePatch{
		Name:  "Alex Nguyen",
		Phone: "+1-555-0102",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^CS-[A-Z0-9]{8}$`, customer.CustomerID)
	assert.Equal(t, "new@acme.example", customer.CompanyEmail)
	assert.Equal(t, "Alex Nguyen", customer.PrimaryContact.Name)
	assert.True(t, customer.IsActive)
}

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	customers := newFakeCustomerRepo()
	upgrades := newFakeUpgradeRepo()
	svc := NewProfileService(customers, upgrades)

	require.NoError(t, customers.Create(context.Background(), &domain.Customer{
		CustomerID:   "CS-TEST0004",
		CompanyName:  "Acme Corp",
		CompanyEmail: "patch@acme.example",
		PrimaryContact: domain.Contact{
			Name:  "Old Name",
			Phone: "+1-555-0103",
		},
	}))

	customer, err := svc.UpdateProfile(context.Background(), "patch@acme.example", ProfilePatch{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", customer.PrimaryContact.Name)
	assert.Equal(t, "+1-555-0103", customer.PrimaryContact.Phone)
	assert.Equal(t, "Acme Corp", customer.CompanyName)
}
