package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/repository"
)

// Profile is the display view derived from the onboarding record plus the
// latest upgrade request.
type Profile struct {
	Name         string
	CompanyEmail string
	Phone        string
	Tier         string
	Storage      string
	Avatar       string
}

// ProfilePatch carries optional field updates.
type ProfilePatch struct {
	Name        string
	CompanyName string
	Phone       string
	AvatarPath  string
}

// ProfileService derives display profiles and applies updates.
type ProfileService struct {
	customers repository.CustomerRepository
	upgrades  repository.UpgradeRequestRepository
}

// NewProfileService constructs the service.
func NewProfileService(customers repository.CustomerRepository, upgrades repository.UpgradeRequestRepository) *ProfileService {
	return &ProfileService{customers: customers, upgrades: upgrades}
}

// GetProfile looks up the customer and resolves tier/storage from the most
// recent upgrade request for that email: explicit tier fields win, then the
// free-text selection is normalized, then the standard defaults apply.
func (s *ProfileService) GetProfile(ctx context.Context, email string) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	tier := domain.DefaultTier
	latest, err := s.upgrades.LatestByEmail(ctx, email)
	switch {
	case err == pgx.ErrNoRows:
		// no request history, defaults stand
	case err != nil:
		return nil, err
	case latest.NewTier != "" && latest.NewStorage != "":
		tier = domain.TierPlan{Title: latest.NewTier, Storage: latest.NewStorage}
	case latest.SelectedTier != "":
		tier = domain.InferTier(latest.SelectedTier)
	}

	return &Profile{
		Name:         customer.PrimaryContact.Name,
		CompanyEmail: customer.CompanyEmail,
		Phone:        customer.PrimaryContact.Phone,
		Tier:         tier.Title,
		Storage:      tier.Storage,
		Avatar:       customer.AvatarPath,
	}, nil
}

// UpdateProfile applies a patch with upsert semantics: a missing customer is
// created from the patch rather than rejected.
func (s *ProfileService) UpdateProfile(ctx context.Context, email string, patch ProfilePatch) (*domain.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	customer, err := s.customers.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		customer = &domain.Customer{
			CustomerID:   GenerateCustomerID(),
			CompanyName:  defaultString(patch.CompanyName, patch.Name),
			CompanyEmail: email,
			PrimaryContact: domain.Contact{
				Name:  patch.Name,
				Email: email,
				Phone: patch.Phone,
			},
			AvatarPath: patch.AvatarPath,
			Role:       "customer",
			IsActive:   true,
		}
		if err := s.customers.Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		customer.PrimaryContact.Name = patch.Name
	}
	if patch.CompanyName != "" {
		customer.CompanyName = patch.CompanyName
	}
	if patch.Phone != "" {
		customer.PrimaryContact.Phone = patch.Phone
	}
	if patch.AvatarPath != "" {
		customer.AvatarPath = patch.AvatarPath
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func defaultString(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}
