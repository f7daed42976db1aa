package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/config"
	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/repository"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// StaffService manages staff account provisioning and profiles.
type StaffService struct {
	staff      repository.StaffRepository
	bcryptCost int
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, staffRepo repository.StaffRepository) *StaffService {
	return &StaffService{
		staff:      staffRepo,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

func requireSuperAdmin(actor *domain.StaffAccount) error {
	if actor == nil || actor.Role != domain.StaffRoleSuperAdmin {
		return apperrors.NewForbidden("super-admin role required")
	}
	return nil
}

// CreateStaff provisions a new staff account. Only super-admins may call.
func (s *StaffService) CreateStaff(ctx context.Context, actor *domain.StaffAccount, name, email, password string, role domain.StaffRole) (*domain.StaffAccount, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email, password required", nil)
	}
	if !domain.ValidStaffRole(role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
	}

	if _, err := s.staff.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.StaffAccount{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// GetProfile returns a staff account by id.
func (s *StaffService) GetProfile(ctx context.Context, id string) (*domain.StaffAccount, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("staff account", nil)
		}
		return nil, err
	}
	return staff, nil
}

// SetAvatar stores the uploaded avatar's path on the account.
func (s *StaffService) SetAvatar(ctx context.Context, id, avatarPath string) (*domain.StaffAccount, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff.AvatarPath = avatarPath
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// List returns staff accounts matching the filter.
func (s *StaffService) List(ctx context.Context, actor *domain.StaffAccount, filter repository.StaffFilter) ([]domain.StaffAccount, error) {
	if actor == nil || !actor.Role.AtLeastAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return s.staff.List(ctx, filter)
}

// Deactivate disables an account without deleting it.
func (s *StaffService) Deactivate(ctx context.Context, actor *domain.StaffAccount, id string) (*domain.StaffAccount, error) {
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff.Active = false
	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}
