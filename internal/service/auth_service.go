package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/config"
	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/mail"
	"github.com/spec-kit/customer-portal/internal/repository"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// AuthSubject identifies the caller when changing password.
type AuthSubject struct {
	Type domain.SubjectType
	ID   string
}

// SignupInput carries the onboarding wizard's output.
type SignupInput struct {
	CompanyName      string
	CompanyEmail     string
	PrimaryContact   domain.Contact
	SecondaryContact domain.Contact
	AWSSetup         map[string]any
	Aliases          map[string]any
	Agreements       map[string]any
	Password         string
}

// AuthService coordinates signup, login and credential recovery flows.
type AuthService struct {
	customers  repository.CustomerRepository
	staff      repository.StaffRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	mailer     mail.Mailer
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	CustomerRepo      repository.CustomerRepository
	StaffRepo         repository.StaffRepository
	PasswordResetRepo repository.PasswordResetRepository
	Mailer            mail.Mailer
	Logger            *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		customers:  deps.CustomerRepo,
		staff:      deps.StaffRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		mailer:     deps.Mailer,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// errInvalidCredentials is returned for both unknown identifiers and wrong
// passwords so callers cannot enumerate accounts.
func errInvalidCredentials() error {
	return apperrors.NewUnauthorized("invalid credentials")
}

// Signup creates a new onboarding record with a generated customer ID.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*domain.Customer, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(input.CompanyEmail))
	if email == "" || input.Password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("company email and password required", nil)
	}

	if _, err := s.customers.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", map[string]any{"company_email": email})
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	customer := &domain.Customer{
		CustomerID:       GenerateCustomerID(),
		CompanyName:      strings.TrimSpace(input.CompanyName),
		CompanyEmail:     email,
		PrimaryContact:   input.PrimaryContact,
		SecondaryContact: input.SecondaryContact,
		AWSSetup:         input.AWSSetup,
		Aliases:          input.Aliases,
		Agreements:       input.Agreements,
		PasswordHash:     hash,
		Role:             "customer",
		IsActive:         true,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(customer.ID, domain.SubjectTypeCustomer, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// Login authenticates a customer by company email or customer ID.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.Customer, string, time.Time, error) {
	customer, err := s.lookupCustomer(ctx, identifier)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, errInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if !customer.IsActive {
		return nil, "", time.Time{}, errInvalidCredentials()
	}
	if err := auth.ComparePassword(customer.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errInvalidCredentials()
	}
	token, exp, err := s.tokenMgr.GenerateToken(customer.ID, domain.SubjectTypeCustomer, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// LoginStaff authenticates a staff account and records the login time.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.StaffAccount, string, time.Time, error) {
	staff, err := s.staff.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, errInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if !staff.Active {
		return nil, "", time.Time{}, errInvalidCredentials()
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errInvalidCredentials()
	}

	now := time.Now()
	staff.LastLogin = &now
	if err := s.staff.Update(ctx, staff); err != nil {
		s.logger.Warn("failed to record staff login time", zap.Error(err))
	}

	token, exp, err := s.tokenMgr.GenerateToken(staff.ID, domain.SubjectTypeStaff, &staff.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return staff, token, exp, nil
}

// ValidateAccount reports whether an active customer exists for the given
// customer ID.
func (s *AuthService) ValidateAccount(ctx context.Context, customerID string) (bool, error) {
	customer, err := s.customers.GetByCustomerID(ctx, strings.ToUpper(strings.TrimSpace(customerID)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return customer.IsActive, nil
}

// RecoverCustomerID mails the generated CS- identifier to the registered
// address. Responds identically whether or not the email is known.
func (s *AuthService) RecoverCustomerID(ctx context.Context, email string) error {
	customer, err := s.customers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}
		return err
	}
	s.sendMail(customer.CompanyEmail, "Your customer ID",
		fmt.Sprintf("<p>Your customer ID is <b>%s</b>.</p>", customer.CustomerID))
	return nil
}

// RequestPasswordReset persists a reset token for either customer or staff email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	subjectType := domain.SubjectTypeCustomer
	subjectID := ""

	if customer, err := s.customers.GetByEmail(ctx, email); err == nil {
		subjectID = customer.ID
	} else if err == pgx.ErrNoRows {
		staff, staffErr := s.staff.GetByEmail(ctx, email)
		if staffErr != nil {
			return nil, staffErr
		}
		subjectType = domain.SubjectTypeStaff
		subjectID = staff.ID
	} else {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		SubjectType: string(subjectType),
		SubjectID:   subjectID,
		Token:       uuid.NewString(),
		ExpiresAt:   time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}

	s.sendMail(email, "Password reset",
		fmt.Sprintf("<p>Your password reset token is <b>%s</b>. It expires at %s.</p>",
			token.Token, token.ExpiresAt.Format(time.RFC3339)))
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
// Invalid or expired tokens never alter the stored hash.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewTokenInvalid()
		}
		return err
	}
	if token.UsedAt != nil {
		return apperrors.NewTokenInvalid()
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.NewTokenExpired()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	switch domain.SubjectType(token.SubjectType) {
	case domain.SubjectTypeCustomer:
		customer, err := s.customers.GetByID(ctx, token.SubjectID)
		if err != nil {
			return err
		}
		customer.PasswordHash = hash
		customer.MustChangePassword = false
		if err := s.customers.Update(ctx, customer); err != nil {
			return err
		}
	case domain.SubjectTypeStaff:
		staff, err := s.staff.GetByID(ctx, token.SubjectID)
		if err != nil {
			return err
		}
		staff.PasswordHash = hash
		if err := s.staff.Update(ctx, staff); err != nil {
			return err
		}
	default:
		return apperrors.NewTokenInvalid()
	}

	return s.resets.MarkUsed(ctx, token.ID)
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, subject AuthSubject, currentPassword, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	switch subject.Type {
	case domain.SubjectTypeCustomer:
		customer, err := s.customers.GetByID(ctx, subject.ID)
		if err != nil {
			return err
		}
		if err := auth.ComparePassword(customer.PasswordHash, currentPassword); err != nil {
			return errInvalidCredentials()
		}
		customer.PasswordHash = hash
		customer.MustChangePassword = false
		return s.customers.Update(ctx, customer)
	case domain.SubjectTypeStaff:
		staff, err := s.staff.GetByID(ctx, subject.ID)
		if err != nil {
			return err
		}
		if err := auth.ComparePassword(staff.PasswordHash, currentPassword); err != nil {
			return errInvalidCredentials()
		}
		staff.PasswordHash = hash
		return s.staff.Update(ctx, staff)
	default:
		return apperrors.NewUnauthorized("unknown subject")
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) lookupCustomer(ctx context.Context, identifier string) (*domain.Customer, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.HasPrefix(strings.ToUpper(identifier), "CS-") {
		return s.customers.GetByCustomerID(ctx, strings.ToUpper(identifier))
	}
	return s.customers.GetByEmail(ctx, strings.ToLower(identifier))
}

// sendMail is best-effort: failures are logged, never surfaced.
func (s *AuthService) sendMail(to, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(to, subject, body); err != nil {
		s.logger.Warn("mail send failed", zap.String("to", to), zap.Error(err))
	}
}

// GenerateCustomerID returns a fresh CS- prefixed 8-character uppercase
// alphanumeric identifier.
func GenerateCustomerID() string {
	return "CS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
