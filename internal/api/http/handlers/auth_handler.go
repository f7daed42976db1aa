package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-portal/internal/api/dto"
	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/service"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// AuthHandler exposes customer signup, login and credential recovery.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	customer, token, exp, err := h.auth.Signup(c.UserContext(), service.SignupInput{
		CompanyName:      req.CompanyName,
		CompanyEmail:     req.CompanyEmail,
		PrimaryContact:   domain.Contact(req.PrimaryContact),
		SecondaryContact: domain.Contact(req.SecondaryContact),
		AWSSetup:         req.AWSSetup,
		Aliases:          req.Aliases,
		Agreements:       req.Agreements,
		Password:         req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"customer": dto.NewCustomerResponse(customer),
			"auth":     dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /api/auth/login. The identifier is either the company
// email or the CS- customer ID.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Identifier == "" || req.Password == "" {
		return apperrors.NewValidationError("identifier and password required", nil)
	}

	customer, token, exp, err := h.auth.Login(c.UserContext(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"customer": dto.NewCustomerResponse(customer),
			"auth":     dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return apperrors.NewUnauthorized("customer account required")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewCustomerResponse(principal.Customer),
	})
}

// ValidateAccount handles GET /api/auth/validate-account/:customerID.
func (h *AuthHandler) ValidateAccount(c *fiber.Ctx) error {
	valid, err := h.auth.ValidateAccount(c.UserContext(), c.Params("customerID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"valid": valid},
	})
}

// RecoverCustomerID handles POST /api/auth/recover-customer-id. The response
// is the same whether or not the email is registered.
func (h *AuthHandler) RecoverCustomerID(c *fiber.Ctx) error {
	var req dto.RecoverCustomerIDRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.auth.RecoverCustomerID(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"message": "if the email is registered, the customer ID has been sent"},
	})
}

// RequestPasswordReset handles POST /api/auth/forgot-password.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	token, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"expires_at": token.ExpiresAt},
	})
}

// ConfirmPasswordReset handles POST /api/auth/reset-password.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and new password required", nil)
	}

	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"message": "password updated"},
	})
}

// ChangePassword handles POST /api/auth/change-password for any
// authenticated principal.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	subject := service.AuthSubject{Type: principal.SubjectType}
	switch {
	case principal.Customer != nil:
		subject.ID = principal.Customer.ID
	case principal.Staff != nil:
		subject.ID = principal.Staff.ID
	default:
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.auth.ChangePassword(c.UserContext(), subject, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"message": "password updated"},
	})
}
