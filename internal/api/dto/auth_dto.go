package dto

import (
	"time"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// ContactPayload mirrors domain.Contact on the wire.
type ContactPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SignupRequest payload for onboarding completion.
type SignupRequest struct {
	CompanyName      string         `json:"company_name"`
	CompanyEmail     string         `json:"company_email"`
	PrimaryContact   ContactPayload `json:"primary_contact"`
	SecondaryContact ContactPayload `json:"secondary_contact"`
	AWSSetup         map[string]any `json:"aws_setup"`
	Aliases          map[string]any `json:"aliases"`
	Agreements       map[string]any `json:"agreements"`
	Password         string         `json:"password"`
}

// LoginRequest payload; identifier is company email or customer ID.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RecoverCustomerIDRequest payload.
type RecoverCustomerIDRequest struct {
	Email string `json:"email"`
}

// PasswordResetRequest payload for initiating reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for confirming reset.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CustomerResponse is the password-free view of an onboarding record.
type CustomerResponse struct {
	ID                 string         `json:"id"`
	CustomerID         string         `json:"customer_id"`
	CompanyName        string         `json:"company_name"`
	CompanyEmail       string         `json:"company_email"`
	PrimaryContact     ContactPayload `json:"primary_contact"`
	SecondaryContact   ContactPayload `json:"secondary_contact"`
	AvatarPath         string         `json:"avatar_path,omitempty"`
	MustChangePassword bool           `json:"must_change_password"`
	IsActive           bool           `json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
}

// NewCustomerResponse maps the domain record.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           customer.ID,
		CustomerID:   customer.CustomerID,
		CompanyName:  customer.CompanyName,
		CompanyEmail: customer.CompanyEmail,
		PrimaryContact: ContactPayload{
			Name:  customer.PrimaryContact.Name,
			Email: customer.PrimaryContact.Email,
			Phone: customer.PrimaryContact.Phone,
		},
		SecondaryContact: ContactPayload{
			Name:  customer.SecondaryContact.Name,
			Email: customer.SecondaryContact.Email,
			Phone: customer.SecondaryContact.Phone,
		},
		AvatarPath:         customer.AvatarPath,
		MustChangePassword: customer.MustChangePassword,
		IsActive:           customer.IsActive,
		CreatedAt:          customer.CreatedAt,
	}
}
