package dto

import (
	"time"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// StaffLoginRequest payload.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffCreateRequest payload for provisioning.
type StaffCreateRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     domain.StaffRole `json:"role"`
}

// StaffResponse is the password-free view of a staff account.
type StaffResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Role       domain.StaffRole `json:"role"`
	Active     bool             `json:"active"`
	AvatarPath string           `json:"avatar_path,omitempty"`
	LastLogin  *time.Time       `json:"last_login,omitempty"`
}

// NewStaffResponse maps the domain record.
func NewStaffResponse(staff *domain.StaffAccount) StaffResponse {
	return StaffResponse{
		ID:         staff.ID,
		Name:       staff.Name,
		Email:      staff.Email,
		Role:       staff.Role,
		Active:     staff.Active,
		AvatarPath: staff.AvatarPath,
		LastLogin:  staff.LastLogin,
	}
}
