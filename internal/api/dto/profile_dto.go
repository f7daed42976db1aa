package dto

import "github.com/spec-kit/customer-portal/internal/service"

// ProfileResponse is the derived display profile.
type ProfileResponse struct {
	Name         string `json:"name"`
	CompanyEmail string `json:"company_email"`
	Phone        string `json:"phone"`
	Tier         string `json:"tier"`
	Storage      string `json:"storage"`
	Avatar       string `json:"avatar,omitempty"`
}

// NewProfileResponse maps the service view.
func NewProfileResponse(profile *service.Profile) ProfileResponse {
	return ProfileResponse{
		Name:         profile.Name,
		CompanyEmail: profile.CompanyEmail,
		Phone:        profile.Phone,
		Tier:         profile.Tier,
		Storage:      profile.Storage,
		Avatar:       profile.Avatar,
	}
}
