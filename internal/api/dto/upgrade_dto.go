package dto

import (
	"time"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// CreateUpgradeRequest payload.
type CreateUpgradeRequest struct {
	Email        string `json:"email"`
	SelectedTier string `json:"selected_tier"`
}

// UpgradeRequestResponse is the wire view of an upgrade request.
type UpgradeRequestResponse struct {
	ID              string               `json:"id"`
	Email           string               `json:"email"`
	PreviousTier    string               `json:"previous_tier"`
	NewTier         string               `json:"new_tier"`
	PreviousStorage string               `json:"previous_storage"`
	NewStorage      string               `json:"new_storage"`
	SelectedTier    string               `json:"selected_tier"`
	Status          domain.UpgradeStatus `json:"status"`
	RequestedAt     time.Time            `json:"requested_at"`
	ApprovedAt      *time.Time           `json:"approved_at,omitempty"`
}

// NewUpgradeRequestResponse maps the domain record.
func NewUpgradeRequestResponse(req *domain.UpgradeRequest) UpgradeRequestResponse {
	return UpgradeRequestResponse{
		ID:              req.ID,
		Email:           req.Email,
		PreviousTier:    req.PreviousTier,
		NewTier:         req.NewTier,
		PreviousStorage: req.PreviousStorage,
		NewStorage:      req.NewStorage,
		SelectedTier:    req.SelectedTier,
		Status:          req.Status,
		RequestedAt:     req.RequestedAt,
		ApprovedAt:      req.ApprovedAt,
	}
}
