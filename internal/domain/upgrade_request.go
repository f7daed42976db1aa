package domain

import "time"

// UpgradeStatus enumerates upgrade request states.
type UpgradeStatus string

const (
	UpgradeStatusPending  UpgradeStatus = "pending"
	UpgradeStatusApproved UpgradeStatus = "approved"
	UpgradeStatusRejected UpgradeStatus = "rejected"
)

// UpgradeRequest is a pending change to a customer's storage tier awaiting
// admin approval. Terminal once approved or rejected.
type UpgradeRequest struct {
	ID              string
	Email           string
	PreviousTier    string
	NewTier         string
	PreviousStorage string
	NewStorage      string
	SelectedTier    string
	Status          UpgradeStatus
	RequestedAt     time.Time
	ApprovedAt      *time.Time
}
