package events

import (
	"time"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated       EventType = "report_created"
	EventReportStatusChanged EventType = "report_status_changed"
	EventUpgradeRequested    EventType = "upgrade_requested"
	EventUpgradeResolved     EventType = "upgrade_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	ReportID      string                `json:"report_id"`
	ReporterEmail string                `json:"reporter_email"`
	Title         string                `json:"title"`
	Priority      domain.ReportPriority `json:"priority"`
	IssueKey      string                `json:"issue_key,omitempty"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	ReportID      string `json:"report_id"`
	ReporterEmail string `json:"reporter_email"`
	IssueKey      string `json:"issue_key,omitempty"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}

// UpgradeRequestedPayload payload.
type UpgradeRequestedPayload struct {
	RequestID string `json:"request_id"`
	Email     string `json:"email"`
	NewTier   string `json:"new_tier"`
}

// UpgradeResolvedPayload payload.
type UpgradeResolvedPayload struct {
	RequestID string               `json:"request_id"`
	Email     string               `json:"email"`
	NewTier   string               `json:"new_tier"`
	Status    domain.UpgradeStatus `json:"status"`
}
