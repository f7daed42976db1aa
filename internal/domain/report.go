package domain

import "time"

// ReportPriority enumerates urgency of a support report.
type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "Low"
	ReportPriorityMedium ReportPriority = "Medium"
	ReportPriorityHigh   ReportPriority = "High"
)

// ValidPriority reports whether p is one of the enumerated priorities.
func ValidPriority(p ReportPriority) bool {
	switch p {
	case ReportPriorityLow, ReportPriorityMedium, ReportPriorityHigh:
		return true
	}
	return false
}

// ReportStatusDefault is the status assigned to freshly submitted reports.
// Later values come verbatim from the tracker workflow.
const ReportStatusDefault = "Open"

// Report is a support ticket submitted by a customer, optionally mirrored to
// the external tracker.
type Report struct {
	ID            string
	ReporterName  string
	ReporterEmail string
	CustomerID    string
	Title         string
	Description   string
	Priority      ReportPriority
	Category      string
	Confirm       bool
	ImagePath     string
	JiraIssueID   string
	JiraIssueKey  string
	JiraIssueURL  string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
