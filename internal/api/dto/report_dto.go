package dto

import (
	"time"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// CreateReportRequest payload. Also accepted as multipart form fields with an
// optional `image` file.
type CreateReportRequest struct {
	ReporterName  string                `json:"reporter_name" form:"reporter_name"`
	ReporterEmail string                `json:"reporter_email" form:"reporter_email"`
	CustomerID    string                `json:"customer_id" form:"customer_id"`
	Title         string                `json:"title" form:"title"`
	Description   string                `json:"description" form:"description"`
	Priority      domain.ReportPriority `json:"priority" form:"priority"`
	Category      string                `json:"category" form:"category"`
	Confirm       bool                  `json:"confirm" form:"confirm"`
}

// UpdateReportRequest carries staff-editable fields.
type UpdateReportRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.ReportPriority `json:"priority"`
	Category    *string                `json:"category"`
	Status      *string                `json:"status"`
}

// ReportResponse is the wire view of a report.
type ReportResponse struct {
	ID            string                `json:"id"`
	ReporterName  string                `json:"reporter_name"`
	ReporterEmail string                `json:"reporter_email"`
	CustomerID    string                `json:"customer_id,omitempty"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Priority      domain.ReportPriority `json:"priority"`
	Category      string                `json:"category,omitempty"`
	ImagePath     string                `json:"image_path,omitempty"`
	JiraIssueKey  string                `json:"jira_issue_key,omitempty"`
	JiraIssueURL  string                `json:"jira_issue_url,omitempty"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// NewReportResponse maps the domain record.
func NewReportResponse(report *domain.Report) ReportResponse {
	return ReportResponse{
		ID:            report.ID,
		ReporterName:  report.ReporterName,
		ReporterEmail: report.ReporterEmail,
		CustomerID:    report.CustomerID,
		Title:         report.Title,
		Description:   report.Description,
		Priority:      report.Priority,
		Category:      report.Category,
		ImagePath:     report.ImagePath,
		JiraIssueKey:  report.JiraIssueKey,
		JiraIssueURL:  report.JiraIssueURL,
		Status:        report.Status,
		CreatedAt:     report.CreatedAt,
		UpdatedAt:     report.UpdatedAt,
	}
}
