package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/events"
	"github.com/spec-kit/customer-portal/internal/repository"
	"github.com/spec-kit/customer-portal/internal/tracker"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// ReportService coordinates support report workflows and tracker mirroring.
type ReportService struct {
	reports    repository.ReportRepository
	tracker    tracker.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ReportDependencies bundles collaborators for the report service. Tracker
// may be nil when the integration is not configured.
type ReportDependencies struct {
	ReportRepo repository.ReportRepository
	Tracker    tracker.Client
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ReportCreateInput describes a report submission.
type ReportCreateInput struct {
	ReporterName  string
	ReporterEmail string
	CustomerID    string
	Title         string
	Description   string
	Priority      domain.ReportPriority
	Category      string
	Confirm       bool
	ImagePath     string
}

// ReportUpdateInput carries staff-editable fields.
type ReportUpdateInput struct {
	Title       *string
	Description *string
	Priority    *domain.ReportPriority
	Category    *string
	Status      *string
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports:    deps.ReportRepo,
		tracker:    deps.Tracker,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create validates and persists a report, then mirrors it to the tracker.
// The mirror call is best-effort: a tracker failure is logged and the local
// record stays without issue references.
func (s *ReportService) Create(ctx context.Context, input ReportCreateInput) (*domain.Report, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" || !input.Confirm {
		return nil, apperrors.NewValidationError("title, description and confirm are required", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.ReportPriorityMedium
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("priority must be Low, Medium or High",
			map[string]any{"priority": input.Priority})
	}

	report := &domain.Report{
		ReporterName:  strings.TrimSpace(input.ReporterName),
		ReporterEmail: strings.ToLower(strings.TrimSpace(input.ReporterEmail)),
		CustomerID:    input.CustomerID,
		Title:         title,
		Description:   description,
		Priority:      input.Priority,
		Category:      input.Category,
		Confirm:       input.Confirm,
		ImagePath:     input.ImagePath,
		Status:        domain.ReportStatusDefault,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	// Mirror only after the row exists, so a failed insert never leaves an
	// orphaned tracker issue.
	if s.tracker != nil {
		issue, err := s.tracker.CreateIssue(ctx, tracker.IssueInput{
			Summary:     title,
			Description: description,
			Priority:    string(input.Priority),
		})
		if err != nil {
			s.logger.Warn("tracker mirror failed; report saved without issue reference",
				zap.String("report_id", report.ID), zap.Error(err))
		} else {
			report.JiraIssueID = issue.ID
			report.JiraIssueKey = issue.Key
			report.JiraIssueURL = issue.URL
			if err := s.reports.Update(ctx, report); err != nil {
				s.logger.Warn("failed to store issue reference",
					zap.String("report_id", report.ID),
					zap.String("issue_key", issue.Key), zap.Error(err))
			}
		}
	}

	s.publishEvent(ctx, events.Event{
		Type: events.EventReportCreated,
		Payload: events.ReportCreatedPayload{
			ReportID:      report.ID,
			ReporterEmail: report.ReporterEmail,
			Title:         report.Title,
			Priority:      report.Priority,
			IssueKey:      report.JiraIssueKey,
		},
	})
	return report, nil
}

// List returns reports matching the filter.
func (s *ReportService) List(ctx context.Context, filter repository.ReportFilter) ([]domain.Report, error) {
	return s.reports.ListWithFilter(ctx, filter)
}

// GetByID fetches a single report.
func (s *ReportService) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	return s.reports.GetByID(ctx, id)
}

// Update applies staff edits; a status change is pushed to the tracker
// best-effort when a mirror exists.
func (s *ReportService) Update(ctx context.Context, id string, input ReportUpdateInput) (*domain.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := report.Status
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, apperrors.NewValidationError("title cannot be empty", nil)
		}
		report.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		report.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("priority must be Low, Medium or High", nil)
		}
		report.Priority = *input.Priority
	}
	if input.Category != nil {
		report.Category = *input.Category
	}
	if input.Status != nil {
		report.Status = *input.Status
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}

	if s.tracker != nil && report.JiraIssueKey != "" && (input.Title != nil || input.Description != nil) {
		if err := s.tracker.UpdateIssue(ctx, report.JiraIssueKey, map[string]any{
			"summary": report.Title,
		}); err != nil {
			s.logger.Warn("tracker update failed", zap.String("issue_key", report.JiraIssueKey), zap.Error(err))
		}
	}

	if report.Status != oldStatus {
		s.publishStatusChange(ctx, report, oldStatus)
	}
	return report, nil
}

// Delete removes a report.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	return s.reports.Delete(ctx, id)
}

// SyncStatus writes the tracker's status verbatim onto the matching report.
// Used by the inbound webhook and manual sync.
func (s *ReportService) SyncStatus(ctx context.Context, issueKey, status string) (*domain.Report, error) {
	report, err := s.reports.GetByIssueKey(ctx, issueKey)
	if err != nil {
		return nil, err
	}
	if report.Status == status {
		return report, nil
	}

	oldStatus := report.Status
	report.Status = status
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, report, oldStatus)
	return report, nil
}

func (s *ReportService) publishStatusChange(ctx context.Context, report *domain.Report, oldStatus string) {
	s.publishEvent(ctx, events.Event{
		Type: events.EventReportStatusChanged,
		Payload: events.ReportStatusChangedPayload{
			ReportID:      report.ID,
			ReporterEmail: report.ReporterEmail,
			IssueKey:      report.JiraIssueKey,
			OldStatus:     oldStatus,
			NewStatus:     report.Status,
		},
	})
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
