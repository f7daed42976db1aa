package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/customer-portal/internal/events"
	"github.com/spec-kit/customer-portal/internal/mail"
)

// NotificationService emits best-effort email notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service. Mailer may be nil when outbound
// mail is not configured; events are then only logged.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReportCreated, n.handleReportCreated)
	n.dispatcher.Subscribe(events.EventReportStatusChanged, n.handleReportStatusChanged)
	n.dispatcher.Subscribe(events.EventUpgradeResolved, n.handleUpgradeResolved)
}

func (n *NotificationService) handleReportCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReportCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ReportCreated", zap.String("report_id", payload.ReportID), zap.String("issue_key", payload.IssueKey))
	n.send(payload.ReporterEmail, "Support report received",
		fmt.Sprintf("<p>We received your report <b>%s</b> and will follow up shortly.</p>", payload.Title))
	return nil
}

func (n *NotificationService) handleReportStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReportStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ReportStatusChanged",
		zap.String("report_id", payload.ReportID),
		zap.String("old_status", payload.OldStatus),
		zap.String("new_status", payload.NewStatus))
	n.send(payload.ReporterEmail, "Support report update",
		fmt.Sprintf("<p>Your report is now <b>%s</b>.</p>", payload.NewStatus))
	return nil
}

func (n *NotificationService) handleUpgradeResolved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UpgradeResolvedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UpgradeResolved",
		zap.String("request_id", payload.RequestID),
		zap.String("status", string(payload.Status)))
	n.send(payload.Email, "Storage tier request update",
		fmt.Sprintf("<p>Your upgrade to <b>%s</b> was %s.</p>", payload.NewTier, payload.Status))
	return nil
}

// send is best-effort: failures are logged, never propagated.
func (n *NotificationService) send(to, subject, body string) {
	if n.mailer == nil || to == "" {
		return
	}
	if err := n.mailer.Send(to, subject, body); err != nil {
		n.logger.Warn("notification mail failed", zap.String("to", to), zap.Error(err))
	}
}
