package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/customer-portal/internal/service"
	"github.com/spec-kit/customer-portal/internal/tracker"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// WebhookHandler receives inbound tracker notifications.
type WebhookHandler struct {
	reports *service.ReportService
	logger  *zap.Logger
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(reports *service.ReportService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{reports: reports, logger: logger}
}

// StatusUpdate handles POST /api/jira/status-update. The payload is applied
// verbatim; an unknown issue key is acknowledged without effect so the
// tracker does not retry forever.
func (h *WebhookHandler) StatusUpdate(c *fiber.Ctx) error {
	update, ok := tracker.ParseStatusWebhook(c.Body())
	if !ok {
		return apperrors.NewValidationError("issue key and status required", nil)
	}

	report, err := h.reports.SyncStatus(c.UserContext(), update.IssueKey, update.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			h.logger.Warn("webhook for unknown issue", zap.String("issue_key", update.IssueKey))
			return c.JSON(fiber.Map{
				"success": true,
				"data":    fiber.Map{"matched": false},
			})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"matched":    true,
			"report_id":  report.ID,
			"new_status": report.Status,
		},
	})
}
