package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-portal/internal/api/dto"
	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/repository"
	"github.com/spec-kit/customer-portal/internal/service"
	"github.com/spec-kit/customer-portal/internal/storage"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// ReportsHandler exposes support report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
	uploads *storage.UploadStore
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService, uploads *storage.UploadStore) *ReportsHandler {
	return &ReportsHandler{reports: reports, uploads: uploads}
}

// Create handles POST /api/reports. Accepts JSON or multipart form data with
// an optional `image` attachment.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ReportCreateInput{
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		CustomerID:    req.CustomerID,
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Category:      req.Category,
		Confirm:       req.Confirm,
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, saveErr := h.uploads.Save(c, file, "reports")
		if saveErr != nil {
			return apperrors.NewInternalError(saveErr)
		}
		input.ImagePath = path
	}

	report, err := h.reports.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewReportResponse(report),
	})
}

// List handles GET /api/reports with optional filters.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	filter := repository.ReportFilter{
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	if email := c.Query("email"); email != "" {
		filter.ReporterEmail = &email
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if statuses := c.Query("status"); statuses != "" {
		filter.Statuses = strings.Split(statuses, ",")
	}
	if priorities := c.Query("priority"); priorities != "" {
		for _, p := range strings.Split(priorities, ",") {
			filter.Priorities = append(filter.Priorities, domain.ReportPriority(p))
		}
	}

	reports, err := h.reports.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, dto.NewReportResponse(&reports[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Get handles GET /api/reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.reports.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewReportResponse(report),
	})
}

// Update handles PUT /api/reports/:id.
func (h *ReportsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.Update(c.UserContext(), c.Params("id"), service.ReportUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewReportResponse(report),
	})
}

// Delete handles DELETE /api/reports/:id.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	if err := h.reports.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"message": "report deleted"},
	})
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}
