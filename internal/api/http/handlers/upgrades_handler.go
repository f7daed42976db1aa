package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-portal/internal/api/dto"
	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/domain"
	"github.com/spec-kit/customer-portal/internal/service"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// UpgradesHandler exposes the tier upgrade workflow.
type UpgradesHandler struct {
	upgrades *service.UpgradeService
}

// NewUpgradesHandler constructs handler.
func NewUpgradesHandler(upgrades *service.UpgradeService) *UpgradesHandler {
	return &UpgradesHandler{upgrades: upgrades}
}

// Create handles POST /api/upgrade-requests. A customer caller always opens
// the request for their own account; the body email is honored only for staff.
func (h *UpgradesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUpgradeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	email := req.Email
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Customer != nil {
		email = principal.Customer.CompanyEmail
	}

	request, err := h.upgrades.Request(c.UserContext(), email, req.SelectedTier)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUpgradeRequestResponse(request),
	})
}

// List handles GET /api/upgrade-requests. A `status=pending` query serves the
// cached pending listing; anything else hits the database.
func (h *UpgradesHandler) List(c *fiber.Ctx) error {
	var (
		requests []domain.UpgradeRequest
		err      error
	)
	if c.Query("status") == string(domain.UpgradeStatusPending) {
		requests, err = h.upgrades.ListPending(c.UserContext())
	} else {
		requests, err = h.upgrades.ListAll(c.UserContext(), queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	}
	if err != nil {
		return err
	}

	out := make([]dto.UpgradeRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, dto.NewUpgradeRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Pending handles GET /api/upgrade-requests/pending.
func (h *UpgradesHandler) Pending(c *fiber.Ctx) error {
	requests, err := h.upgrades.ListPending(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UpgradeRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, dto.NewUpgradeRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Get handles GET /api/upgrade-requests/:id.
func (h *UpgradesHandler) Get(c *fiber.Ctx) error {
	request, err := h.upgrades.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUpgradeRequestResponse(request),
	})
}

// Approve handles POST /api/upgrade-requests/:id/approve.
func (h *UpgradesHandler) Approve(c *fiber.Ctx) error {
	request, err := h.upgrades.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUpgradeRequestResponse(request),
	})
}

// Reject handles POST /api/upgrade-requests/:id/reject.
func (h *UpgradesHandler) Reject(c *fiber.Ctx) error {
	request, err := h.upgrades.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUpgradeRequestResponse(request),
	})
}
