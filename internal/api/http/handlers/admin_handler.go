package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-portal/internal/api/dto"
	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/repository"
	"github.com/spec-kit/customer-portal/internal/service"
	"github.com/spec-kit/customer-portal/internal/storage"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// AdminHandler exposes staff authentication and account management.
type AdminHandler struct {
	auth    *service.AuthService
	staff   *service.StaffService
	uploads *storage.UploadStore
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, staffService *service.StaffService, uploads *storage.UploadStore) *AdminHandler {
	return &AdminHandler{auth: authService, staff: staffService, uploads: uploads}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	staff, token, exp, err := h.auth.LoginStaff(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"staff": dto.NewStaffResponse(staff),
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Create handles POST /api/admin/create. Super-admin only.
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff account required")
	}

	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, err := h.staff.CreateStaff(c.UserContext(), principal.Staff, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewStaffResponse(staff),
	})
}

// Profile handles GET /api/admin/profile for the authenticated staff member.
func (h *AdminHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff account required")
	}
	staff, err := h.staff.GetProfile(c.UserContext(), principal.Staff.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewStaffResponse(staff),
	})
}

// SetAvatar handles PUT /api/admin/profile/avatar with a multipart `avatar`.
func (h *AdminHandler) SetAvatar(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff account required")
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return apperrors.NewValidationError("avatar file required", nil)
	}

	path, err := h.uploads.Save(c, file, "avatars")
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	staff, err := h.staff.SetAvatar(c.UserContext(), principal.Staff.ID, path)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewStaffResponse(staff),
	})
}

// List handles GET /api/admin/staff. Admin and above.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff account required")
	}

	accounts, err := h.staff.List(c.UserContext(), principal.Staff, repository.StaffFilter{
		Limit:  queryInt(c, "limit", 100),
		Offset: queryInt(c, "offset", 0),
	})
	if err != nil {
		return err
	}

	out := make([]dto.StaffResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, dto.NewStaffResponse(&accounts[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// Deactivate handles POST /api/admin/staff/:id/deactivate. Super-admin only.
func (h *AdminHandler) Deactivate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff account required")
	}

	staff, err := h.staff.Deactivate(c.UserContext(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewStaffResponse(staff),
	})
}
