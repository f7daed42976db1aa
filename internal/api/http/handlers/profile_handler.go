package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-portal/internal/api/dto"
	"github.com/spec-kit/customer-portal/internal/service"
	"github.com/spec-kit/customer-portal/internal/storage"
	apperrors "github.com/spec-kit/customer-portal/pkg/util"
)

// ProfileHandler exposes the derived customer profile.
type ProfileHandler struct {
	profiles *service.ProfileService
	uploads  *storage.UploadStore
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService, uploads *storage.UploadStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, uploads: uploads}
}

// Get handles GET /api/profile/:email.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.profiles.GetProfile(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewProfileResponse(profile),
	})
}

// Update handles PUT /api/profile/:email. Accepts multipart form data with
// optional text fields plus an `avatar` file; missing customers are created.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	patch := service.ProfilePatch{
		Name:        c.FormValue("name"),
		CompanyName: c.FormValue("company_name"),
		Phone:       c.FormValue("phone"),
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		path, saveErr := h.uploads.Save(c, file, "avatars")
		if saveErr != nil {
			return apperrors.NewInternalError(saveErr)
		}
		patch.AvatarPath = path
	}

	customer, err := h.profiles.UpdateProfile(c.UserContext(), c.Params("email"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewCustomerResponse(customer),
	})
}
