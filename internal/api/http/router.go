package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-portal/internal/api/http/handlers"
	"github.com/spec-kit/customer-portal/internal/auth"
	"github.com/spec-kit/customer-portal/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Reports        *handlers.ReportsHandler
	Upgrades       *handlers.UpgradesHandler
	Admin          *handlers.AdminHandler
	Webhook        *handlers.WebhookHandler
	AuthMiddleware *auth.AuthMiddleware
	UploadsDir     string
	UploadsPrefix  string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if cfg.UploadsDir != "" {
		app.Static(cfg.UploadsPrefix, cfg.UploadsDir)
	}

	authed := cfg.AuthMiddleware.Handle
	staffOnly := auth.RequireStaffRole()
	adminOnly := auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleSuperAdmin)
	superAdminOnly := auth.RequireStaffRole(domain.StaffRoleSuperAdmin)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/validate-account/:customerID", cfg.Auth.ValidateAccount)
	authGroup.Post("/recover-customer-id", cfg.Auth.RecoverCustomerID)
	authGroup.Post("/forgot-password", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/reset-password", cfg.Auth.ConfirmPasswordReset)
	authGroup.Get("/me", authed, auth.RequireCustomer(), cfg.Auth.Me)
	authGroup.Post("/change-password", authed, auth.RequireAnyRole(), cfg.Auth.ChangePassword)

	profile := api.Group("/profile", authed, auth.RequireAnyRole())
	profile.Get("/:email", cfg.Profile.Get)
	profile.Put("/:email", cfg.Profile.Update)

	reports := api.Group("/reports")
	reports.Post("/", cfg.Reports.Create)
	reports.Get("/", authed, staffOnly, cfg.Reports.List)
	reports.Get("/:id", authed, staffOnly, cfg.Reports.Get)
	reports.Put("/:id", authed, staffOnly, cfg.Reports.Update)
	reports.Delete("/:id", authed, adminOnly, cfg.Reports.Delete)

	upgrades := api.Group("/upgrade-requests")
	upgrades.Post("/", authed, auth.RequireAnyRole(), cfg.Upgrades.Create)
	upgrades.Get("/", authed, staffOnly, cfg.Upgrades.List)
	upgrades.Get("/pending", authed, staffOnly, cfg.Upgrades.Pending)
	upgrades.Get("/:id", authed, staffOnly, cfg.Upgrades.Get)
	upgrades.Post("/:id/approve", authed, adminOnly, cfg.Upgrades.Approve)
	upgrades.Post("/:id/reject", authed, adminOnly, cfg.Upgrades.Reject)

	admin := api.Group("/admin")
	admin.Post("/login", cfg.Admin.Login)
	admin.Post("/create", authed, superAdminOnly, cfg.Admin.Create)
	admin.Get("/profile", authed, staffOnly, cfg.Admin.Profile)
	admin.Put("/profile/avatar", authed, staffOnly, cfg.Admin.SetAvatar)
	admin.Get("/staff", authed, adminOnly, cfg.Admin.List)
	admin.Post("/staff/:id/deactivate", authed, superAdminOnly, cfg.Admin.Deactivate)

	// Inbound tracker webhook. No signature verification; see DESIGN notes.
	api.Post("/jira/status-update", cfg.Webhook.StatusUpdate)
}
