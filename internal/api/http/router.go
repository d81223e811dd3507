package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Credentials    *handlers.CredentialsHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		requests, errors := cfg.Metrics.Snapshot()
		return c.JSON(fiber.Map{"requests": requests, "errors": errors})
	})

	users := app.Group("/users")
	users.Post("/registration", cfg.Users.Register)
	users.Post("/confirmation", cfg.Credentials.Confirm)
	users.Post("/password-reset-otp", cfg.Credentials.RequestOTP)
	users.Post("/otp-authentication", cfg.Credentials.AuthenticateOTP)
	users.Put("/password-reset", cfg.Credentials.ResetPassword)

	users.Get("/:id", cfg.AuthMiddleware.Handle, cfg.Users.GetByID)
}
