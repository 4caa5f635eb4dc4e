package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
)

// SetupAuthRoutes registers login, logout and token refresh.
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/login", handlers.SalespersonLogin)
	auth.Post("/logout", handlers.SalespersonLogout)
	auth.Post("/refresh", handlers.RefreshToken)
}
