package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
	"csms_backend/middleware"
)

// SetupDashboardRoutes registers the summary endpoint.
func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/api/dashboard",
		middleware.SalespersonAuthMiddleware(),
		handlers.GetDashboard)
}
