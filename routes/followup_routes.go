package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
	"csms_backend/middleware"
)

// SetupFollowUpRoutes registers follow-up scheduling and completion.
func SetupFollowUpRoutes(app *fiber.App) {
	group := app.Group("/api/follow-ups", middleware.SalespersonAuthMiddleware())

	group.Post("/", handlers.CreateFollowUp)
	group.Get("/pending", handlers.GetPendingFollowUps)
	group.Post("/:id/complete", handlers.CompleteFollowUp)
}
