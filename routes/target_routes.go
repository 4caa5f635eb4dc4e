package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
	"csms_backend/middleware"
)

// SetupTargetRoutes registers target resolution for salespeople and
// target administration for admins.
func SetupTargetRoutes(app *fiber.App) {
	group := app.Group("/api/targets", middleware.SalespersonAuthMiddleware())

	group.Get("/current", handlers.GetCurrentTarget)
	group.Get("/progress", handlers.GetTargetProgress)

	admin := app.Group("/api/admin/targets",
		middleware.SalespersonAuthMiddleware(),
		middleware.AdminOnlyMiddleware())

	admin.Post("/", handlers.CreateTarget)
	admin.Get("/", handlers.GetTargets)
	admin.Put("/:id", handlers.UpdateTarget)
	admin.Delete("/:id", handlers.DeleteTarget)
}
