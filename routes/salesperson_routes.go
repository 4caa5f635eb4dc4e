package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
	"csms_backend/middleware"
)

// SetupSalespersonRoutes registers account management. All of it is
// admin-gated.
func SetupSalespersonRoutes(app *fiber.App) {
	group := app.Group("/api/salespersons",
		middleware.SalespersonAuthMiddleware(),
		middleware.AdminOnlyMiddleware())

	group.Post("/", handlers.CreateSalesperson)
	group.Get("/", handlers.GetAllSalespersons)
	group.Get("/:id", handlers.GetSalesperson)
	group.Put("/:id", handlers.UpdateSalesperson)
	group.Delete("/:id", handlers.DeleteSalesperson)
}
