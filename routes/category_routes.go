package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
	"csms_backend/middleware"
)

// SetupCategoryRoutes registers prospect category routes. Salespeople
// see the active list; mutation is admin-gated.
func SetupCategoryRoutes(app *fiber.App) {
	app.Get("/api/categories",
		middleware.SalespersonAuthMiddleware(),
		handlers.GetActiveCategories)

	admin := app.Group("/api/admin/categories",
		middleware.SalespersonAuthMiddleware(),
		middleware.AdminOnlyMiddleware())

	admin.Get("/", handlers.GetAllCategories)
	admin.Post("/", handlers.CreateCategory)
	admin.Put("/:id", handlers.UpdateCategory)
	admin.Delete("/:id", handlers.DeleteCategory)
}
