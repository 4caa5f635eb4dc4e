package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
	"csms_backend/middleware"
)

// SetupProspectRoutes registers the prospect lifecycle. Static paths
// are registered before /:id so they are not swallowed by the param
// route.
func SetupProspectRoutes(app *fiber.App) {
	group := app.Group("/api/prospects", middleware.SalespersonAuthMiddleware())

	group.Post("/", handlers.CreateProspect)
	group.Get("/", handlers.GetProspects)
	group.Get("/nearby", handlers.GetNearbyProspects)
	group.Get("/export", handlers.ExportProspects)
	group.Get("/:id", handlers.GetProspect)
	group.Put("/:id/status", handlers.UpdateProspectStatus)
	group.Post("/:id/convert", handlers.ConvertProspect)
	group.Delete("/:id", handlers.DeleteProspect)
}
