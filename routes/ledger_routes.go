package routes

import (
	"github.com/gofiber/fiber/v2"

	"csms_backend/handlers"
	"csms_backend/middleware"
)

// SetupLedgerRoutes registers the points ledger surface. Salespeople
// read their own ledger; manual adjustments are admin-gated.
func SetupLedgerRoutes(app *fiber.App) {
	group := app.Group("/api/ledger", middleware.SalespersonAuthMiddleware())

	group.Get("/", handlers.GetOwnLedger)
	group.Get("/summary", handlers.GetPointsSummary)
	group.Get("/export", handlers.ExportLedger)

	admin := app.Group("/api/admin/ledger",
		middleware.SalespersonAuthMiddleware(),
		middleware.AdminOnlyMiddleware())

	admin.Post("/adjustments", handlers.AwardAdjustment)
}
