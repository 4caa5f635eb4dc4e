package routes

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers every API route group.
func SetupRoutes(app *fiber.App) {
	SetupAuthRoutes(app)
	SetupSalespersonRoutes(app)
	SetupCategoryRoutes(app)
	SetupProspectRoutes(app)
	SetupFollowUpRoutes(app)
	SetupTargetRoutes(app)
	SetupLedgerRoutes(app)
	SetupDashboardRoutes(app)
}
