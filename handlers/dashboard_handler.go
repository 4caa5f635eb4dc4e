package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"csms_backend/services"
	"csms_backend/utils"
)

// GetDashboard returns the authenticated salesperson's summary block:
// today/month counts, points, follow-ups, recent prospects and the
// running accumulation.
func GetDashboard(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	summary, err := services.DashboardFor(salespersonID, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"data": summary,
	})
}
