package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"csms_backend/services"
	"csms_backend/utils"
)

// CreateFollowUp schedules a follow-up against one of the
// authenticated salesperson's prospects.
func CreateFollowUp(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var input services.FollowUpInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	followUp, err := services.CreateFollowUp(salespersonID, input)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "follow-up scheduled",
		"data":    followUp,
	})
}

// GetPendingFollowUps lists the salesperson's open follow-ups, soonest
// first.
func GetPendingFollowUps(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	followUps, err := services.ListPendingFollowUps(salespersonID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"count": len(followUps),
		"data":  followUps,
	})
}

// CompleteFollowUp marks a follow-up as done.
func CompleteFollowUp(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid follow-up id",
		})
	}

	followUp, err := services.CompleteFollowUp(uint(id), salespersonID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "follow-up completed",
		"data":    followUp,
	})
}
