package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/services"
	"csms_backend/utils"
)

// parseDateParam reads an optional ?date=YYYY-MM-DD query parameter,
// defaulting to now.
func parseDateParam(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// GetCurrentTarget returns the target effective for the authenticated
// salesperson on the given (or current) date, or null when none is.
func GetCurrentTarget(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	date, err := parseDateParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be formatted as YYYY-MM-DD",
		})
	}

	target, err := services.ResolveCurrentTarget(salespersonID, date)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"data": target, // null when no window matches
	})
}

// GetTargetProgress returns daily and monthly quota progress for the
// authenticated salesperson.
func GetTargetProgress(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	date, err := parseDateParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be formatted as YYYY-MM-DD",
		})
	}

	report, err := services.TargetProgress(salespersonID, date)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"data": report,
	})
}

// CreateTarget creates a sales target for a salesperson. Admin only.
func CreateTarget(c *fiber.Ctx) error {
	var input services.TargetInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	if fields := utils.ValidateStruct(input); len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": fields,
		})
	}
	if input.EffectiveTo != nil && input.EffectiveTo.Before(input.EffectiveFrom) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "effective_to must not precede effective_from",
		})
	}

	var salesperson models.Salesperson
	if err := database.GetDB().First(&salesperson, input.SalespersonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "salesperson not found",
			})
		}
		logrus.Errorf("salesperson lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load salesperson",
		})
	}

	target := models.SalesTarget{
		SalespersonID: input.SalespersonID,
		DailyTarget:   input.DailyTarget,
		MonthlyTarget: input.MonthlyTarget,
		EffectiveFrom: input.EffectiveFrom,
		EffectiveTo:   input.EffectiveTo,
		IsActive:      true,
	}
	if err := database.GetDB().Create(&target).Error; err != nil {
		logrus.Errorf("failed to create target: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create target",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "target created",
		"data":    target,
	})
}

// GetTargets lists targets, optionally filtered by salesperson. Admin
// only.
func GetTargets(c *fiber.Ctx) error {
	db := database.GetDB().Model(&models.SalesTarget{})

	if raw := c.Query("salesperson_id"); raw != "" {
		salespersonID, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid salesperson id",
			})
		}
		db = db.Where("salesperson_id = ?", salespersonID)
	}

	var targets []models.SalesTarget
	if err := db.Order("effective_from DESC").Find(&targets).Error; err != nil {
		logrus.Errorf("failed to list targets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list targets",
		})
	}

	return c.JSON(fiber.Map{
		"data": targets,
	})
}

// UpdateTarget edits a target's quotas, window or active flag. Admin
// only.
func UpdateTarget(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid target id",
		})
	}

	var target models.SalesTarget
	if err := database.GetDB().First(&target, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "target not found",
			})
		}
		logrus.Errorf("target lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load target",
		})
	}

	var updateData struct {
		DailyTarget   *int       `json:"daily_target"`
		MonthlyTarget *int       `json:"monthly_target"`
		EffectiveTo   *time.Time `json:"effective_to"`
		IsActive      *bool      `json:"is_active"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	updates := make(map[string]interface{})
	if updateData.DailyTarget != nil {
		if *updateData.DailyTarget < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "daily_target must not be negative",
			})
		}
		updates["daily_target"] = *updateData.DailyTarget
	}
	if updateData.MonthlyTarget != nil {
		if *updateData.MonthlyTarget < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "monthly_target must not be negative",
			})
		}
		updates["monthly_target"] = *updateData.MonthlyTarget
	}
	if updateData.EffectiveTo != nil {
		updates["effective_to"] = *updateData.EffectiveTo
	}
	if updateData.IsActive != nil {
		updates["is_active"] = *updateData.IsActive
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(&target).Updates(updates).Error; err != nil {
			logrus.Errorf("failed to update target: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update target",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "target updated",
		"data":    target,
	})
}

// DeleteTarget removes a target row. Admin only.
func DeleteTarget(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid target id",
		})
	}

	result := database.GetDB().Delete(&models.SalesTarget{}, id)
	if result.Error != nil {
		logrus.Errorf("failed to delete target: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete target",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "target not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "target deleted",
	})
}
