package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
)

// GetActiveCategories lists the categories offered when creating a
// prospect. Inactive categories are hidden from salespeople but stay
// referenced by existing prospects.
func GetActiveCategories(c *fiber.Ctx) error {
	var categories []models.ProspectCategory
	err := database.GetDB().Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	if err != nil {
		logrus.Errorf("failed to list categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list categories",
		})
	}

	return c.JSON(fiber.Map{
		"data": categories,
	})
}

// GetAllCategories lists every category including inactive ones.
// Admin only.
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.ProspectCategory
	if err := database.GetDB().Order("name ASC").Find(&categories).Error; err != nil {
		logrus.Errorf("failed to list categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list categories",
		})
	}

	return c.JSON(fiber.Map{
		"data": categories,
	})
}

// CreateCategory creates a prospect category. Admin only.
func CreateCategory(c *fiber.Ctx) error {
	var category models.ProspectCategory
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	if category.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if category.Points < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "points must not be negative",
		})
	}

	if err := database.GetDB().Create(&category).Error; err != nil {
		logrus.Errorf("failed to create category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "category created",
		"data":    category,
	})
}

// UpdateCategory edits a category. Point changes only affect future
// awards; the ledger keeps whatever was granted at the time. Admin only.
func UpdateCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid category id",
		})
	}

	var category models.ProspectCategory
	if err := database.GetDB().First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "category not found",
			})
		}
		logrus.Errorf("category lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load category",
		})
	}

	var updateData struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Points      *int    `json:"points"`
		IsActive    *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	updates := make(map[string]interface{})
	if updateData.Name != nil {
		updates["name"] = *updateData.Name
	}
	if updateData.Description != nil {
		updates["description"] = *updateData.Description
	}
	if updateData.Points != nil {
		if *updateData.Points < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "points must not be negative",
			})
		}
		updates["points"] = *updateData.Points
	}
	if updateData.IsActive != nil {
		updates["is_active"] = *updateData.IsActive
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(&category).Updates(updates).Error; err != nil {
			logrus.Errorf("failed to update category: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update category",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "category updated",
		"data":    category,
	})
}

// DeleteCategory deactivates a category instead of removing it, so
// existing prospects keep a valid reference. Admin only.
func DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid category id",
		})
	}

	var category models.ProspectCategory
	if err := database.GetDB().First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "category not found",
			})
		}
		logrus.Errorf("category lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load category",
		})
	}

	if err := database.GetDB().Model(&category).Update("is_active", false).Error; err != nil {
		logrus.Errorf("failed to deactivate category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to deactivate category",
		})
	}

	return c.JSON(fiber.Map{
		"message": "category deactivated",
	})
}
