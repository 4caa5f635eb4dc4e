package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/services"
	"csms_backend/utils"
)

// CreateProspect registers a new lead for the authenticated
// salesperson and awards the category's base points.
func CreateProspect(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var input services.ProspectInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	prospect, err := services.CreateProspect(salespersonID, input)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "prospect created",
		"data":    prospect,
	})
}

// GetProspects lists the authenticated salesperson's prospects with
// filters and pagination.
func GetProspects(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var query models.ProspectQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse query parameters: " + err.Error(),
		})
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 10
	}

	db := database.GetDB().Model(&models.Prospect{}).Where("salesperson_id = ?", salespersonID)

	if query.Status != "" {
		if !models.ProspectStatus(query.Status).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown status filter",
			})
		}
		db = db.Where("status = ?", query.Status)
	}
	if query.CategoryID != 0 {
		db = db.Where("category_id = ?", query.CategoryID)
	}
	if query.Keyword != "" {
		db = db.Where("customer_name LIKE ?", "%"+query.Keyword+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logrus.Errorf("failed to count prospects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to count prospects",
		})
	}

	var prospects []models.Prospect
	offset := (query.Page - 1) * query.PageSize
	err = db.Preload("Category").
		Order("created_at DESC").
		Offset(offset).Limit(query.PageSize).
		Find(&prospects).Error
	if err != nil {
		logrus.Errorf("failed to list prospects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list prospects",
		})
	}

	return c.JSON(fiber.Map{
		"total": total,
		"page":  query.Page,
		"size":  query.PageSize,
		"data":  prospects,
	})
}

// GetNearbyProspects returns the salesperson's geocoded prospects
// within a radius of a point.
func GetNearbyProspects(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var query services.NearbyQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse query parameters: " + err.Error(),
		})
	}

	prospects, err := services.FindNearbyProspects(salespersonID, query)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"count": len(prospects),
		"data":  prospects,
	})
}

// GetProspect returns one of the salesperson's prospects.
func GetProspect(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid prospect id",
		})
	}

	prospect, err := services.GetProspect(uint(id), salespersonID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"data": prospect,
	})
}

// UpdateProspectStatus moves a prospect along its lifecycle.
// Conversion is not accepted here; clients must call the convert
// endpoint so the bonus award cannot be skipped.
func UpdateProspectStatus(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid prospect id",
		})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	prospect, err := services.UpdateProspectStatus(uint(id), salespersonID, models.ProspectStatus(body.Status))
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "status updated",
		"data":    prospect,
	})
}

// ConvertProspect marks a prospect as a paying customer and awards the
// conversion bonus.
func ConvertProspect(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid prospect id",
		})
	}

	prospect, err := services.ConvertProspect(uint(id), salespersonID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "prospect converted",
		"data":    prospect,
	})
}

// DeleteProspect removes a prospect. Earned ledger entries stay.
func DeleteProspect(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid prospect id",
		})
	}

	if err := services.DeleteProspect(uint(id), salespersonID); err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "prospect deleted",
	})
}
