package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/services"
	"csms_backend/utils"
)

// GetOwnLedger lists the authenticated salesperson's ledger entries,
// newest first, with kind and date-range filters.
func GetOwnLedger(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	var query models.LedgerQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse query parameters: " + err.Error(),
		})
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	db := database.GetDB().Model(&models.PointsLedgerEntry{}).Where("salesperson_id = ?", salespersonID)

	if query.Kind != "" {
		if !models.LedgerEntryKind(query.Kind).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown ledger entry kind",
			})
		}
		db = db.Where("kind = ?", query.Kind)
	}
	if query.From != "" {
		from, err := time.ParseInLocation("2006-01-02", query.From, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "from must be formatted as YYYY-MM-DD",
			})
		}
		db = db.Where("entry_date >= ?", from)
	}
	if query.To != "" {
		to, err := time.ParseInLocation("2006-01-02", query.To, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "to must be formatted as YYYY-MM-DD",
			})
		}
		db = db.Where("entry_date <= ?", to)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logrus.Errorf("failed to count ledger entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to count ledger entries",
		})
	}

	var entries []models.PointsLedgerEntry
	offset := (query.Page - 1) * query.PageSize
	err = db.Order("entry_date DESC, id DESC").
		Offset(offset).Limit(query.PageSize).
		Find(&entries).Error
	if err != nil {
		logrus.Errorf("failed to list ledger entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list ledger entries",
		})
	}

	return c.JSON(fiber.Map{
		"total": total,
		"page":  query.Page,
		"size":  query.PageSize,
		"data":  entries,
	})
}

// GetPointsSummary returns lifetime totals for the authenticated
// salesperson: sum of all earned points and the running accumulation
// on the latest ledger row. The two agree after every award.
func GetPointsSummary(c *fiber.Ctx) error {
	salespersonID, err := utils.SalespersonIDFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthenticated",
		})
	}

	total, err := services.TotalPoints(salespersonID, nil, nil)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	accumulation, err := services.CurrentAccumulation(salespersonID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"total_points":       total,
		"accumulated_points": accumulation,
	})
}

// AwardAdjustment lets an admin grant a bonus or penalty outside the
// prospect workflow, e.g. campaign rewards or corrections.
func AwardAdjustment(c *fiber.Ctx) error {
	var body struct {
		SalespersonID uint   `json:"salesperson_id"`
		Points        int    `json:"points"`
		Kind          string `json:"kind"`
		Description   string `json:"description"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	if body.SalespersonID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "salesperson_id is required",
		})
	}
	kind := models.LedgerEntryKind(body.Kind)
	if kind != models.LedgerEntryBonus && kind != models.LedgerEntryPenalty {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "kind must be bonus or penalty",
		})
	}
	if kind == models.LedgerEntryPenalty && body.Points > 0 {
		body.Points = -body.Points
	}

	entry, err := services.AwardPoints(body.SalespersonID, nil, body.Points, kind, body.Description)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "adjustment recorded",
		"data":    entry,
	})
}
