package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/utils"
)

// SalespersonAuthMiddleware authenticates every salesperson-facing
// route. Two modes are accepted:
//  1. JWT bearer token, checked against the token table so revoked
//     tokens die immediately.
//  2. An X-Salesperson-ID header, kept for API tests and local tooling.
//
// On success the salesperson's id, name and role are stored in the
// request context for the handlers.
func SalespersonAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			salespersonIDStr := c.Get("X-Salesperson-ID")
			if salespersonIDStr == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "missing authentication token",
				})
			}

			salespersonID, err := strconv.Atoi(salespersonIDStr)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid salesperson id",
				})
			}

			salesperson, err := loadActiveSalesperson(uint(salespersonID))
			if err != nil {
				return unauthorizedOrInternal(c, err)
			}

			storeIdentity(c, salesperson)
			return c.Next()
		}

		tokenString := authHeader[7:]

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid authentication token",
			})
		}

		// The JWT may still be within its own validity; the database
		// row is what makes it revocable.
		var token models.SalespersonToken
		if err := database.GetDB().Where("token = ?", tokenString).First(&token).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "authentication token not recognized",
				})
			}
			logrus.Errorf("token lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to verify authentication token",
			})
		}

		if time.Now().After(token.ExpiredAt) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication token expired",
			})
		}

		salesperson, err := loadActiveSalesperson(claims.SalespersonID)
		if err != nil {
			return unauthorizedOrInternal(c, err)
		}

		storeIdentity(c, salesperson)
		return c.Next()
	}
}

// AdminOnlyMiddleware gates management routes. It must run after
// SalespersonAuthMiddleware.
func AdminOnlyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("salesperson_role").(string)
		if role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}
		return c.Next()
	}
}

func loadActiveSalesperson(id uint) (*models.Salesperson, error) {
	var salesperson models.Salesperson
	err := database.GetDB().Where("id = ? AND status = ?", id, "active").First(&salesperson).Error
	if err != nil {
		return nil, err
	}
	return &salesperson, nil
}

func storeIdentity(c *fiber.Ctx, salesperson *models.Salesperson) {
	c.Locals("salesperson_id", salesperson.ID)
	c.Locals("salesperson_name", salesperson.Name)
	c.Locals("salesperson_role", salesperson.Role)
}

func unauthorizedOrInternal(c *fiber.Ctx, err error) error {
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "salesperson not found or disabled",
		})
	}
	logrus.Errorf("salesperson lookup failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "failed to verify salesperson identity",
	})
}
