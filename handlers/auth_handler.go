package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/utils"
)

const tokenLifetime = 24 * time.Hour

// SalespersonLogin authenticates a salesperson with username and
// password, guarded by the login limiter, and issues a JWT that is
// also stored in the token table for revocation.
func SalespersonLogin(c *fiber.Ctx) error {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&credentials); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	if credentials.Username == "" || credentials.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username and password are required",
		})
	}

	if locked, remaining := utils.DefaultLoginLimiter.IsLocked(credentials.Username); locked {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":             "account temporarily locked, try again later",
			"remaining_minutes": remaining,
		})
	}

	var salesperson models.Salesperson
	err := database.GetDB().Where("username = ? AND status = ?", credentials.Username, "active").First(&salesperson).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Count the miss so unknown usernames can't be probed freely.
			utils.DefaultLoginLimiter.RecordFailedLogin(credentials.Username)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid username or password",
			})
		}
		logrus.Errorf("login lookup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "login failed, please try again later",
		})
	}

	if !salesperson.CheckPassword(credentials.Password) {
		locked, minutes := utils.DefaultLoginLimiter.RecordFailedLogin(credentials.Username)
		if locked {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":             "too many failed attempts, account locked",
				"remaining_minutes": minutes,
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":              "invalid username or password",
			"remaining_attempts": utils.DefaultLoginLimiter.RemainingAttempts(credentials.Username),
		})
	}

	utils.DefaultLoginLimiter.ResetAttempts(credentials.Username)

	tokenString, err := utils.GenerateToken(salesperson.ID, salesperson.Username, tokenLifetime)
	if err != nil {
		logrus.Errorf("token generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "login failed, please try again later",
		})
	}

	expireTime := time.Now().Add(tokenLifetime)
	token := models.SalespersonToken{
		SalespersonID: salesperson.ID,
		Token:         tokenString,
		UserAgent:     c.Get("User-Agent"),
		IP:            c.IP(),
		ExpiredAt:     expireTime,
	}
	if err := database.GetDB().Create(&token).Error; err != nil {
		logrus.Errorf("failed to store token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "login failed, please try again later",
		})
	}

	now := time.Now()
	if err := database.GetDB().Model(&salesperson).Update("last_login_at", &now).Error; err != nil {
		logrus.Errorf("failed to update last login time: %v", err)
		// non-fatal
	}

	return c.JSON(fiber.Map{
		"message":    "login successful",
		"token":      tokenString,
		"expires_at": expireTime.Unix(),
		"data":       salesperson,
	})
}

// RefreshToken exchanges a valid token for a fresh one and deletes the
// old row so it cannot be replayed.
func RefreshToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing authentication token",
		})
	}

	tokenString := authHeader[7:]

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid authentication token",
		})
	}

	var token models.SalespersonToken
	if err := database.GetDB().Where("token = ?", tokenString).First(&token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication token not recognized",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to verify authentication token",
		})
	}

	if time.Now().After(token.ExpiredAt) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication token expired",
		})
	}

	var salesperson models.Salesperson
	if err := database.GetDB().Where("id = ? AND status = ?", claims.SalespersonID, "active").First(&salesperson).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "salesperson not found or disabled",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to verify salesperson identity",
		})
	}

	// Lazy cleanup of this salesperson's expired tokens.
	if err := database.GetDB().Where("salesperson_id = ? AND expired_at < ?", salesperson.ID, time.Now()).Delete(&models.SalespersonToken{}).Error; err != nil {
		logrus.Errorf("failed to delete expired tokens: %v", err)
	}

	newTokenString, err := utils.GenerateToken(salesperson.ID, salesperson.Username, tokenLifetime)
	if err != nil {
		logrus.Errorf("token generation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to refresh token, please try again later",
		})
	}

	expireTime := time.Now().Add(tokenLifetime)

	if err := database.GetDB().Delete(&token).Error; err != nil {
		logrus.Errorf("failed to delete old token: %v", err)
	}

	newToken := models.SalespersonToken{
		SalespersonID: salesperson.ID,
		Token:         newTokenString,
		UserAgent:     token.UserAgent,
		IP:            c.IP(),
		ExpiredAt:     expireTime,
	}
	if err := database.GetDB().Create(&newToken).Error; err != nil {
		logrus.Errorf("failed to store new token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to refresh token, please try again later",
		})
	}

	return c.JSON(fiber.Map{
		"message":    "token refreshed",
		"token":      newTokenString,
		"expires_at": expireTime.Unix(),
	})
}

// SalespersonLogout invalidates the current session token.
func SalespersonLogout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing authentication token",
		})
	}

	tokenString := authHeader[7:]

	result := database.GetDB().Where("token = ?", tokenString).Delete(&models.SalespersonToken{})
	if result.Error != nil {
		logrus.Errorf("failed to delete token: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "logout failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "logout successful",
	})
}
