package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
)

// CreateSalesperson creates a new salesperson account. Admin only.
func CreateSalesperson(c *fiber.Ctx) error {
	var requestData struct {
		models.Salesperson
		Password string `json:"password"`
	}

	if err := c.BodyParser(&requestData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	salesperson := requestData.Salesperson

	if salesperson.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}
	if salesperson.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if requestData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "password is required",
		})
	}

	var existing models.Salesperson
	result := database.GetDB().Where("username = ?", salesperson.Username).First(&existing)
	if result.Error == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username already exists",
		})
	} else if result.Error != gorm.ErrRecordNotFound {
		logrus.Errorf("salesperson lookup failed: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to check username",
		})
	}

	if salesperson.Status == "" {
		salesperson.Status = "active"
	}
	if salesperson.Role == "" {
		salesperson.Role = models.RoleSales
	}
	if salesperson.Role != models.RoleAdmin && salesperson.Role != models.RoleSales {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role must be admin or sales",
		})
	}

	if err := salesperson.SetPassword(requestData.Password); err != nil {
		logrus.Errorf("password hashing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to hash password",
		})
	}

	if err := database.GetDB().Create(&salesperson).Error; err != nil {
		logrus.Errorf("failed to create salesperson: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create salesperson",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "salesperson created",
		"data":    salesperson,
	})
}

// GetAllSalespersons lists salespeople with filters and pagination.
// Admin only.
func GetAllSalespersons(c *fiber.Ctx) error {
	var query models.SalespersonQuery
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

	db := database.GetDB().Model(&models.Salesperson{})

	if query.Username != "" {
		db = db.Where("username LIKE ?", "%"+query.Username+"%")
	}
	if query.Name != "" {
		db = db.Where("name LIKE ?", "%"+query.Name+"%")
	}
	if query.Role != "" {
		db = db.Where("role = ?", query.Role)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		logrus.Errorf("failed to count salespersons: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to count salespersons",
		})
	}

	var salespersons []models.Salesperson
	offset := (query.Page - 1) * query.PageSize
	if err := db.Offset(offset).Limit(query.PageSize).Find(&salespersons).Error; err != nil {
		logrus.Errorf("failed to list salespersons: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list salespersons",
		})
	}

	return c.JSON(fiber.Map{
		"total": total,
		"page":  query.Page,
		"size":  query.PageSize,
		"data":  salespersons,
	})
}

// GetSalesperson returns a single salesperson. Admin only.
func GetSalesperson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid salesperson id",
		})
	}

	var salesperson models.Salesperson
	if err := database.GetDB().First(&salesperson, id).Error; err != nil {
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

	return c.JSON(fiber.Map{
		"data": salesperson,
	})
}

// UpdateSalesperson updates account fields. Empty fields in the
// payload are left untouched. Admin only.
func UpdateSalesperson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid salesperson id",
		})
	}

	var salesperson models.Salesperson
	if err := database.GetDB().First(&salesperson, id).Error; err != nil {
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

	var updateData struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Status   string `json:"status"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse request body: " + err.Error(),
		})
	}

	updates := make(map[string]interface{})
	if updateData.Name != "" {
		updates["name"] = updateData.Name
	}
	if updateData.Phone != "" {
		updates["phone"] = updateData.Phone
	}
	if updateData.Email != "" {
		updates["email"] = updateData.Email
	}
	if updateData.Role != "" {
		if updateData.Role != models.RoleAdmin && updateData.Role != models.RoleSales {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "role must be admin or sales",
			})
		}
		updates["role"] = updateData.Role
	}
	if updateData.Status != "" {
		updates["status"] = updateData.Status
	}
	if updateData.Password != "" {
		if err := salesperson.SetPassword(updateData.Password); err != nil {
			logrus.Errorf("password hashing failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to hash password",
			})
		}
		updates["password"] = salesperson.Password
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(&salesperson).Updates(updates).Error; err != nil {
			logrus.Errorf("failed to update salesperson: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update salesperson",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "salesperson updated",
		"data":    salesperson,
	})
}

// DeleteSalesperson removes an account and its session tokens. The
// salesperson's prospects and ledger history are kept for reporting.
// Admin only.
func DeleteSalesperson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid salesperson id",
		})
	}

	var salesperson models.Salesperson
	if err := database.GetDB().First(&salesperson, id).Error; err != nil {
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

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salesperson_id = ?", salesperson.ID).Delete(&models.SalespersonToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&salesperson).Error
	})
	if err != nil {
		logrus.Errorf("failed to delete salesperson: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete salesperson",
		})
	}

	return c.JSON(fiber.Map{
		"message": "salesperson deleted",
	})
}
