package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"csms_backend/database"
	"csms_backend/models"
)

// setupTestDB opens a fresh in-memory SQLite database, migrates the
// schema and installs it as the shared handle for the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Salesperson{},
		&models.SalespersonToken{},
		&models.ProspectCategory{},
		&models.Prospect{},
		&models.PointsLedgerEntry{},
		&models.SalesTarget{},
		&models.FollowUp{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.SetDB(db)
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string, points int, active bool) models.ProspectCategory {
	t.Helper()

	category := models.ProspectCategory{
		Name:     name,
		Points:   points,
		IsActive: active,
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func floatPtr(f float64) *float64 {
	return &f
}
