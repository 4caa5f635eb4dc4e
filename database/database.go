// Package database manages the shared GORM connection: pool setup,
// schema migration and the global handle the rest of the application
// reads through GetDB.
package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"csms_backend/models"
)

// DB is the shared database handle, set once during Init.
var DB *gorm.DB

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the shared handle. Used by tests to inject an
// in-memory database.
func SetDB(newDB *gorm.DB) {
	DB = newDB
}

// Init loads the environment and opens the MySQL connection.
func Init() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, relying on process environment")
	}

	initConnection()
}

func initConnection() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	gormLogger := logger.New(
		log.New(logrus.StandardLogger().Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	// Connect without a schema first so the database can be created on
	// a fresh server.
	dsnWithoutDB := fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port)

	tempDB, err := gorm.Open(mysql.Open(dsnWithoutDB), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to MySQL server: %v", err)
	}

	createDBSQL := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", dbname)
	if err := tempDB.Exec(createDBSQL).Error; err != nil {
		logrus.Fatalf("failed to create database: %v", err)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&collation=utf8mb4_unicode_ci",
		user, password, host, port, dbname)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get underlying sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	db.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci")

	DB = db
	logrus.Infof("database connected to %s:%s/%s", host, port, dbname)
}

// Migrate runs GORM AutoMigrate for every model, ordered so referenced
// tables exist before their dependents.
func Migrate() {
	logrus.Info("running database migration")

	db := DB.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci")

	err := db.AutoMigrate(
		&models.Salesperson{},
		&models.SalespersonToken{},
		&models.ProspectCategory{},
		&models.Prospect{},
		&models.PointsLedgerEntry{},
		&models.SalesTarget{},
		&models.FollowUp{},
	)
	if err != nil {
		logrus.Fatalf("database migration failed: %v", err)
	}

	logrus.Info("database migration complete")
}
