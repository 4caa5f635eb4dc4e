// Package config wires the application together: logging, database,
// the Fiber instance and its global middleware, and server lifecycle.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"csms_backend/database"
	"csms_backend/routes"
)

// InitApp initializes logging, the database connection and the schema.
func InitApp() {
	InitLogger()

	database.Init()
	database.Migrate()

	logrus.Info("application initialized")
}

// SetupApp builds the Fiber instance with global middleware and all
// API routes registered.
func SetupApp() *fiber.App {
	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		StrictRouting: true,
		ServerHeader:  "CSMS",
		BodyLimit:     10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": true,
				"msg":   err.Error(),
			})
		},
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		Immutable:    true,
		AppName:      "CSMS API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(logger.New(logger.Config{
		Format:     "${time} ${status} - ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stdout,
	}))

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           int(12 * time.Hour.Seconds()),
	}))

	routes.SetupRoutes(app)

	logrus.Info("fiber application configured")

	return app
}
