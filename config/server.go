package config

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StartServer runs the HTTP server and blocks until SIGINT/SIGTERM,
// then shuts down gracefully so in-flight requests can finish.
func StartServer(app *fiber.App) {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
			logrus.Fatalf("server failed to start: %v", err)
		}
	}()

	logrus.Infof("server listening on port %s", port)

	<-sigChan
	logrus.Info("termination signal received, shutting down")

	if err := app.Shutdown(); err != nil {
		logrus.Errorf("error during shutdown: %v", err)
	}

	logrus.Info("server stopped")
}
