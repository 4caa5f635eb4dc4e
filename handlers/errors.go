package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"csms_backend/services"
)

// serviceErrorResponse translates the service error taxonomy to HTTP
// once, at the boundary. Anything unrecognized is a 500 and gets
// logged; the client only sees a generic message.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	}

	var authErr *services.AuthorizationError
	if errors.As(err, &authErr) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "forbidden",
		})
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFoundErr.Error(),
		})
	}

	logrus.Errorf("unhandled service error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
