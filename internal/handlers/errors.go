package handlers

import (
	"errors"

	"sportshop/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler maps errors returned by handlers and middleware to JSON
// responses. Internal failures only carry their detail when exposeDetails is
// set.
func ErrorHandler(exposeDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fields apperror.FieldErrors
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &fields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  fields,
			})
		case errors.Is(err, apperror.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, apperror.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthenticated"})
		case errors.Is(err, apperror.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden", "error": err.Error()})
		case errors.Is(err, apperror.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, apperror.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		logrus.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("request failed")

		body := fiber.Map{"message": "Internal server error"}
		if exposeDetails {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
