package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/portfolio-api/auth"
)

// renderError maps rich errors onto stable JSON responses. Authentication
// failures always render the same body regardless of internal cause.
func renderError(c *fiber.Ctx, err error) error {
	if auth.IsForbiddenError(err) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"detail": "Permission denied",
		})
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		status := richErr.Code
		if status < fiber.StatusBadRequest {
			status = fiber.StatusInternalServerError
		}

		if status == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return c.Status(status).JSON(fiber.Map{
				"detail": "Could not validate credentials",
			})
		}

		return c.Status(status).JSON(fiber.Map{
			"detail": richErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "Internal server error",
	})
}

// renderValidationError flattens ozzo validation errors into a per-field
// detail map.
func renderValidationError(c *fiber.Ctx, err error) error {
	if fieldErrs, ok := err.(validation.Errors); ok {
		details := fiber.Map{}
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": details,
		})
	}

	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"detail": err.Error(),
	})
}

func newStateNonce() string {
	return uuid.NewString()
}
