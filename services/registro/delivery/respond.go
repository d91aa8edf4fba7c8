package delivery

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"registro/domain"
)

// respondError maps the domain error taxonomy onto HTTP. Anything outside it
// bubbles up to the app error handler, which logs the detail and answers a
// generic 500.
func respondError(c *fiber.Ctx, err error) error {
	var invalid *domain.InvalidData

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Entity not found",
		})
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid data",
			"errors":  invalid.Fields,
		})
	case errors.Is(err, domain.ErrNonExistingRelationship):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Referenced owner does not exist",
		})
	default:
		return err
	}
}
