package handler

import (
	"errors"

	"go-inventory-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx rebuilds the request actor from the values the auth
// middleware stored in the context.
func actorFromCtx(c *fiber.Ctx) service.Actor {
	actor := service.Actor{ID: "system"}
	if id, ok := c.Locals("user_id").(string); ok {
		actor.ID = id
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	if email, ok := c.Locals("user_email").(string); ok {
		actor.Email = email
	}
	return actor
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps the service error taxonomy onto HTTP statuses.
// PersistenceErrors surface a generic retry-able message; the detail stays
// in the server log via fiber's logger.
func respondError(c *fiber.Ctx, err error) error {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		is *service.InsufficientStockError
		pe *service.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
	case errors.As(err, &nf):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Error()})
	case errors.As(err, &is):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     is.Error(),
			"available": is.Available,
			"requested": is.Requested,
		})
	case errors.As(err, &pe):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Operation failed, please retry"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}
