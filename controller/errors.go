package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/b-himadri/bakery-backend-api/service"
)

// respondErr maps the service error taxonomy onto HTTP statuses, the same
// way the grpc codes used to map: validation 400, not found 404, conflict
// 409, forbidden 403, anything else 500.
func respondErr(c *fiber.Ctx, err error) error {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return c.Status(400).JSON(fiber.Map{"error": validation.Reason})
	}

	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(404).JSON(fiber.Map{"error": notFound.Error()})
	}

	var stock *service.InsufficientStockError
	if errors.As(err, &stock) {
		return c.Status(409).JSON(fiber.Map{
			"error":     stock.Error(),
			"product":   stock.Product,
			"requested": stock.Requested,
			"available": stock.Available,
		})
	}

	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		return c.Status(409).JSON(fiber.Map{"error": conflict.Reason})
	}

	if errors.Is(err, service.ErrForbidden) {
		return c.Status(403).JSON(fiber.Map{"error": "forbidden"})
	}

	return c.Status(500).JSON(fiber.Map{"error": "internal server error"})
}
