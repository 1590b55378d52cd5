package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Every response carries the same envelope: success flag, payload or error,
// and a metadata block with at least a timestamp. Extra metadata (data
// provenance, notes) is merged in when provided.
func respond(c *fiber.Ctx, status int, data interface{}, extra fiber.Map) error {
	metadata := fiber.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range extra {
		metadata[k] = v
	}
	return c.Status(status).JSON(fiber.Map{
		"success":  true,
		"data":     data,
		"metadata": metadata,
	})
}

func ok(c *fiber.Ctx, data interface{}) error {
	return respond(c, fiber.StatusOK, data, nil)
}

func okWithMeta(c *fiber.Ctx, data interface{}, extra fiber.Map) error {
	return respond(c, fiber.StatusOK, data, extra)
}

func created(c *fiber.Ctx, data interface{}) error {
	return respond(c, fiber.StatusCreated, data, nil)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"metadata": fiber.Map{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
