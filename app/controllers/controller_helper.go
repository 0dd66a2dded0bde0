package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// jsonError writes the uniform error body used across the API.
func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// formatTimePtr renders an optional date, empty when unset.
func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
