package middleware

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/NoraWeller/VowNest/internal/pkg/env"
	"github.com/gofiber/fiber/v2"
)

// ServiceKeyAuth guards admin routes with the service role key. The key is
// accepted via the apikey header or an Authorization bearer token.
func ServiceKeyAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := env.GetEnv("SERVICE_ROLE_KEY", "")
		if expected == "" {
			log.Print("service key middleware: SERVICE_ROLE_KEY is not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Service key not configured"})
		}

		got := extractServiceKey(c)
		if got == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing service key"})
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid service key"})
		}

		return c.Next()
	}
}

func extractServiceKey(c *fiber.Ctx) string {
	if key := strings.TrimSpace(c.Get("apikey")); key != "" {
		return key
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
