package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Fixed cross-origin headers for the function endpoints. Every response
// carries them; preflight requests are answered with a bare "ok".
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// FunctionCORS applies the fixed cross-origin headers and short-circuits
// OPTIONS preflight requests without touching the body.
func FunctionCORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", corsAllowOrigin)
		c.Set("Access-Control-Allow-Headers", corsAllowHeaders)

		if c.Method() == fiber.MethodOptions {
			return c.Status(fiber.StatusOK).SendString("ok")
		}
		return c.Next()
	}
}
