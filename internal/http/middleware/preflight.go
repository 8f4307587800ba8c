package middleware

import "github.com/gofiber/fiber/v2"

// PreflightOK rewrites the cors middleware's 204 preflight reply to an empty
// 200, which is what the marketing-site clients check against. Register it
// before the cors middleware so it observes the short-circuited response.
func PreflightOK() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if c.Method() == fiber.MethodOptions && c.Response().StatusCode() == fiber.StatusNoContent {
			c.Status(fiber.StatusOK)
		}
		return err
	}
}
