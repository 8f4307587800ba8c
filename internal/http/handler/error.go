package handler

import (
	"github.com/gofiber/fiber/v2"

	"releaseapi/internal/service"
)

// errorPayload is the flat error body every endpoint returns. The desktop and
// web clients key off the single "error" string, so no envelope is added.
type errorPayload struct {
	Error string `json:"error"`
}

// writeError writes the standardized JSON error response without leaking
// internal error detail beyond the message string.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// ErrorHandler returns a Fiber global error handler that maps framework errors
// onto the same flat error shape the endpoints use.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			// Fiber enforces BodyLimit before routing, so an oversized upload
			// never reaches the handler. Keep the upload-cap contract: same
			// status and message as the service-level size check.
			return writeError(c, fiber.StatusBadRequest, service.ErrFileTooLarge.Error())
		default:
			return writeError(c, status, "Internal server error")
		}
	}
}
