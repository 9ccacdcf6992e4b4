// Package webapi exposes the store over a JSON HTTP API: one route group
// per screen of the mobile app.
package webapi

import "github.com/gofiber/fiber/v2"

// Response is the uniform success envelope.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponseJSON writes an error envelope with the given status code.
func ErrorResponseJSON(c *fiber.Ctx, status int, message, detail string) error {
	return c.Status(status).JSON(ErrorResponse{
		Status:  status,
		Message: message,
		Error:   detail,
	})
}
