package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankline/bankline/pkg/store"
)

// TransferRoutes registers the money-movement endpoints.
func TransferRoutes(app *fiber.App, deps Deps) {
	app.Post("/api/transfers", CreateTransfer(deps))
	app.Get("/api/transfers/latest", GetLatestTransfer(deps))
}

// CreateTransfer initiates a payment and waits for it to settle. The
// payment slice snapshot is returned either way so the caller can see
// the receipt or the failure message.
func CreateTransfer(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req store.TransferRequest
		if err := c.BodyParser(&req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transfer payload", err.Error())
		}
		if err := deps.Validate.Struct(req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Invalid transfer payload", err.Error())
		}
		if err := deps.Store.Transfer(c.Context(), req); err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(Response{
				Status:  fiber.StatusBadGateway,
				Message: "Transfer did not complete",
				Data:    deps.Store.Payment(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Transfer completed",
			Data:    deps.Store.Payment(),
		})
	}
}

// GetLatestTransfer returns the payment slice snapshot.
func GetLatestTransfer(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Payment slice",
			Data:    deps.Store.Payment(),
		})
	}
}
