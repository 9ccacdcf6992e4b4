package webapi

import (
	"errors"

	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/store"
	"github.com/gofiber/fiber/v2"
)

// StateRoutes registers the direct store-mutation endpoints:
// transactions, balance, theme and session.
func StateRoutes(app *fiber.App, deps Deps) {
	app.Get("/api/transactions", ListTransactions(deps))
	app.Post("/api/transactions", AddTransaction(deps))
	app.Put("/api/balance", UpdateBalance(deps))
	app.Post("/api/theme/toggle", ToggleTheme(deps))
	app.Post("/api/session", SetSession(deps))
}

// ListTransactions returns the full transaction list, newest first.
func ListTransactions(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Transactions fetched successfully",
			Data:    deps.Store.Transactions(),
		})
	}
}

// AddTransaction admits a new transaction into the store. The balance
// moves together with the list.
func AddTransaction(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tx domain.Transaction
		if err := c.BodyParser(&tx); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid transaction payload", err.Error())
		}
		if err := deps.Validate.Struct(tx); err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Invalid transaction", err.Error())
		}
		if err := deps.Store.AddTransaction(c.Context(), tx); err != nil {
			status := fiber.StatusUnprocessableEntity
			if errors.Is(err, store.ErrDuplicateTransaction) {
				status = fiber.StatusConflict
			}
			return ErrorResponseJSON(c, status, "Failed to add transaction", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Transaction added successfully",
			Data: fiber.Map{
				"balance": deps.Store.Balance(),
			},
		})
	}
}

type balanceRequest struct {
	Amount float64 `json:"amount"`
}

// UpdateBalance replaces the balance unconditionally.
func UpdateBalance(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req balanceRequest
		if err := c.BodyParser(&req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid balance payload", err.Error())
		}
		deps.Store.UpdateBalance(c.Context(), req.Amount)
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Balance updated successfully",
			Data:    fiber.Map{"balance": deps.Store.Balance()},
		})
	}
}

// ToggleTheme flips the theme and returns the new value.
func ToggleTheme(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		theme := deps.Store.ToggleTheme(c.Context())
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Theme toggled successfully",
			Data:    fiber.Map{"theme": theme},
		})
	}
}

type sessionRequest struct {
	Authenticated bool `json:"authenticated"`
}

// SetSession toggles the session flag.
func SetSession(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sessionRequest
		if err := c.BodyParser(&req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid session payload", err.Error())
		}
		deps.Store.SetAuthenticated(c.Context(), req.Authenticated)
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Session updated successfully",
			Data:    fiber.Map{"authenticated": deps.Store.IsAuthenticated()},
		})
	}
}
