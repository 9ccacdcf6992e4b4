package webapi

import "github.com/gofiber/fiber/v2"

// BankRoutes registers the open-banking endpoints.
func BankRoutes(app *fiber.App, deps Deps) {
	app.Get("/api/bank/accounts", GetBankAccounts(deps))
	app.Get("/api/bank/accounts/:id/transactions", GetBankTransactions(deps))
}

// GetBankAccounts refreshes the bank-accounts slice and returns its
// snapshot.
func GetBankAccounts(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_ = deps.Store.FetchBankAccounts(c.Context())
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Bank accounts slice",
			Data:    deps.Store.BankAccounts(),
		})
	}
}

// GetBankTransactions refreshes the bank-transactions slice for one
// account and returns its snapshot.
func GetBankTransactions(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accountID := c.Params("id")
		if accountID == "" {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing account id", "")
		}
		_ = deps.Store.FetchBankTransactions(c.Context(), accountID)
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Bank transactions slice",
			Data:    deps.Store.BankTransactions(),
		})
	}
}
