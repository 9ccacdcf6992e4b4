package webapi

import "github.com/gofiber/fiber/v2"

// MarketRoutes registers the crypto, stocks and ETF endpoints.
func MarketRoutes(app *fiber.App, deps Deps) {
	app.Get("/api/crypto", GetCrypto(deps))
	app.Get("/api/stocks", GetStocks(deps))
	app.Get("/api/etfs", GetETFs(deps))
}

// GetCrypto refreshes the crypto slice and returns its snapshot.
func GetCrypto(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_ = deps.Store.FetchCrypto(c.Context())
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Crypto markets slice",
			Data:    deps.Store.Crypto(),
		})
	}
}

// GetStocks refreshes the stocks slice and returns its snapshot.
func GetStocks(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_ = deps.Store.FetchStocks(c.Context())
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Stocks slice",
			Data:    deps.Store.Stocks(),
		})
	}
}

// GetETFs refreshes the ETF slice and returns its snapshot.
func GetETFs(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_ = deps.Store.FetchETFs(c.Context())
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "ETFs slice",
			Data:    deps.Store.ETFs(),
		})
	}
}
