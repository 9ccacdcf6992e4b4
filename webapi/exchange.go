package webapi

import (
	"errors"

	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
	"github.com/gofiber/fiber/v2"
)

// ExchangeRoutes registers the rates, conversion and currency endpoints.
func ExchangeRoutes(app *fiber.App, deps Deps) {
	app.Get("/api/rates", GetRates(deps))
	app.Post("/api/convert", ConvertCurrency(deps))
	app.Get("/api/currencies", ListCurrencies(deps))
}

// GetRates refreshes the rates slice and returns its snapshot. Fetch
// failures surface through the slice status, with any previously loaded
// table left in place.
func GetRates(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_ = deps.Store.FetchRates(c.Context())
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Exchange rates slice",
			Data:    deps.Store.Rates(),
		})
	}
}

type convertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from" validate:"required,len=3"`
	To     string  `json:"to" validate:"required,len=3"`
}

// ConvertCurrency converts an amount between two currencies through the
// loaded rate table.
func ConvertCurrency(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req convertRequest
		if err := c.BodyParser(&req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid conversion payload", err.Error())
		}
		if err := deps.Validate.Struct(req); err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Invalid conversion request", err.Error())
		}

		rates := deps.Store.Rates()
		if !rates.HasData {
			return ErrorResponseJSON(c, fiber.StatusConflict, "Exchange rates not loaded", "fetch /api/rates first")
		}

		converted, err := exchange.Convert(req.Amount, money.Code(req.From), money.Code(req.To), rates.Data)
		if err != nil {
			status := fiber.StatusUnprocessableEntity
			if errors.Is(err, exchange.ErrMissingRate) {
				status = fiber.StatusNotFound
			}
			return ErrorResponseJSON(c, status, "Conversion failed", err.Error())
		}

		meta := deps.Currencies.Get(money.Code(req.To))
		formatted, err := money.FormatWithSymbol(converted, meta.Symbol)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to format amount", err.Error())
		}

		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Conversion completed successfully",
			Data: fiber.Map{
				"amount":    req.Amount,
				"from":      req.From,
				"to":        req.To,
				"converted": converted,
				"formatted": formatted,
			},
		})
	}
}

// ListCurrencies returns the registered currency metadata.
func ListCurrencies(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Currencies fetched successfully",
			Data:    deps.Currencies.List(),
		})
	}
}
