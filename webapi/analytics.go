package webapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/bankline/bankline/pkg/analytics"
	"github.com/bankline/bankline/pkg/money"
)

// AnalyticsRoutes registers the derived-spending endpoints.
func AnalyticsRoutes(app *fiber.App, deps Deps) {
	app.Get("/api/analytics/categories", GetCategoryTotals(deps))
	app.Get("/api/analytics/savings-rate", GetSavingsRate(deps))
	app.Get("/api/analytics/forecast", GetForecast(deps))
}

type categoryView struct {
	Category       string  `json:"category"`
	Total          float64 `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
}

// GetCategoryTotals returns debit totals per category, largest first.
// The "top" query parameter limits the list; it defaults to every
// category.
func GetCategoryTotals(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs := deps.Store.Transactions()
		top := c.QueryInt("top", len(txs))
		ranked := analytics.TopCategories(txs, top)
		view := make([]categoryView, 0, len(ranked))
		for _, ct := range ranked {
			formatted, err := money.FormatCurrency(ct.Total)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to format total", err.Error())
			}
			view = append(view, categoryView{
				Category:       ct.Category,
				Total:          ct.Total,
				FormattedTotal: formatted,
			})
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Spending by category",
			Data:    view,
		})
	}
}

type savingsView struct {
	SavingsRate float64 `json:"savings_rate"`
	Insight     string  `json:"insight"`
}

// GetSavingsRate returns the savings rate over the current transaction
// history together with the spending insight line.
func GetSavingsRate(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs := deps.Store.Transactions()
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Savings rate",
			Data: savingsView{
				SavingsRate: analytics.SavingsRate(txs),
				Insight:     analytics.SpendingInsight(txs),
			},
		})
	}
}

type forecastView struct {
	NextMonth     float64                `json:"next_month"`
	Formatted     string                 `json:"formatted"`
	MonthlyTotals []analytics.MonthTotal `json:"monthly_totals"`
}

// GetForecast extrapolates next month's spending from the monthly debit
// totals. Fewer than two months of history is a 422.
func GetForecast(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs := deps.Store.Transactions()
		next, err := analytics.ForecastNextMonth(txs)
		if err != nil {
			if errors.Is(err, analytics.ErrInsufficientData) {
				return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Not enough history to forecast", err.Error())
			}
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to forecast", err.Error())
		}
		formatted, err := money.FormatCurrency(next)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to format forecast", err.Error())
		}
		totals := analytics.MonthlyTotals(txs)
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Spending forecast",
			Data: forecastView{
				NextMonth:     next,
				Formatted:     formatted,
				MonthlyTotals: totals[:],
			},
		})
	}
}
