package webapi

import (
	"time"

	"github.com/bankline/bankline/pkg/analytics"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/money"
	"github.com/gofiber/fiber/v2"
)

// DashboardRoutes registers the dashboard endpoint.
func DashboardRoutes(app *fiber.App, deps Deps) {
	app.Get("/api/dashboard", GetDashboard(deps))
}

// highlightedTransaction is a transaction with the display highlight flag
// attached.
type highlightedTransaction struct {
	domain.Transaction
	IsHighlighted bool `json:"is_highlighted"`
}

type dashboardView struct {
	Greeting         string                   `json:"greeting"`
	Balance          float64                  `json:"balance"`
	FormattedBalance string                   `json:"formatted_balance"`
	Transactions     []highlightedTransaction `json:"transactions"`
	SpendingInsight  string                   `json:"spending_insight,omitempty"`
	Theme            string                   `json:"theme"`
}

func greetingFor(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// GetDashboard returns the balance, the five most recent transactions
// with highlight flags, and the spending insight.
func GetDashboard(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		balance := deps.Store.Balance()
		formatted, err := money.FormatCurrency(balance)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to format balance", err.Error())
		}

		txs := deps.Store.Transactions()
		if len(txs) > 5 {
			txs = txs[:5]
		}
		recent := make([]highlightedTransaction, len(txs))
		for i, tx := range txs {
			recent[i] = highlightedTransaction{Transaction: tx, IsHighlighted: analytics.Highlight(tx)}
		}

		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Dashboard fetched successfully",
			Data: dashboardView{
				Greeting:         greetingFor(time.Now().Hour()),
				Balance:          balance,
				FormattedBalance: formatted,
				Transactions:     recent,
				SpendingInsight:  analytics.SpendingInsight(deps.Store.Transactions()),
				Theme:            string(deps.Store.Theme()),
			},
		})
	}
}
