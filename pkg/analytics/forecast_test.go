package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankline/bankline/pkg/analytics"
	"github.com/bankline/bankline/pkg/domain"
)

func TestMonthlyTotals(t *testing.T) {
	txs := []domain.Transaction{
		{Description: "Salary", Amount: 3500, Date: "2024-01-31", Category: "Income", Direction: domain.Credit},
		{Description: "Rent", Amount: 1200, Date: "2024-01-01", Category: "Bills", Direction: domain.Debit},
		{Description: "Groceries", Amount: 85.30, Date: "2024-02-10T09:30:00Z", Category: "Food", Direction: domain.Debit},
		{Description: "Coffee", Amount: 5.75, Date: "Today", Category: "Food", Direction: domain.Debit},
	}

	totals := analytics.MonthlyTotals(txs)

	assert.Equal(t, time.January, totals[0].Month)
	assert.InDelta(t, 3500, totals[0].Income, 1e-9)
	assert.InDelta(t, 1200, totals[0].Expense, 1e-9)

	assert.Equal(t, time.February, totals[1].Month)
	assert.InDelta(t, 85.30, totals[1].Expense, 1e-9)

	// Free-text dates are skipped, so March onward stays empty.
	for i := 2; i < 12; i++ {
		assert.Zero(t, totals[i].Income)
		assert.Zero(t, totals[i].Expense)
	}
}

func TestPredictNextPeriod(t *testing.T) {
	tests := []struct {
		name     string
		series   []float64
		expected float64
		wantErr  error
	}{
		{"two points", []float64{100, 200}, 300, nil},
		{"exact line", []float64{10, 20, 30}, 40, nil},
		{"flat", []float64{50, 50, 50, 50}, 50, nil},
		{"declining", []float64{30, 20, 10}, 0, nil},
		{"empty", nil, 0, analytics.ErrInsufficientData},
		{"single point", []float64{100}, 0, analytics.ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analytics.PredictNextPeriod(tt.series)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestForecastNextMonth(t *testing.T) {
	// Expenses grow by 10 each month, so the fitted line extrapolates to
	// 130 for the thirteenth period.
	var txs []domain.Transaction
	for m := 1; m <= 12; m++ {
		txs = append(txs, domain.Transaction{
			Description: "Spend",
			Amount:      float64(10 * m),
			Date:        fmt.Sprintf("2024-%02d-15", m),
			Category:    "Shopping",
			Direction:   domain.Debit,
		})
	}

	got, err := analytics.ForecastNextMonth(txs)
	require.NoError(t, err)
	assert.InDelta(t, 130, got, 1e-9)
}

func TestForecastNextMonthInsufficientHistory(t *testing.T) {
	txs := []domain.Transaction{
		{Description: "Spend", Amount: 100, Date: "2024-01-15", Category: "Shopping", Direction: domain.Debit},
		{Description: "Coffee", Amount: 5.75, Date: "Today", Category: "Food", Direction: domain.Debit},
	}

	_, err := analytics.ForecastNextMonth(txs)
	assert.ErrorIs(t, err, analytics.ErrInsufficientData)
}
