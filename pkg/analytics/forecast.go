package analytics

import (
	"errors"
	"time"

	"github.com/bankline/bankline/pkg/domain"
)

// ErrInsufficientData is returned when a series is too short to fit a
// trend line. A single point has no slope.
var ErrInsufficientData = errors.New("insufficient data for trend analysis")

// MonthTotal is the income and expense sum for one calendar month.
type MonthTotal struct {
	Month   time.Month `json:"month"`
	Income  float64    `json:"income"`
	Expense float64    `json:"expense"`
}

// dateLayouts are tried in order when bucketing transactions by month.
// Transactions with free-text dates ("Today", "Yesterday") don't land in
// any bucket.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthlyTotals buckets transactions into the twelve calendar months by
// their date field. Unparseable dates are skipped.
func MonthlyTotals(txs []domain.Transaction) [12]MonthTotal {
	var totals [12]MonthTotal
	for i := range totals {
		totals[i].Month = time.Month(i + 1)
	}
	for _, tx := range txs {
		t, ok := parseDate(tx.Date)
		if !ok {
			continue
		}
		bucket := &totals[int(t.Month())-1]
		switch tx.Direction {
		case domain.Credit:
			bucket.Income += tx.Amount
		case domain.Debit:
			bucket.Expense += tx.Amount
		}
	}
	return totals
}

// PredictNextPeriod fits an ordinary-least-squares line over the series
// (index as x) and extrapolates one period beyond its end. Series shorter
// than two points fail with ErrInsufficientData instead of dividing by
// zero.
func PredictNextPeriod(series []float64) (float64, error) {
	n := len(series)
	if n < 2 {
		return 0, ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	return slope*fn + intercept, nil
}

// ForecastNextMonth predicts next month's expenses from the monthly
// expense series of the given transactions. Only months with any activity
// enter the series; fewer than two such months fail with
// ErrInsufficientData.
func ForecastNextMonth(txs []domain.Transaction) (float64, error) {
	totals := MonthlyTotals(txs)
	var series []float64
	for _, mt := range totals {
		if mt.Income == 0 && mt.Expense == 0 {
			continue
		}
		series = append(series, mt.Expense)
	}
	return PredictNextPeriod(series)
}
