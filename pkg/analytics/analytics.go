// Package analytics derives display-ready figures from the transaction
// list: category aggregation, top-N rankings, savings rate and the
// highlight predicate used by the dashboard.
//
// All functions are pure over their inputs and recompute on every call;
// callers that read them on a hot path are expected to cache on their side.
package analytics

import (
	"sort"

	"github.com/bankline/bankline/pkg/domain"
)

// CategoryTotal is one category with its summed expense amount.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryTotals sums debit amounts grouped by category label. Labels are
// case-sensitive and not normalized. The result is independent of the
// input order.
func CategoryTotals(txs []domain.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if tx.Direction != domain.Debit {
			continue
		}
		totals[tx.Category] += tx.Amount
	}
	return totals
}

// TopCategories ranks expense categories descending by summed amount and
// returns at most n of them. Ties keep the order in which the categories
// first appear in the transaction list.
func TopCategories(txs []domain.Transaction, n int) []CategoryTotal {
	totals := make(map[string]float64)
	firstSeen := make(map[string]int)
	order := 0
	for _, tx := range txs {
		if tx.Direction != domain.Debit {
			continue
		}
		if _, seen := firstSeen[tx.Category]; !seen {
			firstSeen[tx.Category] = order
			order++
		}
		totals[tx.Category] += tx.Amount
	}

	ranked := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		ranked = append(ranked, CategoryTotal{Category: category, Total: total})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return firstSeen[ranked[i].Category] < firstSeen[ranked[j].Category]
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SavingsRate computes (income - expenses) / income over the transaction
// list. With zero income it returns 0, never NaN or an infinity.
func SavingsRate(txs []domain.Transaction) float64 {
	var income, expenses float64
	for _, tx := range txs {
		switch tx.Direction {
		case domain.Credit:
			income += tx.Amount
		case domain.Debit:
			expenses += tx.Amount
		}
	}
	if income == 0 {
		return 0
	}
	return (income - expenses) / income
}

// Highlight reports whether a transaction should be visually highlighted:
// large amounts and salary entries.
func Highlight(tx domain.Transaction) bool {
	return tx.Amount > 100 || tx.Category == "Salary"
}

// SpendingInsight returns a short advisory string based on the average
// expense per transaction. It returns "" for an empty list.
func SpendingInsight(txs []domain.Transaction) string {
	if len(txs) == 0 {
		return ""
	}
	var spent float64
	for _, tx := range txs {
		if tx.Direction == domain.Debit {
			spent += tx.Amount
		}
	}
	avg := spent / float64(len(txs))
	switch {
	case avg < 50:
		return "You're spending wisely this week!"
	case avg < 100:
		return "Keep an eye on your expenses."
	default:
		return "Consider reviewing your spending habits."
	}
}
