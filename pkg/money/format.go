package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFinite is returned when a NaN or infinite amount is given to a
// formatting function. Display code must surface the error instead of
// rendering a garbage number.
var ErrNotFinite = errors.New("amount is not a finite number")

// FormatNumber formats an amount to two decimal places with comma
// thousands separators, e.g. 12450.25 -> "12,450.25".
func FormatNumber(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrNotFinite
	}

	fixed := decimal.NewFromFloat(amount).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String(), nil
}

// FormatCurrency formats an amount as a dollar-prefixed string,
// e.g. 5420.5 -> "$5,420.50".
func FormatCurrency(amount float64) (string, error) {
	s, err := FormatNumber(amount)
	if err != nil {
		return "", err
	}
	return "$" + s, nil
}

// FormatWithSymbol formats an amount prefixed with an arbitrary currency
// symbol, e.g. ("€", 100) -> "€100.00".
func FormatWithSymbol(amount float64, symbol string) (string, error) {
	s, err := FormatNumber(amount)
	if err != nil {
		return "", err
	}
	return symbol + s, nil
}
