// Package exchange holds the exchange-rate table type and pivot-based
// currency conversion.
//
// A Rates table maps currency codes to multipliers relative to a base
// currency (usually USD). Conversion between two non-base currencies is
// routed through the base: amount / rates[from] * rates[to].
package exchange

import (
	"errors"
	"fmt"
	"math"

	"github.com/bankline/bankline/pkg/money"
)

var (
	// ErrMissingRate is returned when the rate table has no entry for a
	// non-base currency involved in a conversion.
	ErrMissingRate = errors.New("missing exchange rate")

	// ErrInvalidRate is returned when a rate table entry is zero, negative
	// or not finite.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrNotFinite is returned when the amount to convert is NaN or
	// infinite.
	ErrNotFinite = errors.New("amount is not a finite number")
)

// Rates is an exchange-rate snapshot: multipliers relative to Base as
// fetched from the rate provider on Date.
type Rates struct {
	Base  money.Code             `json:"base"`
	Rates map[money.Code]float64 `json:"rates"`
	Date  string                 `json:"date"`
}

// base returns the table's base currency, defaulting to USD when unset.
func (r Rates) base() money.Code {
	if r.Base == "" {
		return money.DefaultCode
	}
	return r.Base
}

// multiplier returns the rate for code, validating it is usable.
func (r Rates) multiplier(code money.Code) (float64, error) {
	rate, ok := r.Rates[code]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingRate, code)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: %s=%v", ErrInvalidRate, code, rate)
	}
	return rate, nil
}

// Convert converts amount from one currency to another through the table's
// base currency. Identity conversions return the amount unchanged without
// touching the table. A missing or unusable rate for a non-base currency
// fails with ErrMissingRate/ErrInvalidRate; Convert never returns NaN.
func Convert(amount float64, from, to money.Code, rates Rates) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrNotFinite
	}
	if from == to {
		return amount, nil
	}

	base := rates.base()

	inBase := amount
	if from != base {
		rate, err := rates.multiplier(from)
		if err != nil {
			return 0, err
		}
		inBase = amount / rate
	}

	if to == base {
		return inBase, nil
	}
	rate, err := rates.multiplier(to)
	if err != nil {
		return 0, err
	}
	return inBase * rate, nil
}
