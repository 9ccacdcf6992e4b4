// Package money provides currency codes and display formatting for
// monetary amounts.
//
// Amounts elsewhere in the module are float64 magnitudes with an explicit
// direction; this package only cares about naming the currency they are in
// and rendering them for display.
package money

import "fmt"

// Code represents a currency code (e.g., "USD", "EUR").
type Code string

// Common currency codes
const (
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	GBP Code = "GBP" // British Pound
	JPY Code = "JPY" // Japanese Yen
	CAD Code = "CAD" // Canadian Dollar
	AUD Code = "AUD" // Australian Dollar
	CHF Code = "CHF" // Swiss Franc
)

// DefaultCode is the default currency code (USD).
var DefaultCode = USD

// ErrInvalidCurrency is returned when a currency code is not three
// uppercase ASCII letters.
var ErrInvalidCurrency = fmt.Errorf("invalid currency code")

// IsValid checks if the currency code is valid ISO 4217 shape
// (3 uppercase letters).
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}
