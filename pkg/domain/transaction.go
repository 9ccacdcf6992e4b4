// Package domain holds the entities carried in application state: the
// user's own transactions, accounts and cards, plus the data shapes
// returned by the remote financial-data providers.
package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/bankline/bankline/pkg/money"
)

// Direction disambiguates whether a transaction adds to or subtracts from
// the balance. Amounts are always non-negative magnitudes; the direction is
// the only thing that carries sign.
type Direction string

const (
	// Credit adds the transaction amount to the balance.
	Credit Direction = "credit"
	// Debit subtracts the transaction amount from the balance.
	Debit Direction = "debit"
)

// IsValid reports whether the direction is one of the two known values.
func (d Direction) IsValid() bool {
	return d == Credit || d == Debit
}

var (
	// ErrInvalidDirection is returned when a transaction carries an unknown
	// direction value.
	ErrInvalidDirection = errors.New("invalid transaction direction")

	// ErrNegativeAmount is returned when a transaction amount is negative.
	// Amounts are magnitudes; sign lives in the direction.
	ErrNegativeAmount = errors.New("transaction amount must not be negative")

	// ErrNotFiniteAmount is returned when a transaction amount is NaN or
	// infinite.
	ErrNotFiniteAmount = errors.New("transaction amount must be finite")

	// ErrMissingID is returned when a transaction has no identifier.
	ErrMissingID = errors.New("transaction id is required")
)

// Transaction is a single ledger entry in the user's own transaction list.
type Transaction struct {
	ID          string    `json:"id" validate:"required"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Direction   Direction `json:"direction" validate:"required,oneof=credit debit"`
}

// Validate checks the invariants every transaction must satisfy before it
// is admitted into the store.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if !t.Direction.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, t.Direction)
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrNotFiniteAmount
	}
	if t.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Signed returns the amount with the direction applied: positive for
// credits, negative for debits.
func (t Transaction) Signed() float64 {
	if t.Direction == Debit {
		return -t.Amount
	}
	return t.Amount
}

// AccountType labels the kind of account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCrypto   AccountType = "crypto"
)

// Account is one of the user's own accounts.
type Account struct {
	ID       string      `json:"id"`
	Type     AccountType `json:"type"`
	Balance  float64     `json:"balance"`
	Currency money.Code  `json:"currency"`
}

// Card is a payment card attached to the user's profile.
type Card struct {
	ID        string `json:"id"`
	Number    string `json:"number"` // masked
	Expiry    string `json:"expiry"`
	CVV       string `json:"cvv"`
	IsVirtual bool   `json:"is_virtual"`
	IsBlocked bool   `json:"is_blocked"`
}

// User is the signed-in profile.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
