// Package currency maintains a registry of currency display metadata
// (symbol, decimal places) keyed by currency code.
package currency

import (
	"sync"

	"github.com/bankline/bankline/pkg/money"
)

// DefaultDecimals is the default number of decimal places for currencies.
const DefaultDecimals = 2

// Meta holds currency-specific display metadata.
type Meta struct {
	Code     money.Code `json:"code"`
	Symbol   string     `json:"symbol"`
	Decimals int        `json:"decimals"`
}

// Registry is a thread-safe registry of currency metadata.
type Registry struct {
	mu         sync.RWMutex
	currencies map[money.Code]Meta
}

// NewRegistry creates a registry seeded with common currencies.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[money.Code]Meta)}

	defaults := []Meta{
		{Code: money.USD, Symbol: "$", Decimals: 2},
		{Code: money.EUR, Symbol: "€", Decimals: 2},
		{Code: money.GBP, Symbol: "£", Decimals: 2},
		{Code: money.JPY, Symbol: "¥", Decimals: 0},
		{Code: money.CAD, Symbol: "C$", Decimals: 2},
		{Code: money.AUD, Symbol: "A$", Decimals: 2},
		{Code: money.CHF, Symbol: "CHF", Decimals: 2},
	}
	for _, meta := range defaults {
		r.Register(meta)
	}
	return r
}

// Register adds or updates a currency.
func (r *Registry) Register(meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[meta.Code] = meta
}

// Get returns metadata for the given code. Unknown codes get the code
// itself as symbol and the default decimals.
func (r *Registry) Get(code money.Code) Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if meta, ok := r.currencies[code]; ok {
		return meta
	}
	return Meta{Code: code, Symbol: code.String(), Decimals: DefaultDecimals}
}

// IsRegistered checks if a code is registered.
func (r *Registry) IsRegistered(code money.Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[code]
	return ok
}

// List returns all registered currencies.
func (r *Registry) List() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Meta, 0, len(r.currencies))
	for _, meta := range r.currencies {
		list = append(list, meta)
	}
	return list
}
