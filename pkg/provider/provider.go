// Package provider defines the contracts between the store and the remote
// financial-data providers.
//
// Every provider returns a strongly-shaped result or an error; it never
// returns partial data. Providers that carry a deterministic mock fallback
// report which path produced the data via Source, so the store can tell
// "service unreachable, showing canned data" apart from a live result
// without branching on shape.
package provider

import (
	"context"

	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
)

// Source records which path produced a provider result.
type Source string

const (
	// SourceLive marks data returned by the real remote service.
	SourceLive Source = "live"
	// SourceFallback marks the deterministic mock substitute used when the
	// real call failed.
	SourceFallback Source = "fallback"
	// SourceCache marks data served from the rate cache.
	SourceCache Source = "cache"
)

// RatesProvider fetches an exchange-rate snapshot for a base currency.
type RatesProvider interface {
	Latest(ctx context.Context, base money.Code) (exchange.Rates, Source, error)
}

// BankProvider fetches the user's bank accounts and per-account
// transactions from the open-banking sandbox.
type BankProvider interface {
	Accounts(ctx context.Context) ([]domain.BankAccount, Source, error)
	Transactions(ctx context.Context, accountID string) ([]domain.BankTransaction, Source, error)
}

// CryptoProvider fetches current crypto market data for the given coin
// ids.
type CryptoProvider interface {
	Markets(ctx context.Context, ids []string) ([]domain.CryptoCoin, Source, error)
}

// StockProvider fetches stock quotes.
type StockProvider interface {
	Stocks(ctx context.Context) ([]domain.Stock, Source, error)
}

// ETFProvider fetches ETF quotes.
type ETFProvider interface {
	ETFs(ctx context.Context) ([]domain.ETF, Source, error)
}

// AssistantResponder answers a user message, optionally grounding the
// answer in the user's transaction history.
type AssistantResponder interface {
	Respond(ctx context.Context, message string, txs []domain.Transaction) (domain.AssistantReply, error)
}
