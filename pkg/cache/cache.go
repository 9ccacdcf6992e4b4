// Package cache defines the interface for caching exchange-rate
// snapshots.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
)

// ErrCacheMiss is returned when no fresh snapshot is cached for a base
// currency.
var ErrCacheMiss = errors.New("rates cache miss")

// RatesCache stores exchange-rate snapshots keyed by base currency.
type RatesCache interface {
	Get(ctx context.Context, base money.Code) (*exchange.Rates, error)
	Set(ctx context.Context, rates *exchange.Rates, ttl time.Duration) error
	Delete(ctx context.Context, base money.Code) error
}
