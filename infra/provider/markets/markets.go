// Package markets simulates a stock/ETF quote provider. There is no real
// endpoint; quotes are fixed lists returned after a configurable delay
// that stands in for network latency.
package markets

import (
	"context"
	"time"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/provider"
)

// Simulator serves fixed stock and ETF quote lists.
type Simulator struct {
	delay time.Duration
}

// New creates a simulator from config.
func New(cfg config.Markets) *Simulator {
	return &Simulator{delay: cfg.Delay}
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Stocks returns the fixed stock list.
func (s *Simulator) Stocks(ctx context.Context) ([]domain.Stock, provider.Source, error) {
	if err := s.wait(ctx); err != nil {
		return nil, "", err
	}
	return []domain.Stock{
		{
			ID:                "aapl",
			Symbol:            "AAPL",
			Name:              "Apple Inc.",
			CurrentPrice:      150.25,
			MarketCap:         2500000000000,
			PriceChangePct24h: 1.69,
		},
		{
			ID:                "googl",
			Symbol:            "GOOGL",
			Name:              "Alphabet Inc.",
			CurrentPrice:      2800.00,
			MarketCap:         1800000000000,
			PriceChangePct24h: -0.56,
		},
		{
			ID:                "msft",
			Symbol:            "MSFT",
			Name:              "Microsoft Corporation",
			CurrentPrice:      305.50,
			MarketCap:         2300000000000,
			PriceChangePct24h: 0.85,
		},
	}, provider.SourceLive, nil
}

// ETFs returns the fixed ETF list.
func (s *Simulator) ETFs(ctx context.Context) ([]domain.ETF, provider.Source, error) {
	if err := s.wait(ctx); err != nil {
		return nil, "", err
	}
	return []domain.ETF{
		{
			ID:                "spy",
			Symbol:            "SPY",
			Name:              "SPDR S&P 500 ETF",
			CurrentPrice:      450.80,
			PriceChangePct24h: 0.27,
		},
		{
			ID:                "qqq",
			Symbol:            "QQQ",
			Name:              "Invesco QQQ ETF",
			CurrentPrice:      380.25,
			PriceChangePct24h: -0.12,
		},
		{
			ID:                "vti",
			Symbol:            "VTI",
			Name:              "Vanguard Total Stock Market ETF",
			CurrentPrice:      220.15,
			PriceChangePct24h: 0.45,
		},
	}, provider.SourceLive, nil
}

var (
	_ provider.StockProvider = (*Simulator)(nil)
	_ provider.ETFProvider   = (*Simulator)(nil)
)
