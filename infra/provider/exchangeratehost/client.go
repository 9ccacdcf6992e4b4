// Package exchangeratehost fetches exchange-rate snapshots from an
// exchangerate.host-compatible endpoint.
package exchangeratehost

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
	"github.com/bankline/bankline/pkg/provider"
)

// response is the wire shape of GET /latest?base=<CODE>.
type response struct {
	Rates map[money.Code]float64 `json:"rates"`
	Base  money.Code             `json:"base"`
	Date  string                 `json:"date"`
}

// Client fetches exchange-rate snapshots over HTTP. When the fallback is
// enabled, a failed call yields a fixed deterministic rate table instead
// of an error.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	enableFallback bool
}

// New creates a client from config.
func New(cfg config.ExchangeRate, logger *slog.Logger) *Client {
	return &Client{
		baseURL:        cfg.ApiUrl,
		httpClient:     &http.Client{Timeout: cfg.HTTPTimeout},
		logger:         logger.With("provider", "exchangeratehost"),
		enableFallback: cfg.EnableFallback,
	}
}

// Latest fetches the current rate table for the base currency.
func (c *Client) Latest(ctx context.Context, base money.Code) (exchange.Rates, provider.Source, error) {
	rates, err := c.fetch(ctx, base)
	if err != nil {
		if c.enableFallback {
			c.logger.Warn("falling back to static exchange rates", "base", base, "error", err)
			return Fallback(), provider.SourceFallback, nil
		}
		return exchange.Rates{}, "", err
	}
	return rates, provider.SourceLive, nil
}

func (c *Client) fetch(ctx context.Context, base money.Code) (exchange.Rates, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s", c.baseURL, url.QueryEscape(base.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return exchange.Rates{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exchange.Rates{}, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return exchange.Rates{}, fmt.Errorf("rates API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return exchange.Rates{}, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if len(apiResp.Rates) == 0 {
		return exchange.Rates{}, fmt.Errorf("rates API returned an empty table for base %s", base)
	}

	return exchange.Rates{
		Base:  apiResp.Base,
		Rates: apiResp.Rates,
		Date:  apiResp.Date,
	}, nil
}

// Fallback returns the deterministic substitute rate table. The entries
// are USD-relative, so the table is always stamped with the default base
// regardless of which base was requested.
func Fallback() exchange.Rates {
	return exchange.Rates{
		Base: money.DefaultCode,
		Rates: map[money.Code]float64{
			money.EUR: 0.9,
			money.GBP: 0.78,
			money.JPY: 155,
			money.CAD: 1.36,
			money.AUD: 1.52,
			money.CHF: 0.88,
		},
		Date: "1970-01-01",
	}
}

var _ provider.RatesProvider = (*Client)(nil)
