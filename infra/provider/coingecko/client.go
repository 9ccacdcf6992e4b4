// Package coingecko fetches crypto market data from a CoinGecko-compatible
// endpoint.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/provider"
)

// Client fetches market data for a set of coin ids. On failure it
// substitutes the fixed bitcoin/ethereum pair when the fallback is
// enabled.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	enableFallback bool
}

// New creates a client from config.
func New(cfg config.CoinGecko, logger *slog.Logger) *Client {
	return &Client{
		baseURL:        cfg.ApiUrl,
		httpClient:     &http.Client{Timeout: cfg.HTTPTimeout},
		logger:         logger.With("provider", "coingecko"),
		enableFallback: cfg.EnableFallback,
	}
}

// Markets fetches current market entries for the given coin ids, ordered
// by market cap.
func (c *Client) Markets(ctx context.Context, ids []string) ([]domain.CryptoCoin, provider.Source, error) {
	coins, err := c.fetch(ctx, ids)
	if err != nil {
		if c.enableFallback {
			c.logger.Warn("falling back to mock crypto prices", "error", err)
			return FallbackCoins(), provider.SourceFallback, nil
		}
		return nil, "", err
	}
	return coins, provider.SourceLive, nil
}

func (c *Client) fetch(ctx context.Context, ids []string) ([]domain.CryptoCoin, error) {
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("ids", strings.Join(ids, ","))
	query.Set("order", "market_cap_desc")
	query.Set("per_page", "10")
	query.Set("page", "1")
	query.Set("sparkline", "false")
	endpoint := fmt.Sprintf("%s/coins/markets?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach crypto API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("crypto API returned status %d: %s", resp.StatusCode, string(body))
	}

	var coins []domain.CryptoCoin
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, fmt.Errorf("failed to decode crypto response: %w", err)
	}
	return coins, nil
}

// FallbackCoins is the deterministic substitute market list.
func FallbackCoins() []domain.CryptoCoin {
	return []domain.CryptoCoin{
		{
			ID:                "bitcoin",
			Symbol:            "btc",
			Name:              "Bitcoin",
			CurrentPrice:      45000,
			MarketCap:         850000000000,
			MarketCapRank:     1,
			PriceChangePct24h: 2.5,
			Image:             "https://assets.coingecko.com/coins/images/1/large/bitcoin.png",
		},
		{
			ID:                "ethereum",
			Symbol:            "eth",
			Name:              "Ethereum",
			CurrentPrice:      2500,
			MarketCap:         300000000000,
			MarketCapRank:     2,
			PriceChangePct24h: -1.2,
			Image:             "https://assets.coingecko.com/coins/images/279/large/ethereum.png",
		},
	}
}

var _ provider.CryptoProvider = (*Client)(nil)
