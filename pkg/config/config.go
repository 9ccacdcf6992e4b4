// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Server configures the HTTP API.
type Server struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"20"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1s"`
}

// ExchangeRate configures the exchange-rate provider and cache policy.
type ExchangeRate struct {
	ApiUrl         string        `envconfig:"API_URL" default:"https://api.exchangerate.host"`
	BaseCurrency   string        `envconfig:"BASE_CURRENCY" default:"USD"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	EnableFallback bool          `envconfig:"ENABLE_FALLBACK" default:"false"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"15m"`
}

// OpenBank configures the open-banking sandbox provider.
type OpenBank struct {
	ApiUrl         string        `envconfig:"API_URL" default:"https://api.openbankproject.com/obp/v4.0.0"`
	Token          string        `envconfig:"TOKEN" default:"your-token-here"`
	BankID         string        `envconfig:"BANK_ID" default:"bank1"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	EnableFallback bool          `envconfig:"ENABLE_FALLBACK" default:"true"`
}

// CoinGecko configures the crypto market-data provider.
type CoinGecko struct {
	ApiUrl         string        `envconfig:"API_URL" default:"https://api.coingecko.com/api/v3"`
	Coins          []string      `envconfig:"COINS" default:"bitcoin,ethereum"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	EnableFallback bool          `envconfig:"ENABLE_FALLBACK" default:"true"`
}

// Markets configures the simulated stock/ETF provider.
type Markets struct {
	Delay time.Duration `envconfig:"DELAY" default:"500ms"`
}

// Assistant configures the chat-completion backend for the financial
// assistant. With the placeholder key the rule-based responder answers
// locally instead.
type Assistant struct {
	ApiUrl      string        `envconfig:"API_URL" default:"https://api.openai.com/v1"`
	ApiKey      string        `envconfig:"API_KEY" default:"your-api-key-here"`
	Model       string        `envconfig:"MODEL" default:"gpt-3.5-turbo"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
}

// Payment configures the payment provider used by transfers.
type Payment struct {
	Provider     string        `envconfig:"PROVIDER" default:"mock"`
	StripeApiKey string        `envconfig:"STRIPE_API_KEY"`
	MockDelay    time.Duration `envconfig:"MOCK_DELAY" default:"1s"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"250ms"`
	PollTimeout  time.Duration `envconfig:"POLL_TIMEOUT" default:"10s"`
}

// Cache selects the rates-cache backend.
type Cache struct {
	Backend  string `envconfig:"BACKEND" default:"memory"`
	RedisUrl string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// Store configures optional store-side validation. Duplicate-ID rejection
// is off by default.
type Store struct {
	RejectDuplicateIDs bool `envconfig:"REJECT_DUPLICATE_IDS" default:"false"`
}

// Log configures logging.
type Log struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
	Prefix string `envconfig:"PREFIX" default:"bankline"`
}

// App is the aggregate application configuration.
type App struct {
	Server    Server       `envconfig:"SERVER"`
	Exchange  ExchangeRate `envconfig:"EXCHANGE_RATE"`
	OpenBank  OpenBank     `envconfig:"OPEN_BANK"`
	CoinGecko CoinGecko    `envconfig:"COINGECKO"`
	Markets   Markets      `envconfig:"MARKETS"`
	Assistant Assistant    `envconfig:"ASSISTANT"`
	Payment   Payment      `envconfig:"PAYMENT"`
	Cache     Cache        `envconfig:"CACHE"`
	Store     Store        `envconfig:"STORE"`
	Log       Log          `envconfig:"LOG"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load(logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
