// Package initializer wires configuration into concrete providers, the
// rates cache, the event bus and the store.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	infra_cache "github.com/bankline/bankline/infra/cache"
	infra_eventbus "github.com/bankline/bankline/infra/eventbus"
	"github.com/bankline/bankline/infra/provider/assistant"
	"github.com/bankline/bankline/infra/provider/coingecko"
	"github.com/bankline/bankline/infra/provider/exchangeratehost"
	"github.com/bankline/bankline/infra/provider/markets"
	"github.com/bankline/bankline/infra/provider/mockpayment"
	"github.com/bankline/bankline/infra/provider/openbank"
	"github.com/bankline/bankline/infra/provider/stripepayment"
	"github.com/bankline/bankline/pkg/cache"
	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/currency"
	"github.com/bankline/bankline/pkg/money"
	"github.com/bankline/bankline/pkg/provider/payment"
	"github.com/bankline/bankline/pkg/store"
	"github.com/bankline/bankline/webapi"
)

// InitializeDependencies builds everything the server and the CLI need
// from the loaded configuration.
func InitializeDependencies(cfg *config.App) (webapi.Deps, error) {
	logger := SetupLogger(cfg.Log)

	ratesCache, err := newRatesCache(cfg.Cache)
	if err != nil {
		return webapi.Deps{}, fmt.Errorf("failed to initialize rates cache: %w", err)
	}

	paymentProvider, err := newPaymentProvider(cfg.Payment, logger)
	if err != nil {
		return webapi.Deps{}, fmt.Errorf("failed to initialize payment provider: %w", err)
	}

	simulator := markets.New(cfg.Markets)
	providers := store.Providers{
		Rates:     exchangeratehost.New(cfg.Exchange, logger),
		Bank:      openbank.New(cfg.OpenBank, logger, nil),
		Crypto:    coingecko.New(cfg.CoinGecko, logger),
		Stocks:    simulator,
		ETFs:      simulator,
		Payment:   paymentProvider,
		Assistant: assistant.NewResponder(assistant.NewCompletionClient(cfg.Assistant), logger),
	}

	bus := infra_eventbus.NewMemoryBus(logger)

	st := store.New(providers, ratesCache, bus, store.Config{
		BaseCurrency:       money.Code(cfg.Exchange.BaseCurrency),
		CryptoCoins:        cfg.CoinGecko.Coins,
		RatesCacheTTL:      cfg.Exchange.CacheTTL,
		RejectDuplicateIDs: cfg.Store.RejectDuplicateIDs,
		PaymentPollEvery:   cfg.Payment.PollInterval,
		PaymentPollTimeout: cfg.Payment.PollTimeout,
	}, logger)

	return webapi.Deps{
		Store:      st,
		Currencies: currency.NewRegistry(),
		Logger:     logger,
		Validate:   validator.New(),
		Cfg:        cfg,
	}, nil
}

func newRatesCache(cfg config.Cache) (cache.RatesCache, error) {
	if cfg.Backend == "redis" {
		return infra_cache.NewRedisRatesCache(cfg.RedisUrl)
	}
	return infra_cache.NewMemoryRatesCache(), nil
}

func newPaymentProvider(cfg config.Payment, logger *slog.Logger) (payment.Provider, error) {
	switch cfg.Provider {
	case "stripe":
		if cfg.StripeApiKey == "" {
			return nil, fmt.Errorf("stripe payment provider requires PAYMENT_STRIPE_API_KEY")
		}
		return stripepayment.New(cfg.StripeApiKey, logger), nil
	default:
		return mockpayment.New(cfg.MockDelay), nil
	}
}
