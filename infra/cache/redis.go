package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bankline/bankline/pkg/cache"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
	"github.com/redis/go-redis/v9"
)

// RedisRatesCache stores rate snapshots in Redis as JSON with Redis-side
// expiry, so multiple processes can share one rate budget.
type RedisRatesCache struct {
	client *redis.Client
}

// NewRedisRatesCache creates a Redis-backed rates cache from a redis URL.
func NewRedisRatesCache(redisURL string) (*RedisRatesCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisRatesCache{client: redis.NewClient(opts)}, nil
}

func ratesKey(base money.Code) string {
	return "rates:" + base.String()
}

// Get returns the cached snapshot for base, or ErrCacheMiss when absent.
func (c *RedisRatesCache) Get(ctx context.Context, base money.Code) (*exchange.Rates, error) {
	payload, err := c.client.Get(ctx, ratesKey(base)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var rates exchange.Rates
	if err := json.Unmarshal(payload, &rates); err != nil {
		return nil, fmt.Errorf("corrupt cached rates: %w", err)
	}
	return &rates, nil
}

// Set stores a snapshot under its base currency with ttl.
func (c *RedisRatesCache) Set(ctx context.Context, rates *exchange.Rates, ttl time.Duration) error {
	base := rates.Base
	if base == "" {
		base = money.DefaultCode
	}
	payload, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("marshal rates: %w", err)
	}
	if err := c.client.Set(ctx, ratesKey(base), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the snapshot for base.
func (c *RedisRatesCache) Delete(ctx context.Context, base money.Code) error {
	if err := c.client.Del(ctx, ratesKey(base)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RedisRatesCache) Close() error {
	return c.client.Close()
}

var _ cache.RatesCache = (*RedisRatesCache)(nil)
