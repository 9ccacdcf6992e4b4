package markets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/provider"
)

func TestStocksAreDeterministic(t *testing.T) {
	sim := New(config.Markets{})

	first, source, err := sim.Stocks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, provider.SourceLive, source)

	second, _, err := sim.Stocks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first, 3)
	assert.Equal(t, "AAPL", first[0].Symbol)
	assert.InDelta(t, 150.25, first[0].CurrentPrice, 1e-9)
}

func TestETFsAreDeterministic(t *testing.T) {
	sim := New(config.Markets{})

	etfs, source, err := sim.ETFs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, provider.SourceLive, source)

	require.Len(t, etfs, 3)
	assert.Equal(t, "SPY", etfs[0].Symbol)
	assert.Equal(t, "QQQ", etfs[1].Symbol)
	assert.Equal(t, "VTI", etfs[2].Symbol)
}

func TestSimulatorDelay(t *testing.T) {
	sim := New(config.Markets{Delay: 20 * time.Millisecond})

	start := time.Now()
	_, _, err := sim.Stocks(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSimulatorHonorsContext(t *testing.T) {
	sim := New(config.Markets{Delay: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := sim.Stocks(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
