package exchange_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
)

func usdTable() exchange.Rates {
	return exchange.Rates{
		Base: money.USD,
		Rates: map[money.Code]float64{
			money.EUR: 0.9,
			money.GBP: 0.78,
			money.JPY: 155,
		},
		Date: "2024-01-15",
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		from     money.Code
		to       money.Code
		expected float64
		wantErr  error
	}{
		{"base to quote", 100, money.USD, money.EUR, 90, nil},
		{"quote to base", 90, money.EUR, money.USD, 100, nil},
		{"cross through base", 90, money.EUR, money.GBP, 78, nil},
		{"zero amount", 0, money.USD, money.JPY, 0, nil},
		{"missing from", 100, money.CHF, money.EUR, 0, exchange.ErrMissingRate},
		{"missing to", 100, money.USD, money.CHF, 0, exchange.ErrMissingRate},
	}

	rates := usdTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exchange.Convert(tt.amount, tt.from, tt.to, rates)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.False(t, math.IsNaN(got))
		})
	}
}

func TestConvertIdentity(t *testing.T) {
	// Identity conversions never consult the table, even an empty one.
	got, err := exchange.Convert(42.5, money.CHF, money.CHF, exchange.Rates{})
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)
}

func TestConvertRoundTrip(t *testing.T) {
	rates := usdTable()
	there, err := exchange.Convert(1234.56, money.USD, money.JPY, rates)
	require.NoError(t, err)
	back, err := exchange.Convert(there, money.JPY, money.USD, rates)
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, back, 1e-6)
}

func TestConvertDefaultsBaseToUSD(t *testing.T) {
	rates := exchange.Rates{Rates: map[money.Code]float64{money.EUR: 0.9}}
	got, err := exchange.Convert(100, money.USD, money.EUR, rates)
	require.NoError(t, err)
	assert.InDelta(t, 90, got, 1e-9)
}

func TestConvertInvalidRates(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"zero", 0},
		{"negative", -0.5},
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := exchange.Rates{
				Base:  money.USD,
				Rates: map[money.Code]float64{money.EUR: tt.rate},
			}
			_, err := exchange.Convert(100, money.USD, money.EUR, rates)
			assert.ErrorIs(t, err, exchange.ErrInvalidRate)
		})
	}
}

func TestConvertNonFiniteAmount(t *testing.T) {
	rates := usdTable()
	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := exchange.Convert(amount, money.USD, money.EUR, rates)
		assert.ErrorIs(t, err, exchange.ErrNotFinite)
	}
}
