package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankline/bankline/pkg/currency"
	"github.com/bankline/bankline/pkg/money"
)

func TestNewRegistrySeedsCommonCurrencies(t *testing.T) {
	r := currency.NewRegistry()

	assert.Len(t, r.List(), 7)
	assert.True(t, r.IsRegistered(money.USD))
	assert.True(t, r.IsRegistered(money.JPY))
	assert.False(t, r.IsRegistered("SEK"))

	usd := r.Get(money.USD)
	assert.Equal(t, "$", usd.Symbol)
	assert.Equal(t, 2, usd.Decimals)

	jpy := r.Get(money.JPY)
	assert.Equal(t, "¥", jpy.Symbol)
	assert.Equal(t, 0, jpy.Decimals)
}

func TestRegistryGetUnknownCode(t *testing.T) {
	r := currency.NewRegistry()

	meta := r.Get("SEK")
	assert.Equal(t, money.Code("SEK"), meta.Code)
	assert.Equal(t, "SEK", meta.Symbol, "unknown codes use the code as symbol")
	assert.Equal(t, currency.DefaultDecimals, meta.Decimals)
}

func TestRegistryRegisterAndUpdate(t *testing.T) {
	r := currency.NewRegistry()

	r.Register(currency.Meta{Code: "SEK", Symbol: "kr", Decimals: 2})
	require.True(t, r.IsRegistered("SEK"))
	assert.Equal(t, "kr", r.Get("SEK").Symbol)

	r.Register(currency.Meta{Code: "SEK", Symbol: "SEK kr", Decimals: 2})
	assert.Equal(t, "SEK kr", r.Get("SEK").Symbol)
	assert.Len(t, r.List(), 8)
}
