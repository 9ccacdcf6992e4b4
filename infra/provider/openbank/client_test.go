package openbank

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/provider"
)

func newTestClient(url string, fallback bool) *Client {
	return New(config.OpenBank{
		ApiUrl:         url,
		Token:          "test-token",
		BankID:         "bank1",
		HTTPTimeout:    time.Second,
		EnableFallback: fallback,
	}, slog.Default(), func() string { return "2024-01-15T12:00:00Z" })
}

func TestAccountsLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/my/accounts", r.URL.Path)
		assert.Equal(t, "DirectLogin token=test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"accounts":[
			{"id":"acc-1","label":"Everyday","type":"checking","balance":{"amount":1000,"currency":"USD"},"bank_id":"bank1"}
		]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, false)
	accounts, source, err := client.Accounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, provider.SourceLive, source)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc-1", accounts[0].ID)
	assert.Equal(t, "Everyday", accounts[0].Label)
	assert.InDelta(t, 1000, accounts[0].Balance.Amount, 1e-9)
}

func TestAccountsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, true)
	accounts, source, err := client.Accounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, provider.SourceFallback, source)
	assert.Equal(t, FallbackAccounts(), accounts)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Main Checking", accounts[0].Label)
}

func TestAccountsErrorWithoutFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, false)
	_, _, err := client.Accounts(context.Background())
	assert.ErrorContains(t, err, "401")
}

func TestTransactionsLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/my/banks/bank1/accounts/acc-1/transactions", r.URL.Path)
		fmt.Fprint(w, `{"transactions":[
			{"id":"tx-1","this_account":{"id":"acc-1"},
			 "other_account":{"holder":{"name":"Coffee Shop"}},
			 "details":{"type":"DEBIT","description":"Flat white","value":{"amount":-4.5,"currency":"USD"}}}
		]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, false)
	txs, source, err := client.Transactions(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, provider.SourceLive, source)
	require.Len(t, txs, 1)
	assert.Equal(t, "tx-1", txs[0].ID)
	assert.Equal(t, "Coffee Shop", txs[0].OtherAccount.Holder.Name)
	assert.InDelta(t, -4.5, txs[0].Details.Value.Amount, 1e-9)
}

func TestTransactionsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, true)
	txs, source, err := client.Transactions(context.Background(), "acc-7")
	require.NoError(t, err)

	assert.Equal(t, provider.SourceFallback, source)
	require.Len(t, txs, 1)
	assert.Equal(t, "acc-7", txs[0].ThisAccount.ID, "fallback echoes the requested account")
	assert.Equal(t, "Grocery Store", txs[0].OtherAccount.Holder.Name)
	assert.Equal(t, "2024-01-15T12:00:00Z", txs[0].Details.Posted)
}
