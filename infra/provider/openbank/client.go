// Package openbank fetches bank accounts and transactions from an Open
// Bank Project sandbox.
package openbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bankline/bankline/pkg/config"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/money"
	"github.com/bankline/bankline/pkg/provider"
)

// Client talks to the open-banking sandbox with DirectLogin auth. The
// sandbox is frequently unavailable without a real token, so both calls
// carry deterministic mock fallbacks (enabled by default) whose shape
// matches the live responses exactly.
type Client struct {
	baseURL        string
	token          string
	bankID         string
	httpClient     *http.Client
	logger         *slog.Logger
	enableFallback bool
	now            func() string
}

// New creates a client from config. now stamps fallback transactions and
// may be nil to use the wall clock.
func New(cfg config.OpenBank, logger *slog.Logger, now func() string) *Client {
	if now == nil {
		now = func() string { return time.Now().UTC().Format(time.RFC3339) }
	}
	return &Client{
		baseURL:        cfg.ApiUrl,
		token:          cfg.Token,
		bankID:         cfg.BankID,
		httpClient:     &http.Client{Timeout: cfg.HTTPTimeout},
		logger:         logger.With("provider", "openbank"),
		enableFallback: cfg.EnableFallback,
		now:            now,
	}
}

type accountsResponse struct {
	Accounts []domain.BankAccount `json:"accounts"`
}

type transactionsResponse struct {
	Transactions []domain.BankTransaction `json:"transactions"`
}

// Accounts fetches the user's accounts, substituting the fixed mock pair
// when the sandbox is unreachable and the fallback is enabled.
func (c *Client) Accounts(ctx context.Context) ([]domain.BankAccount, provider.Source, error) {
	endpoint := c.baseURL + "/my/accounts"
	var parsed accountsResponse
	if err := c.get(ctx, endpoint, &parsed); err != nil {
		if c.enableFallback {
			c.logger.Warn("falling back to mock bank accounts", "error", err)
			return FallbackAccounts(), provider.SourceFallback, nil
		}
		return nil, "", err
	}
	return parsed.Accounts, provider.SourceLive, nil
}

// Transactions fetches one account's transactions, substituting the fixed
// mock transaction when the sandbox is unreachable and the fallback is
// enabled.
func (c *Client) Transactions(ctx context.Context, accountID string) ([]domain.BankTransaction, provider.Source, error) {
	endpoint := fmt.Sprintf("%s/my/banks/%s/accounts/%s/transactions",
		c.baseURL, url.PathEscape(c.bankID), url.PathEscape(accountID))
	var parsed transactionsResponse
	if err := c.get(ctx, endpoint, &parsed); err != nil {
		if c.enableFallback {
			c.logger.Warn("falling back to mock bank transactions", "account_id", accountID, "error", err)
			return c.FallbackTransactions(accountID), provider.SourceFallback, nil
		}
		return nil, "", err
	}
	return parsed.Transactions, provider.SourceLive, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "DirectLogin token="+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach open-banking API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("open-banking API returned status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode open-banking response: %w", err)
	}
	return nil
}

// FallbackAccounts is the deterministic substitute account list.
func FallbackAccounts() []domain.BankAccount {
	return []domain.BankAccount{
		{
			ID:      "1",
			Label:   "Main Checking",
			Type:    "checking",
			Balance: domain.BalanceAmount{Amount: 5420.50, Currency: money.USD},
			BankID:  "bank1",
		},
		{
			ID:      "2",
			Label:   "Savings Account",
			Type:    "savings",
			Balance: domain.BalanceAmount{Amount: 12500.00, Currency: money.USD},
			BankID:  "bank1",
		},
	}
}

// FallbackTransactions is the deterministic substitute transaction list
// for an account.
func (c *Client) FallbackTransactions(accountID string) []domain.BankTransaction {
	now := c.now()
	tx := domain.BankTransaction{
		ID: "1",
		Details: domain.BankTransactionDetails{
			Type:        "DEBIT",
			Description: "Weekly groceries",
			Posted:      now,
			Completed:   now,
			NewBalance:  domain.BalanceAmount{Amount: 5420.50, Currency: money.USD},
			Value:       domain.BalanceAmount{Amount: -85.30, Currency: money.USD},
		},
	}
	tx.ThisAccount.ID = accountID
	tx.OtherAccount.Holder.Name = "Grocery Store"
	return []domain.BankTransaction{tx}
}

var _ provider.BankProvider = (*Client)(nil)
