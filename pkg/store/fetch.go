package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
	"github.com/bankline/bankline/pkg/provider"
	"github.com/bankline/bankline/pkg/provider/payment"
	"github.com/google/uuid"
)

// Display messages per domain. The wrapped cause is kept on the slice for
// diagnostics; only these strings are shown to users.
const (
	msgRatesFailed     = "Failed to fetch exchange rates"
	msgAccountsFailed  = "Failed to fetch bank accounts"
	msgTxsFailed       = "Failed to fetch transactions"
	msgCryptoFailed    = "Failed to fetch crypto prices"
	msgStocksFailed    = "Failed to fetch stocks"
	msgETFsFailed      = "Failed to fetch ETFs"
	msgPaymentFailed   = "Payment failed"
	msgAssistantFailed = "Failed to get assistant response"
)

type fetched[T any] struct {
	data   T
	source provider.Source
}

// runFetch drives one domain slice through Loading and into Loaded or
// Failed. Identical concurrent calls (same key) share a single provider
// call; the generation counter guarantees that when overlapping fetches
// race, only the most recently initiated one commits.
func runFetch[T any](
	ctx context.Context,
	s *Store,
	name, key, failMsg string,
	sl *slice[T],
	call func(context.Context) (T, provider.Source, error),
) error {
	s.mu.Lock()
	sl.gen++
	gen := sl.gen
	sl.status = StatusLoading
	sl.errMsg = ""
	sl.cause = nil
	s.mu.Unlock()
	s.emit(ctx, SliceChanged{Domain: name, Status: StatusLoading})

	v, err, shared := s.group.Do(key, func() (any, error) {
		data, source, err := call(ctx)
		if err != nil {
			return nil, err
		}
		return fetched[T]{data: data, source: source}, nil
	})
	if err == nil {
		err = ctx.Err()
	}
	if shared {
		s.logger.Debug("deduplicated concurrent fetch", "domain", name)
	}

	s.mu.Lock()
	if sl.gen != gen {
		// A newer fetch was initiated while this one was in flight; its
		// outcome owns the slice now.
		s.mu.Unlock()
		s.logger.Debug("discarding superseded fetch result", "domain", name)
		return err
	}
	if err != nil {
		sl.status = StatusFailed
		sl.errMsg = failMsg
		sl.cause = err
		s.mu.Unlock()
		s.logger.Warn("fetch failed", "domain", name, "error", err)
		s.emit(ctx, SliceChanged{Domain: name, Status: StatusFailed})
		return fmt.Errorf("%s: %w", name, err)
	}
	result := v.(fetched[T])
	sl.status = StatusLoaded
	sl.data = result.data
	sl.hasData = true
	sl.source = result.source
	s.mu.Unlock()
	s.logger.Info("fetch completed", "domain", name, "source", result.source)
	s.emit(ctx, SliceChanged{Domain: name, Status: StatusLoaded})
	return nil
}

// FetchRates refreshes the exchange-rate slice, consulting the rates
// cache before the provider. Live results are written back to the cache.
func (s *Store) FetchRates(ctx context.Context) error {
	return runFetch(ctx, s, "rates", "rates", msgRatesFailed, &s.rates,
		func(ctx context.Context) (exchange.Rates, provider.Source, error) {
			base := s.cfg.BaseCurrency
			if s.ratesCache != nil {
				if cached, err := s.ratesCache.Get(ctx, base); err == nil && cached != nil {
					return *cached, provider.SourceCache, nil
				}
			}
			rates, source, err := s.providers.Rates.Latest(ctx, base)
			if err != nil {
				return exchange.Rates{}, "", err
			}
			if s.ratesCache != nil && source == provider.SourceLive {
				if cerr := s.ratesCache.Set(ctx, &rates, s.cfg.RatesCacheTTL); cerr != nil {
					s.logger.Warn("failed to cache exchange rates", "error", cerr)
				}
			}
			return rates, source, nil
		})
}

// FetchBankAccounts refreshes the bank-accounts slice.
func (s *Store) FetchBankAccounts(ctx context.Context) error {
	return runFetch(ctx, s, "bank_accounts", "bank_accounts", msgAccountsFailed, &s.bankAccts,
		func(ctx context.Context) ([]domain.BankAccount, provider.Source, error) {
			return s.providers.Bank.Accounts(ctx)
		})
}

// FetchBankTransactions refreshes the bank-transactions slice for one
// account.
func (s *Store) FetchBankTransactions(ctx context.Context, accountID string) error {
	key := "bank_transactions:" + accountID
	return runFetch(ctx, s, "bank_transactions", key, msgTxsFailed, &s.bankTxs,
		func(ctx context.Context) ([]domain.BankTransaction, provider.Source, error) {
			return s.providers.Bank.Transactions(ctx, accountID)
		})
}

// FetchCrypto refreshes the crypto-market slice for the configured coins.
func (s *Store) FetchCrypto(ctx context.Context) error {
	return runFetch(ctx, s, "crypto", "crypto", msgCryptoFailed, &s.crypto,
		func(ctx context.Context) ([]domain.CryptoCoin, provider.Source, error) {
			return s.providers.Crypto.Markets(ctx, s.cfg.CryptoCoins)
		})
}

// FetchStocks refreshes the stocks slice.
func (s *Store) FetchStocks(ctx context.Context) error {
	return runFetch(ctx, s, "stocks", "stocks", msgStocksFailed, &s.stocks,
		func(ctx context.Context) ([]domain.Stock, provider.Source, error) {
			return s.providers.Stocks.Stocks(ctx)
		})
}

// FetchETFs refreshes the ETFs slice.
func (s *Store) FetchETFs(ctx context.Context) error {
	return runFetch(ctx, s, "etfs", "etfs", msgETFsFailed, &s.etfs,
		func(ctx context.Context) ([]domain.ETF, provider.Source, error) {
			return s.providers.ETFs.ETFs(ctx)
		})
}

// AskAssistant sends a message to the financial assistant and records the
// reply in the assistant slice. The responder gets a copy of the current
// transaction list to ground its answer in.
func (s *Store) AskAssistant(ctx context.Context, message string) error {
	key := "assistant:" + message
	return runFetch(ctx, s, "assistant", key, msgAssistantFailed, &s.assistant,
		func(ctx context.Context) (domain.AssistantReply, provider.Source, error) {
			reply, err := s.providers.Assistant.Respond(ctx, message, s.Transactions())
			if err != nil {
				return domain.AssistantReply{}, "", err
			}
			return reply, provider.SourceLive, nil
		})
}

// TransferRequest describes an outgoing transfer.
type TransferRequest struct {
	Recipient   string     `json:"recipient" validate:"required"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	Currency    money.Code `json:"currency"`
}

// Transfer initiates a payment via the payment provider, polls until it
// settles, and on completion records the expense transaction and the
// balance change atomically. The payment slice tracks the flow.
func (s *Store) Transfer(ctx context.Context, req TransferRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	if req.Currency == "" {
		req.Currency = s.cfg.BaseCurrency
	}
	paymentID := uuid.New()

	key := "payment:" + paymentID.String()
	return runFetch(ctx, s, "payment", key, msgPaymentFailed, &s.payment,
		func(ctx context.Context) (payment.Receipt, provider.Source, error) {
			receipt, err := s.providers.Payment.Initiate(ctx, &payment.InitiateParams{
				PaymentID:   paymentID,
				Amount:      req.Amount,
				Currency:    req.Currency,
				Recipient:   req.Recipient,
				Description: req.Description,
			})
			if err != nil {
				return payment.Receipt{}, "", err
			}

			status, err := s.awaitPayment(ctx, paymentID, receipt.Status)
			if err != nil {
				return payment.Receipt{}, "", err
			}
			if status != payment.Completed {
				return payment.Receipt{}, "", fmt.Errorf("payment %s ended in status %s", paymentID, status)
			}

			tx := domain.Transaction{
				ID:          paymentID.String(),
				Description: fmt.Sprintf("Transfer to %s: %s", req.Recipient, req.Description),
				Amount:      req.Amount,
				Date:        time.Now().Format(time.RFC3339),
				Category:    "Transfer",
				Direction:   domain.Debit,
			}
			if err := s.AddTransaction(ctx, tx); err != nil {
				return payment.Receipt{}, "", err
			}

			settled := *receipt
			settled.Status = payment.Completed
			return settled, provider.SourceLive, nil
		})
}

// awaitPayment polls the payment provider until the payment leaves the
// pending state or the poll timeout elapses.
func (s *Store) awaitPayment(ctx context.Context, id uuid.UUID, status payment.Status) (payment.Status, error) {
	if status != payment.Pending {
		return status, nil
	}
	deadline := time.NewTimer(s.cfg.PaymentPollTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(s.cfg.PaymentPollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", fmt.Errorf("payment %s still pending after %s", id, s.cfg.PaymentPollTimeout)
		case <-ticker.C:
			current, err := s.providers.Payment.GetStatus(ctx, id)
			if err != nil {
				return "", err
			}
			if current != payment.Pending {
				return current, nil
			}
		}
	}
}
