// Package store is the single authoritative container for all financial
// state the application shows: balance, transactions, accounts, cards,
// session flags and one tagged slice per remote data domain.
//
// All mutation goes through store methods under one mutex; readers get
// copies. Fetch actions are asynchronous-friendly: they take a context,
// deduplicate identical concurrent calls, and use per-domain generation
// counters so only the most recently initiated fetch commits its result.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bankline/bankline/pkg/cache"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/eventbus"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
	"github.com/bankline/bankline/pkg/provider"
	"github.com/bankline/bankline/pkg/provider/payment"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// ErrDuplicateTransaction is returned by AddTransaction when duplicate-ID
// rejection is enabled and the ID is already present.
var ErrDuplicateTransaction = fmt.Errorf("duplicate transaction id")

// Theme is the UI theme flag.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Providers bundles the remote data providers the store fetches from.
type Providers struct {
	Rates     provider.RatesProvider
	Bank      provider.BankProvider
	Crypto    provider.CryptoProvider
	Stocks    provider.StockProvider
	ETFs      provider.ETFProvider
	Payment   payment.Provider
	Assistant provider.AssistantResponder
}

// Config carries store policy knobs.
type Config struct {
	BaseCurrency       money.Code
	CryptoCoins        []string
	RatesCacheTTL      time.Duration
	RejectDuplicateIDs bool
	PaymentPollEvery   time.Duration
	PaymentPollTimeout time.Duration
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = money.DefaultCode
	}
	if len(cfg.CryptoCoins) == 0 {
		cfg.CryptoCoins = []string{"bitcoin", "ethereum"}
	}
	if cfg.RatesCacheTTL == 0 {
		cfg.RatesCacheTTL = 15 * time.Minute
	}
	if cfg.PaymentPollEvery == 0 {
		cfg.PaymentPollEvery = 250 * time.Millisecond
	}
	if cfg.PaymentPollTimeout == 0 {
		cfg.PaymentPollTimeout = 10 * time.Second
	}
	return cfg
}

// Store holds all application-visible financial state.
type Store struct {
	mu sync.RWMutex

	providers  Providers
	ratesCache cache.RatesCache
	bus        eventbus.Bus
	logger     *slog.Logger
	cfg        Config
	validate   *validator.Validate
	group      singleflight.Group

	balance       float64
	transactions  []domain.Transaction
	accounts      []domain.Account
	cards         []domain.Card
	user          *domain.User
	authenticated bool
	theme         Theme

	rates     slice[exchange.Rates]
	bankAccts slice[[]domain.BankAccount]
	bankTxs   slice[[]domain.BankTransaction]
	crypto    slice[[]domain.CryptoCoin]
	stocks    slice[[]domain.Stock]
	etfs      slice[[]domain.ETF]
	payment   slice[payment.Receipt]
	assistant slice[domain.AssistantReply]
}

// seedTransactions is the deterministic initial transaction list shown
// before any remote data arrives.
func seedTransactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: "1", Description: "Starbucks Coffee", Amount: 5.75, Date: "Today", Category: "Food", Direction: domain.Debit},
		{ID: "2", Description: "Salary Deposit", Amount: 3500.00, Date: "Yesterday", Category: "Income", Direction: domain.Credit},
		{ID: "3", Description: "Uber Ride", Amount: 12.50, Date: "2 days ago", Category: "Transportation", Direction: domain.Debit},
		{ID: "4", Description: "Amazon Purchase", Amount: 89.99, Date: "3 days ago", Category: "Shopping", Direction: domain.Debit},
		{ID: "5", Description: "Electric Bill", Amount: 120.00, Date: "4 days ago", Category: "Bills", Direction: domain.Debit},
	}
}

const seedBalance = 12450.25

// New creates a store seeded with the initial balance and transactions.
// ratesCache and bus may be nil.
func New(providers Providers, ratesCache cache.RatesCache, bus eventbus.Bus, cfg Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		providers:    providers,
		ratesCache:   ratesCache,
		bus:          bus,
		logger:       logger.With("component", "store"),
		cfg:          cfg.withDefaults(),
		validate:     validator.New(),
		balance:      seedBalance,
		transactions: seedTransactions(),
		theme:        ThemeLight,
	}
	s.rates.status = StatusIdle
	s.bankAccts.status = StatusIdle
	s.bankTxs.status = StatusIdle
	s.crypto.status = StatusIdle
	s.stocks.status = StatusIdle
	s.etfs.status = StatusIdle
	s.payment.status = StatusIdle
	s.assistant.status = StatusIdle
	return s
}

func (s *Store) emit(ctx context.Context, event eventbus.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Warn("failed to emit event", "type", event.Type(), "error", err)
	}
}

// AddTransaction validates the transaction and updates the transaction
// list and the balance in one state transition: credits add the amount,
// debits subtract it. There is no observable intermediate state where only
// one of the two changed.
func (s *Store) AddTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.cfg.RejectDuplicateIDs {
		for _, existing := range s.transactions {
			if existing.ID == tx.ID {
				s.mu.Unlock()
				return fmt.Errorf("%w: %s", ErrDuplicateTransaction, tx.ID)
			}
		}
	}
	s.transactions = append([]domain.Transaction{tx}, s.transactions...)
	s.balance += tx.Signed()
	balance := s.balance
	s.mu.Unlock()

	s.logger.Info("transaction added",
		"id", tx.ID, "direction", tx.Direction, "amount", tx.Amount, "balance", balance)
	s.emit(ctx, TransactionAdded{Transaction: tx, Balance: balance})
	return nil
}

// UpdateBalance replaces the balance unconditionally.
func (s *Store) UpdateBalance(ctx context.Context, amount float64) {
	s.mu.Lock()
	s.balance = amount
	s.mu.Unlock()
	s.emit(ctx, BalanceUpdated{Balance: amount})
}

// AddAccount appends an account.
func (s *Store) AddAccount(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, account)
}

// AddCard appends a card.
func (s *Store) AddCard(card domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, card)
}

// SetUser sets the signed-in profile.
func (s *Store) SetUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
}

// SetAuthenticated toggles the session flag. There is no token and no
// expiry behind it.
func (s *Store) SetAuthenticated(ctx context.Context, authenticated bool) {
	s.mu.Lock()
	s.authenticated = authenticated
	s.mu.Unlock()
	s.emit(ctx, SessionChanged{Authenticated: authenticated})
}

// ToggleTheme flips between light and dark. Not persisted.
func (s *Store) ToggleTheme(ctx context.Context) Theme {
	s.mu.Lock()
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	theme := s.theme
	s.mu.Unlock()
	s.emit(ctx, ThemeChanged{Theme: theme})
	return theme
}

// Balance returns the current balance.
func (s *Store) Balance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance
}

// Transactions returns a copy of the transaction list, newest first.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Accounts returns a copy of the account list.
func (s *Store) Accounts() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Cards returns a copy of the card list.
func (s *Store) Cards() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// User returns the signed-in profile, or nil.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated returns the session flag.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Theme returns the current theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Rates returns the exchange-rates slice.
func (s *Store) Rates() Snapshot[exchange.Rates] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates.snapshot()
}

// BankAccounts returns the bank-accounts slice.
func (s *Store) BankAccounts() Snapshot[[]domain.BankAccount] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bankAccts.snapshot()
}

// BankTransactions returns the bank-transactions slice.
func (s *Store) BankTransactions() Snapshot[[]domain.BankTransaction] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bankTxs.snapshot()
}

// Crypto returns the crypto-market slice.
func (s *Store) Crypto() Snapshot[[]domain.CryptoCoin] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.crypto.snapshot()
}

// Stocks returns the stocks slice.
func (s *Store) Stocks() Snapshot[[]domain.Stock] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stocks.snapshot()
}

// ETFs returns the ETFs slice.
func (s *Store) ETFs() Snapshot[[]domain.ETF] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.etfs.snapshot()
}

// Payment returns the payment slice.
func (s *Store) Payment() Snapshot[payment.Receipt] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payment.snapshot()
}

// Assistant returns the assistant slice.
func (s *Store) Assistant() Snapshot[domain.AssistantReply] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assistant.snapshot()
}
