package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracache "github.com/bankline/bankline/infra/cache"
	infraeventbus "github.com/bankline/bankline/infra/eventbus"
	"github.com/bankline/bankline/pkg/cache"
	"github.com/bankline/bankline/pkg/domain"
	"github.com/bankline/bankline/pkg/exchange"
	"github.com/bankline/bankline/pkg/money"
	"github.com/bankline/bankline/pkg/provider"
	"github.com/bankline/bankline/pkg/provider/payment"
	"github.com/bankline/bankline/pkg/store"
)

type stubRates struct {
	mu    sync.Mutex
	calls int
	rates exchange.Rates
	src   provider.Source
	err   error
}

func (s *stubRates) Latest(context.Context, money.Code) (exchange.Rates, provider.Source, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return exchange.Rates{}, "", s.err
	}
	return s.rates, s.src, nil
}

type stubBank struct {
	accounts []domain.BankAccount
	txs      map[string][]domain.BankTransaction
	block    chan struct{} // Transactions waits on this when set
	err      error
}

func (s *stubBank) Accounts(context.Context) ([]domain.BankAccount, provider.Source, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.accounts, provider.SourceLive, nil
}

func (s *stubBank) Transactions(_ context.Context, accountID string) ([]domain.BankTransaction, provider.Source, error) {
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, "", s.err
	}
	return s.txs[accountID], provider.SourceLive, nil
}

type stubStocks struct {
	mu      sync.Mutex
	calls   int
	stocks  []domain.Stock
	err     error
	block   chan struct{} // Stocks waits on this when set
	entered chan struct{} // closed once the first call is in flight
}

func (s *stubStocks) Stocks(context.Context) ([]domain.Stock, provider.Source, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	err := s.err
	s.mu.Unlock()
	if first && s.entered != nil {
		close(s.entered)
	}
	if s.block != nil {
		<-s.block
	}
	if err != nil {
		return nil, "", err
	}
	return s.stocks, provider.SourceLive, nil
}

func (s *stubStocks) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

type stubAssistant struct {
	lastTxs []domain.Transaction
	reply   domain.AssistantReply
	err     error
}

func (s *stubAssistant) Respond(_ context.Context, _ string, txs []domain.Transaction) (domain.AssistantReply, error) {
	s.lastTxs = txs
	if s.err != nil {
		return domain.AssistantReply{}, s.err
	}
	return s.reply, nil
}

type stubPayment struct {
	mu       sync.Mutex
	settled  payment.Status
	initErr  error
	statuses map[uuid.UUID]int // poll countdown per payment
}

func (s *stubPayment) Initiate(_ context.Context, params *payment.InitiateParams) (*payment.Receipt, error) {
	if s.initErr != nil {
		return nil, s.initErr
	}
	s.mu.Lock()
	if s.statuses == nil {
		s.statuses = make(map[uuid.UUID]int)
	}
	s.statuses[params.PaymentID] = 2
	s.mu.Unlock()
	return &payment.Receipt{
		PaymentID: params.PaymentID,
		Status:    payment.Pending,
		Provider:  "stub",
		CreatedAt: time.Now(),
	}, nil
}

func (s *stubPayment) GetStatus(_ context.Context, paymentID uuid.UUID) (payment.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining, ok := s.statuses[paymentID]
	if !ok {
		return "", payment.ErrPaymentNotFound
	}
	if remaining > 0 {
		s.statuses[paymentID] = remaining - 1
		return payment.Pending, nil
	}
	return s.settled, nil
}

func usdRates() exchange.Rates {
	return exchange.Rates{
		Base:  money.USD,
		Rates: map[money.Code]float64{money.EUR: 0.9},
		Date:  "2024-01-15",
	}
}

func sliceEvents(bus *infraeventbus.MemoryBus, domainName string) []store.SliceChanged {
	var out []store.SliceChanged
	for _, event := range bus.Published() {
		if sc, ok := event.(store.SliceChanged); ok && sc.Domain == domainName {
			out = append(out, sc)
		}
	}
	return out
}

func TestFetchRatesLive(t *testing.T) {
	rates := &stubRates{rates: usdRates(), src: provider.SourceLive}
	bus := infraeventbus.NewMemoryBus(nil)
	s := store.New(store.Providers{Rates: rates}, nil, bus, store.Config{}, nil)

	require.NoError(t, s.FetchRates(context.Background()))

	snap := s.Rates()
	assert.Equal(t, store.StatusLoaded, snap.Status)
	assert.True(t, snap.HasData)
	assert.Equal(t, provider.SourceLive, snap.Source)
	assert.InDelta(t, 0.9, snap.Data.Rates[money.EUR], 1e-9)
	assert.Empty(t, snap.Err)

	events := sliceEvents(bus, "rates")
	require.Len(t, events, 2)
	assert.Equal(t, store.StatusLoading, events[0].Status)
	assert.Equal(t, store.StatusLoaded, events[1].Status)
}

func TestFetchRatesCacheHit(t *testing.T) {
	ratesCache := infracache.NewMemoryRatesCache()
	cached := usdRates()
	require.NoError(t, ratesCache.Set(context.Background(), &cached, time.Minute))

	rates := &stubRates{err: errors.New("should not be called")}
	s := store.New(store.Providers{Rates: rates}, ratesCache, nil, store.Config{}, nil)

	require.NoError(t, s.FetchRates(context.Background()))

	snap := s.Rates()
	assert.Equal(t, store.StatusLoaded, snap.Status)
	assert.Equal(t, provider.SourceCache, snap.Source)
	assert.Zero(t, rates.calls)
}

func TestFetchRatesCachesLiveResult(t *testing.T) {
	ratesCache := infracache.NewMemoryRatesCache()
	rates := &stubRates{rates: usdRates(), src: provider.SourceLive}
	s := store.New(store.Providers{Rates: rates}, ratesCache, nil, store.Config{}, nil)

	require.NoError(t, s.FetchRates(context.Background()))

	stored, err := ratesCache.Get(context.Background(), money.USD)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, stored.Rates[money.EUR], 1e-9)
}

func TestFetchRatesFallbackNotCached(t *testing.T) {
	ratesCache := infracache.NewMemoryRatesCache()
	rates := &stubRates{rates: usdRates(), src: provider.SourceFallback}
	s := store.New(store.Providers{Rates: rates}, ratesCache, nil, store.Config{}, nil)

	require.NoError(t, s.FetchRates(context.Background()))

	assert.Equal(t, provider.SourceFallback, s.Rates().Source)
	_, err := ratesCache.Get(context.Background(), money.USD)
	assert.ErrorIs(t, err, cache.ErrCacheMiss, "fallback results stay out of the cache")
}

func TestFetchStocksFailureKeepsStaleData(t *testing.T) {
	stocks := &stubStocks{stocks: []domain.Stock{{Symbol: "AAPL", CurrentPrice: 150.25}}}
	bus := infraeventbus.NewMemoryBus(nil)
	s := store.New(store.Providers{Stocks: stocks}, nil, bus, store.Config{}, nil)

	require.NoError(t, s.FetchStocks(context.Background()))
	require.True(t, s.Stocks().HasData)

	stocks.fail(errors.New("exchange is down"))
	err := s.FetchStocks(context.Background())
	require.Error(t, err)

	snap := s.Stocks()
	assert.Equal(t, store.StatusFailed, snap.Status)
	assert.True(t, snap.HasData, "previously loaded data survives the failure")
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "AAPL", snap.Data[0].Symbol)
	assert.Equal(t, "Failed to fetch stocks", snap.Err)
	assert.ErrorContains(t, snap.Cause, "exchange is down")
}

func TestFetchBankAccountsFailure(t *testing.T) {
	bank := &stubBank{err: errors.New("connection refused")}
	s := store.New(store.Providers{Bank: bank}, nil, nil, store.Config{}, nil)

	err := s.FetchBankAccounts(context.Background())
	require.Error(t, err)

	snap := s.BankAccounts()
	assert.Equal(t, store.StatusFailed, snap.Status)
	assert.False(t, snap.HasData)
	assert.Equal(t, "Failed to fetch bank accounts", snap.Err)
}

func TestSupersededFetchIsDiscarded(t *testing.T) {
	block := make(chan struct{})
	bank := &stubBank{
		block: block,
		txs: map[string][]domain.BankTransaction{
			"slow": {{ID: "slow-tx"}},
			"fast": {{ID: "fast-tx"}},
		},
	}
	s := store.New(store.Providers{Bank: bank}, nil, nil, store.Config{}, nil)

	done := make(chan error, 1)
	go func() {
		done <- s.FetchBankTransactions(context.Background(), "slow")
	}()

	// Wait until the slow fetch is in flight, then let a second fetch
	// start and race it.
	require.Eventually(t, func() bool {
		return s.BankTransactions().Status == store.StatusLoading
	}, time.Second, time.Millisecond)

	done2 := make(chan error, 1)
	go func() {
		done2 <- s.FetchBankTransactions(context.Background(), "fast")
	}()
	time.Sleep(10 * time.Millisecond)
	close(block)

	require.NoError(t, <-done)
	require.NoError(t, <-done2)

	snap := s.BankTransactions()
	assert.Equal(t, store.StatusLoaded, snap.Status)
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "fast-tx", snap.Data[0].ID, "most recently initiated fetch wins")
}

func TestConcurrentIdenticalFetchesShareOneCall(t *testing.T) {
	stocks := &stubStocks{
		stocks:  []domain.Stock{{Symbol: "AAPL"}},
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	s := store.New(store.Providers{Stocks: stocks}, nil, nil, store.Config{}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.FetchStocks(context.Background())
	}()
	<-stocks.entered

	// The first call is blocked inside the provider; the next three must
	// join it instead of calling the provider again.
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.FetchStocks(context.Background())
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(stocks.block)
	wg.Wait()

	stocks.mu.Lock()
	calls := stocks.calls
	stocks.mu.Unlock()
	assert.Equal(t, 1, calls)
	assert.Equal(t, store.StatusLoaded, s.Stocks().Status)
}

func TestAskAssistant(t *testing.T) {
	responder := &stubAssistant{reply: domain.AssistantReply{Text: "You're doing fine."}}
	s := store.New(store.Providers{Assistant: responder}, nil, nil, store.Config{}, nil)

	require.NoError(t, s.AskAssistant(context.Background(), "how am I doing?"))

	snap := s.Assistant()
	assert.Equal(t, store.StatusLoaded, snap.Status)
	assert.Equal(t, "You're doing fine.", snap.Data.Text)
	assert.Len(t, responder.lastTxs, 5, "responder sees the transaction history")
}

func TestTransferCompletes(t *testing.T) {
	pay := &stubPayment{settled: payment.Completed}
	bus := infraeventbus.NewMemoryBus(nil)
	s := store.New(store.Providers{Payment: pay}, nil, bus, store.Config{
		PaymentPollEvery:   time.Millisecond,
		PaymentPollTimeout: time.Second,
	}, nil)

	err := s.Transfer(context.Background(), store.TransferRequest{
		Recipient:   "Jordan",
		Description: "Lunch",
		Amount:      25,
	})
	require.NoError(t, err)

	snap := s.Payment()
	assert.Equal(t, store.StatusLoaded, snap.Status)
	assert.Equal(t, payment.Completed, snap.Data.Status)

	assert.InDelta(t, 12425.25, s.Balance(), 1e-9)
	txs := s.Transactions()
	require.Len(t, txs, 6)
	assert.Equal(t, "Transfer to Jordan: Lunch", txs[0].Description)
	assert.Equal(t, "Transfer", txs[0].Category)
	assert.Equal(t, domain.Debit, txs[0].Direction)
}

func TestTransferFailure(t *testing.T) {
	pay := &stubPayment{settled: payment.Failed}
	s := store.New(store.Providers{Payment: pay}, nil, nil, store.Config{
		PaymentPollEvery:   time.Millisecond,
		PaymentPollTimeout: time.Second,
	}, nil)

	err := s.Transfer(context.Background(), store.TransferRequest{
		Recipient: "Jordan",
		Amount:    25,
	})
	require.Error(t, err)

	snap := s.Payment()
	assert.Equal(t, store.StatusFailed, snap.Status)
	assert.Equal(t, "Payment failed", snap.Err)

	assert.InDelta(t, 12450.25, s.Balance(), 1e-9, "no transaction is recorded")
	assert.Len(t, s.Transactions(), 5)
}

func TestTransferValidation(t *testing.T) {
	s := store.New(store.Providers{}, nil, nil, store.Config{}, nil)

	err := s.Transfer(context.Background(), store.TransferRequest{Amount: 25})
	assert.Error(t, err, "recipient is required")

	err = s.Transfer(context.Background(), store.TransferRequest{Recipient: "Jordan", Amount: 0})
	assert.Error(t, err, "amount must be positive")
}
