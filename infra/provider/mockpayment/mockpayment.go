// Package mockpayment simulates a payment provider for tests and local
// development.
//
// Initiate returns a pending receipt and completes the payment
// asynchronously after a short delay; callers poll GetStatus until
// Completed comes back, the same flow a real provider's webhook-less
// polling integration would follow.
package mockpayment

import (
	"context"
	"sync"
	"time"

	"github.com/bankline/bankline/pkg/provider/payment"
	"github.com/google/uuid"
)

// Provider is the in-memory mock payment provider.
type Provider struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]payment.Status
	delay    time.Duration
}

// New creates a mock provider that settles payments after delay.
func New(delay time.Duration) *Provider {
	return &Provider{
		statuses: make(map[uuid.UUID]payment.Status),
		delay:    delay,
	}
}

// Initiate records the payment as pending and schedules its completion.
func (p *Provider) Initiate(_ context.Context, params *payment.InitiateParams) (*payment.Receipt, error) {
	p.mu.Lock()
	p.statuses[params.PaymentID] = payment.Pending
	p.mu.Unlock()

	go func(id uuid.UUID) {
		time.Sleep(p.delay)
		p.mu.Lock()
		p.statuses[id] = payment.Completed
		p.mu.Unlock()
	}(params.PaymentID)

	return &payment.Receipt{
		PaymentID: params.PaymentID,
		Status:    payment.Pending,
		Provider:  "mock",
		CreatedAt: time.Now(),
	}, nil
}

// GetStatus returns the current status of a payment.
func (p *Provider) GetStatus(_ context.Context, paymentID uuid.UUID) (payment.Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	status, ok := p.statuses[paymentID]
	if !ok {
		return "", payment.ErrPaymentNotFound
	}
	return status, nil
}

// SetStatus overrides a payment's status. Useful in tests to force a
// failure path.
func (p *Provider) SetStatus(paymentID uuid.UUID, status payment.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses[paymentID] = status
}

var _ payment.Provider = (*Provider)(nil)
