// Package stripepayment implements the payment provider on the Stripe
// API using PaymentIntents.
package stripepayment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/bankline/bankline/pkg/provider/payment"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
)

// Provider implements payment.Provider using the Stripe API.
type Provider struct {
	client *stripe.Client
	logger *slog.Logger

	mu      sync.Mutex
	intents map[uuid.UUID]string // payment id -> stripe intent id
}

// New creates a Stripe-backed payment provider with the given API key.
func New(apiKey string, logger *slog.Logger) *Provider {
	return &Provider{
		client:  stripe.NewClient(apiKey),
		logger:  logger.With("provider", "stripe"),
		intents: make(map[uuid.UUID]string),
	}
}

// Initiate creates a PaymentIntent for the transfer amount. Amounts are
// converted to the smallest currency unit as Stripe requires.
func (p *Provider) Initiate(ctx context.Context, params *payment.InitiateParams) (*payment.Receipt, error) {
	intentParams := &stripe.PaymentIntentCreateParams{
		Amount:      stripe.Int64(int64(math.Round(params.Amount * 100))),
		Currency:    stripe.String(strings.ToLower(params.Currency.String())),
		Description: stripe.String(params.Description),
		Metadata: map[string]string{
			"payment_id": params.PaymentID.String(),
			"recipient":  params.Recipient,
		},
	}
	pi, err := p.client.V1PaymentIntents.Create(ctx, intentParams)
	if err != nil {
		p.logger.Error("failed to create payment intent", "payment_id", params.PaymentID, "error", err)
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	p.mu.Lock()
	p.intents[params.PaymentID] = pi.ID
	p.mu.Unlock()

	return &payment.Receipt{
		PaymentID: params.PaymentID,
		Status:    mapStatus(pi.Status),
		Provider:  "stripe",
		CreatedAt: time.Now(),
	}, nil
}

// GetStatus retrieves the PaymentIntent status for a payment.
func (p *Provider) GetStatus(ctx context.Context, paymentID uuid.UUID) (payment.Status, error) {
	p.mu.Lock()
	intentID, ok := p.intents[paymentID]
	p.mu.Unlock()
	if !ok {
		return "", payment.ErrPaymentNotFound
	}

	pi, err := p.client.V1PaymentIntents.Retrieve(ctx, intentID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get payment intent: %w", err)
	}
	return mapStatus(pi.Status), nil
}

func mapStatus(status stripe.PaymentIntentStatus) payment.Status {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return payment.Completed
	case stripe.PaymentIntentStatusProcessing,
		stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresAction:
		return payment.Pending
	default:
		return payment.Failed
	}
}

var _ payment.Provider = (*Provider)(nil)
