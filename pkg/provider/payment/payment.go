// Package payment defines the payment-provider contract used by the
// transfer flow.
package payment

import (
	"context"
	"errors"
	"time"

	"github.com/bankline/bankline/pkg/money"
	"github.com/google/uuid"
)

// Status is the lifecycle state of a payment.
type Status string

const (
	Pending   Status = "pending"
	Completed Status = "completed"
	Failed    Status = "failed"
)

// ErrPaymentNotFound is returned when a payment id is unknown to the
// provider.
var ErrPaymentNotFound = errors.New("payment not found")

// InitiateParams carries everything a provider needs to start a payment.
type InitiateParams struct {
	PaymentID   uuid.UUID
	Amount      float64
	Currency    money.Code
	Recipient   string
	Description string
}

// Receipt is the provider's record of an initiated payment.
type Receipt struct {
	PaymentID uuid.UUID `json:"payment_id"`
	Status    Status    `json:"status"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider initiates payments and reports their status. Completion is
// asynchronous; callers poll GetStatus until the payment settles.
type Provider interface {
	Initiate(ctx context.Context, params *InitiateParams) (*Receipt, error)
	GetStatus(ctx context.Context, paymentID uuid.UUID) (Status, error)
}
