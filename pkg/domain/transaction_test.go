package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bankline/bankline/pkg/domain"
)

func TestTransactionValidate(t *testing.T) {
	valid := domain.Transaction{
		ID:          "tx-1",
		Description: "Starbucks Coffee",
		Amount:      5.75,
		Date:        "Today",
		Category:    "Food",
		Direction:   domain.Debit,
	}

	tests := []struct {
		name    string
		mutate  func(tx *domain.Transaction)
		wantErr error
	}{
		{"valid", func(*domain.Transaction) {}, nil},
		{"zero amount is allowed", func(tx *domain.Transaction) { tx.Amount = 0 }, nil},
		{"missing id", func(tx *domain.Transaction) { tx.ID = "" }, domain.ErrMissingID},
		{"unknown direction", func(tx *domain.Transaction) { tx.Direction = "withdrawal" }, domain.ErrInvalidDirection},
		{"empty direction", func(tx *domain.Transaction) { tx.Direction = "" }, domain.ErrInvalidDirection},
		{"negative amount", func(tx *domain.Transaction) { tx.Amount = -5.75 }, domain.ErrNegativeAmount},
		{"NaN amount", func(tx *domain.Transaction) { tx.Amount = math.NaN() }, domain.ErrNotFiniteAmount},
		{"infinite amount", func(tx *domain.Transaction) { tx.Amount = math.Inf(1) }, domain.ErrNotFiniteAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTransactionSigned(t *testing.T) {
	credit := domain.Transaction{Amount: 3500, Direction: domain.Credit}
	debit := domain.Transaction{Amount: 120, Direction: domain.Debit}

	assert.Equal(t, 3500.0, credit.Signed())
	assert.Equal(t, -120.0, debit.Signed())
}

func TestDirectionIsValid(t *testing.T) {
	assert.True(t, domain.Credit.IsValid())
	assert.True(t, domain.Debit.IsValid())
	assert.False(t, domain.Direction("").IsValid())
	assert.False(t, domain.Direction("CREDIT").IsValid())
}
