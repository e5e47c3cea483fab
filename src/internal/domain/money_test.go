package domain_test

import (
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCheckMoneyScale(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"0", true},
		{"10", true},
		{"10.5", true},
		{"10.25", true},
		{"10.250", true},
		{"0.005", false},
		{"10.251", false},
		{"-0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := domain.CheckMoneyScale("sum", decimal.RequireFromString(tt.amount))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			assert.Contains(t, err.Error(), "sum must have at most 2 decimal places")
		})
	}
}

func TestBalanceAfter_RejectsSubCentAmounts(t *testing.T) {
	before := decimal.RequireFromString("0.01")

	for _, txType := range []domain.TransactionType{
		domain.TransactionTypeCallPayment,
		domain.TransactionTypeCallEarning,
		domain.TransactionTypeAdjustment,
		domain.TransactionTypeDebtPayment,
	} {
		_, err := domain.BalanceAfter(before, decimal.RequireFromString("0.005"), txType)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, txType)
	}
}
