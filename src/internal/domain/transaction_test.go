package domain_test

import (
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceAfter(t *testing.T) {
	before := decimal.RequireFromString("100.00")
	amount := decimal.RequireFromString("40.00")

	tests := []struct {
		txType domain.TransactionType
		want   string
	}{
		{domain.TransactionTypeDeposit, "140"},
		{domain.TransactionTypeCallEarning, "140"},
		{domain.TransactionTypeRefund, "140"},
		{domain.TransactionTypeWithdrawal, "60"},
		{domain.TransactionTypeCallPayment, "60"},
		{domain.TransactionTypeCommission, "60"},
		{domain.TransactionTypeAdjustment, "40"},
		{domain.TransactionTypeDebtPayment, "100"},
	}

	for _, tt := range tests {
		t.Run(string(tt.txType), func(t *testing.T) {
			got, err := domain.BalanceAfter(before, amount, tt.txType)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestBalanceAfter_RejectsNonPositiveAmounts(t *testing.T) {
	before := decimal.NewFromInt(10)

	_, err := domain.BalanceAfter(before, decimal.Zero, domain.TransactionTypeDeposit)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = domain.BalanceAfter(before, decimal.NewFromInt(-1), domain.TransactionTypeCallPayment)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = domain.BalanceAfter(before, decimal.NewFromInt(-1), domain.TransactionTypeAdjustment)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = domain.BalanceAfter(before, decimal.NewFromInt(5), domain.TransactionType("BONUS"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestBalanceAfter_AdjustmentToZero(t *testing.T) {
	got, err := domain.BalanceAfter(decimal.NewFromInt(75), decimal.Zero, domain.TransactionTypeAdjustment)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
