package domain_test

import (
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextWithdrawalStatus(t *testing.T) {
	tests := []struct {
		name     string
		current  domain.WithdrawalStatus
		decision domain.WithdrawalStatus
		changed  bool
		wantErr  error
	}{
		{"approve pending", domain.WithdrawalStatusPending, domain.WithdrawalStatusApproved, true, nil},
		{"reject pending", domain.WithdrawalStatusPending, domain.WithdrawalStatusRejected, true, nil},
		{"approve twice", domain.WithdrawalStatusApproved, domain.WithdrawalStatusApproved, false, nil},
		{"reject approved", domain.WithdrawalStatusApproved, domain.WithdrawalStatusRejected, false, domain.ErrConflict},
		{"approve rejected", domain.WithdrawalStatusRejected, domain.WithdrawalStatusApproved, false, domain.ErrConflict},
		{"back to pending", domain.WithdrawalStatusPending, domain.WithdrawalStatusPending, false, domain.ErrInvalidArgument},
		{"unknown decision", domain.WithdrawalStatusPending, "MAYBE", false, domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := domain.NextWithdrawalStatus(tt.current, tt.decision)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestNextDepositStatus(t *testing.T) {
	changed, err := domain.NextDepositStatus(domain.DepositStatusPending, domain.DepositStatusCompleted)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = domain.NextDepositStatus(domain.DepositStatusCompleted, domain.DepositStatusCompleted)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = domain.NextDepositStatus(domain.DepositStatusRejected, domain.DepositStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSplitDeposit(t *testing.T) {
	split := domain.SplitDeposit(decimal.NewFromInt(30), decimal.NewFromInt(50))
	assert.True(t, split.AppliedToDebt.Equal(decimal.NewFromInt(30)))
	assert.True(t, split.Remainder.IsZero())

	split = domain.SplitDeposit(decimal.NewFromInt(80), decimal.NewFromInt(50))
	assert.True(t, split.AppliedToDebt.Equal(decimal.NewFromInt(50)))
	assert.True(t, split.Remainder.Equal(decimal.NewFromInt(30)))

	split = domain.SplitDeposit(decimal.NewFromInt(80), decimal.Zero)
	assert.True(t, split.AppliedToDebt.IsZero())
	assert.True(t, split.Remainder.Equal(decimal.NewFromInt(80)))
}
