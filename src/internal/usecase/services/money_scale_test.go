package services_test

import (
	"context"
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallRecordService_SubCentSumNeverSettles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	caller := f.account(t, "0.01", domain.RoleClient)
	interpreter := f.account(t, "0", domain.RoleInterpreter)
	call := openCall(t, f, caller, interpreter, "0.01", "0")

	_, err := f.calls.Update(ctx, call.ID, domain.CallRecordPatch{
		Sum:     decPtr("0.005"),
		EndCall: ptr(true),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	stored, err := f.calls.Get(ctx, call.ID)
	require.NoError(t, err)
	assert.False(t, stored.Settled())
	assert.True(t, dec("0.01").Equal(stored.Sum))
	assert.True(t, dec("0.01").Equal(f.balance(t, caller.ID)))
	assert.True(t, f.balance(t, interpreter.ID).IsZero())
	assert.Empty(t, f.entries(t, caller.ID))
	assert.Empty(t, f.entries(t, interpreter.ID))

	_, err = f.calls.Update(ctx, call.ID, domain.CallRecordPatch{Commission: decPtr("0.001")})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCallRecordService_CreateRejectsSubCentAmounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	caller := f.account(t, "10.00", domain.RoleClient)

	_, err := f.calls.Create(ctx, domain.NewCallRecord{
		CallerID: caller.ID,
		Sum:      dec("0.005"),
		EndCall:  true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.calls.Create(ctx, domain.NewCallRecord{
		CallerID:   caller.ID,
		Sum:        dec("1.00"),
		Commission: decPtr("0.105"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.True(t, dec("10.00").Equal(f.balance(t, caller.ID)))
	assert.Empty(t, f.entries(t, caller.ID))
}

func TestWithdrawalService_RequestRejectsSubCentSum(t *testing.T) {
	f := newFixture(t)
	interpreter := f.account(t, "1.00", domain.RoleInterpreter)

	_, err := f.withdrawals.Request(context.Background(), interpreter.ID, dec("0.995"), payout)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	all, err := f.withdrawals.List(context.Background(), domain.WithdrawalFilter{UserID: interpreter.ID})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDepositService_CreateRejectsSubCentSum(t *testing.T) {
	f := newFixture(t)
	client := f.account(t, "0", domain.RoleClient)

	_, err := f.deposits.Create(context.Background(), client.ID, dec("10.001"), funding)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAccountService_RejectsSubCentAmounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.account(t, "5.00", domain.RoleClient)
	admin := f.admin(t)

	_, err := f.accounts.AssignDebt(ctx, admin.ID, client.ID, dec("0.015"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.accounts.AdjustBalance(ctx, admin.ID, client.ID, dec("7.777"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.accounts.Refund(ctx, admin.ID, client.ID, dec("0.001"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	account, err := f.accounts.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, dec("5.00").Equal(account.Balance))
	assert.True(t, account.Debt.IsZero())
	assert.False(t, account.IsDebtor)
	assert.Empty(t, f.entries(t, client.ID))
}

func TestTransactionService_RecordRejectsSubCentAmount(t *testing.T) {
	f := newFixture(t)
	account := f.account(t, "0.01", domain.RoleClient)

	_, err := f.ledger.Record(context.Background(), account, domain.LedgerEntry{
		Type:   domain.TransactionTypeCallPayment,
		Amount: dec("0.005"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Empty(t, f.entries(t, account.ID))
}
