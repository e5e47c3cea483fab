package services_test

import (
	"context"
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.accounts.Create(ctx, domain.Account{
		FirstName: "  Soo-ah ",
		LastName:  "Park",
		Phone:     "01012345678",
		Balance:   dec("999.00"),
		IsDebtor:  true,
		Roles:     []domain.Role{domain.RoleInterpreter},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Soo-ah", created.FirstName)
	assert.True(t, created.Balance.IsZero())
	assert.True(t, created.Debt.IsZero())
	assert.False(t, created.IsDebtor)

	_, err = f.accounts.Create(ctx, domain.Account{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.accounts.Create(ctx, domain.Account{Roles: []domain.Role{"OPERATOR"}})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAccountService_AssignDebt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	interpreter := f.account(t, "40.00", domain.RoleInterpreter)
	admin := f.admin(t)

	updated, err := f.accounts.AssignDebt(ctx, admin.ID, interpreter.ID, dec("15.00"), "no-show")
	require.NoError(t, err)
	assert.True(t, updated.IsDebtor)
	assert.True(t, dec("15.00").Equal(updated.Debt))
	assert.True(t, dec("40.00").Equal(updated.Balance))

	updated, err = f.accounts.AssignDebt(ctx, admin.ID, interpreter.ID, dec("5.00"), "")
	require.NoError(t, err)
	assert.True(t, dec("20.00").Equal(updated.Debt))
	assert.Empty(t, f.entries(t, interpreter.ID))

	_, err = f.accounts.AssignDebt(ctx, interpreter.ID, interpreter.ID, dec("5.00"), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.accounts.AssignDebt(ctx, admin.ID, interpreter.ID, dec("0"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.accounts.AssignDebt(ctx, admin.ID, "missing", dec("1"), "")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestAccountService_AdjustBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.account(t, "75.50", domain.RoleClient)
	admin := f.admin(t)

	entry, err := f.accounts.AdjustBalance(ctx, admin.ID, client.ID, dec("120.00"), "manual correction")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeAdjustment, entry.Type)
	assert.True(t, dec("75.50").Equal(entry.BalanceBefore))
	assert.True(t, dec("120.00").Equal(entry.BalanceAfter))
	assert.True(t, dec("120.00").Equal(f.balance(t, client.ID)))

	entry, err = f.accounts.AdjustBalance(ctx, admin.ID, client.ID, dec("0"), "reset")
	require.NoError(t, err)
	assert.True(t, entry.BalanceAfter.IsZero())
	assert.True(t, f.balance(t, client.ID).IsZero())

	_, err = f.accounts.AdjustBalance(ctx, admin.ID, client.ID, dec("-1"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.accounts.AdjustBalance(ctx, client.ID, client.ID, dec("1000"), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.accounts.AdjustBalance(ctx, "nobody", client.ID, dec("1000"), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAccountService_Refund(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.account(t, "10.00", domain.RoleClient)
	admin := f.admin(t)

	entry, err := f.accounts.Refund(ctx, admin.ID, client.ID, dec("4.25"), "dropped call")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeRefund, entry.Type)
	assert.Equal(t, "dropped call", entry.Notes)
	assert.True(t, dec("14.25").Equal(f.balance(t, client.ID)))

	_, err = f.accounts.Refund(ctx, admin.ID, client.ID, dec("0"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.accounts.Refund(ctx, admin.ID, "missing", dec("1"), "")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, []domain.EventName{domain.EventBalanceUpdated}, f.publisher.names())
}
