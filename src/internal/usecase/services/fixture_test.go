package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/memory"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store        *memory.Store
	accountRepo  *memory.AccountRepository
	txRepo       *memory.TransactionRepository
	callRepo     *memory.CallRecordRepository
	ledger       *services.TransactionService
	accounts     *services.AccountService
	calls        *services.CallRecordService
	withdrawals  *services.WithdrawalService
	deposits     *services.DepositService
	publisher    *capturingPublisher
	commissionPc float64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithPublisher(t, &capturingPublisher{})
}

func newFixtureWithPublisher(t *testing.T, publisher domain.EventPublisher) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:        store,
		accountRepo:  memory.NewAccountRepository(store),
		txRepo:       memory.NewTransactionRepository(store),
		callRepo:     memory.NewCallRecordRepository(store),
		commissionPc: 10,
	}
	if captured, ok := publisher.(*capturingPublisher); ok {
		f.publisher = captured
	}

	f.ledger = services.NewTransactionService(f.txRepo)
	f.accounts = services.NewAccountService(f.accountRepo, store, f.ledger, publisher)
	f.calls = services.NewCallRecordService(f.callRepo, f.accountRepo, store, f.ledger, services.NewCommissionService(f.commissionPc), publisher)
	f.withdrawals = services.NewWithdrawalService(memory.NewWithdrawalRepository(store), f.accountRepo, store, f.ledger, publisher)
	f.deposits = services.NewDepositService(memory.NewDepositRepository(store), f.accountRepo, store, f.ledger, publisher)
	return f
}

func (f *fixture) account(t *testing.T, balance string, roles ...domain.Role) domain.Account {
	t.Helper()
	ctx := context.Background()

	created, err := f.accountRepo.Create(ctx, domain.Account{Roles: roles})
	require.NoError(t, err)
	created.Balance = decimal.RequireFromString(balance)
	updated, err := f.accountRepo.UpdateBalance(ctx, created)
	require.NoError(t, err)
	return updated
}

func (f *fixture) admin(t *testing.T) domain.Account {
	t.Helper()
	return f.account(t, "0", domain.RoleAdministrator)
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	account, err := f.accountRepo.Get(context.Background(), id)
	require.NoError(t, err)
	return account.Balance
}

func (f *fixture) entries(t *testing.T, userID string) []domain.Transaction {
	t.Helper()
	entries, err := f.txRepo.ListByUser(context.Background(), userID, domain.TransactionFilter{})
	require.NoError(t, err)
	return entries
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func ptr[T any](value T) *T {
	return &value
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *capturingPublisher) Publish(_ context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) names() []domain.EventName {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventName, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Name)
	}
	return out
}
