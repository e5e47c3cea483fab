package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	defer r.store.acquire(ctx)()

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if _, exists := r.store.accounts[account.ID]; exists {
		return domain.Account{}, fmt.Errorf("create account: %w", domain.ErrConflict)
	}
	now := r.store.now()
	account.CreatedAt = now
	account.UpdatedAt = now
	account.Roles = slices.Clone(account.Roles)
	r.store.accounts[account.ID] = account
	return account, nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (domain.Account, error) {
	defer r.store.acquire(ctx)()

	account, ok := r.store.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) GetForUpdate(ctx context.Context, id string) (domain.Account, error) {
	return r.Get(ctx, id)
}

func (r *AccountRepository) LockMany(ctx context.Context, ids ...string) (map[string]domain.Account, error) {
	defer r.store.acquire(ctx)()

	out := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		account, ok := r.store.accounts[id]
		if !ok {
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrRecordNotFound)
		}
		out[id] = account
	}
	return out, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, account domain.Account) (domain.Account, error) {
	defer r.store.acquire(ctx)()

	current, ok := r.store.accounts[account.ID]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	if account.Balance.IsNegative() || account.Debt.IsNegative() {
		return domain.Account{}, fmt.Errorf("update account balance: %w: negative amount", domain.ErrPersistence)
	}
	current.Balance = account.Balance
	current.Debt = account.Debt
	current.IsDebtor = account.IsDebtor
	current.UpdatedAt = r.store.now()
	r.store.accounts[account.ID] = current
	return current, nil
}
