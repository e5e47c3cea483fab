package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type DepositRepository struct {
	store *Store
}

func NewDepositRepository(store *Store) *DepositRepository {
	return &DepositRepository{store: store}
}

func (r *DepositRepository) Create(ctx context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	defer r.store.acquire(ctx)()

	if _, ok := r.store.accounts[deposit.UserID]; !ok {
		return domain.Deposit{}, fmt.Errorf("create deposit: %w", domain.ErrRecordNotFound)
	}
	if deposit.ID == "" {
		deposit.ID = uuid.NewString()
	}
	now := r.store.now()
	deposit.CreatedAt = now
	deposit.UpdatedAt = now
	r.store.deposits[deposit.ID] = deposit
	return deposit, nil
}

func (r *DepositRepository) Get(ctx context.Context, id string) (domain.Deposit, error) {
	defer r.store.acquire(ctx)()

	deposit, ok := r.store.deposits[id]
	if !ok {
		return domain.Deposit{}, domain.ErrRecordNotFound
	}
	return deposit, nil
}

func (r *DepositRepository) GetForUpdate(ctx context.Context, id string) (domain.Deposit, error) {
	return r.Get(ctx, id)
}

func (r *DepositRepository) UpdateStatus(ctx context.Context, id string, status domain.DepositStatus) (domain.Deposit, error) {
	defer r.store.acquire(ctx)()

	deposit, ok := r.store.deposits[id]
	if !ok {
		return domain.Deposit{}, domain.ErrRecordNotFound
	}
	deposit.Status = status
	deposit.UpdatedAt = r.store.now()
	r.store.deposits[id] = deposit
	return deposit, nil
}
