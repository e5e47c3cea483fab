package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type WithdrawalRepository struct {
	store *Store
}

func NewWithdrawalRepository(store *Store) *WithdrawalRepository {
	return &WithdrawalRepository{store: store}
}

func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal domain.Withdrawal) (domain.Withdrawal, error) {
	defer r.store.acquire(ctx)()

	if _, ok := r.store.accounts[withdrawal.UserID]; !ok {
		return domain.Withdrawal{}, fmt.Errorf("create withdrawal: %w", domain.ErrRecordNotFound)
	}
	if withdrawal.ID == "" {
		withdrawal.ID = uuid.NewString()
	}
	now := r.store.now()
	withdrawal.CreatedAt = now
	withdrawal.UpdatedAt = now
	r.store.withdrawals[withdrawal.ID] = withdrawal
	return withdrawal, nil
}

func (r *WithdrawalRepository) Get(ctx context.Context, id string) (domain.Withdrawal, error) {
	defer r.store.acquire(ctx)()

	withdrawal, ok := r.store.withdrawals[id]
	if !ok {
		return domain.Withdrawal{}, domain.ErrRecordNotFound
	}
	return withdrawal, nil
}

func (r *WithdrawalRepository) GetForUpdate(ctx context.Context, id string) (domain.Withdrawal, error) {
	return r.Get(ctx, id)
}

func (r *WithdrawalRepository) List(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.Withdrawal, error) {
	defer r.store.acquire(ctx)()

	out := make([]domain.Withdrawal, 0)
	for _, withdrawal := range r.store.withdrawals {
		if filter.UserID != "" && withdrawal.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && withdrawal.Status != filter.Status {
			continue
		}
		out = append(out, withdrawal)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []domain.Withdrawal{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id string, status domain.WithdrawalStatus) (domain.Withdrawal, error) {
	defer r.store.acquire(ctx)()

	withdrawal, ok := r.store.withdrawals[id]
	if !ok {
		return domain.Withdrawal{}, domain.ErrRecordNotFound
	}
	withdrawal.Status = status
	withdrawal.UpdatedAt = r.store.now()
	r.store.withdrawals[id] = withdrawal
	return withdrawal, nil
}
