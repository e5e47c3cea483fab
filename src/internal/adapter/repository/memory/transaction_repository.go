package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) Create(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
	defer r.store.acquire(ctx)()

	if _, ok := r.store.accounts[entry.UserID]; !ok {
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", domain.ErrRecordNotFound)
	}
	if entry.CallRecordID != nil {
		for _, existing := range r.store.transactions {
			if existing.CallRecordID != nil && *existing.CallRecordID == *entry.CallRecordID && existing.Type == entry.Type {
				return domain.Transaction{}, fmt.Errorf("create transaction: %w: duplicate %s for call %s", domain.ErrConflict, entry.Type, *entry.CallRecordID)
			}
		}
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = r.store.now()
	r.store.transactions = append(r.store.transactions, entry)
	return entry, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id string) (domain.Transaction, error) {
	defer r.store.acquire(ctx)()

	for _, entry := range r.store.transactions {
		if entry.ID == id {
			return entry, nil
		}
	}
	return domain.Transaction{}, domain.ErrRecordNotFound
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	defer r.store.acquire(ctx)()

	out := make([]domain.Transaction, 0)
	skipped := 0
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		entry := r.store.transactions[i]
		if entry.UserID != userID || !matches(entry, filter) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, entry)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *TransactionRepository) SumByUserAndType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	defer r.store.acquire(ctx)()

	total := decimal.Zero
	for _, entry := range r.store.transactions {
		if entry.UserID == userID && entry.Type == txType && entry.Status == domain.TransactionStatusCompleted {
			total = total.Add(entry.Amount)
		}
	}
	return total, nil
}

func (r *TransactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	defer r.store.acquire(ctx)()

	var count int64
	for _, entry := range r.store.transactions {
		if entry.UserID == userID {
			count++
		}
	}
	return count, nil
}

func matches(entry domain.Transaction, filter domain.TransactionFilter) bool {
	if filter.Type != "" && entry.Type != filter.Type {
		return false
	}
	if filter.Status != "" && entry.Status != filter.Status {
		return false
	}
	if filter.From != nil && entry.CreatedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && !entry.CreatedAt.Before(*filter.To) {
		return false
	}
	return true
}
