package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type CallRecordRepository struct {
	store *Store
}

func NewCallRecordRepository(store *Store) *CallRecordRepository {
	return &CallRecordRepository{store: store}
}

func (r *CallRecordRepository) Create(ctx context.Context, call domain.CallRecord) (domain.CallRecord, error) {
	defer r.store.acquire(ctx)()

	if _, ok := r.store.accounts[call.CallerID]; !ok {
		return domain.CallRecord{}, fmt.Errorf("create call record: caller: %w", domain.ErrRecordNotFound)
	}
	if call.HasInterpreter() {
		if _, ok := r.store.accounts[*call.RecipientID]; !ok {
			return domain.CallRecord{}, fmt.Errorf("create call record: recipient: %w", domain.ErrRecordNotFound)
		}
	}

	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	now := r.store.now()
	call.CreatedAt = now
	call.UpdatedAt = now
	r.store.calls[call.ID] = call
	return call, nil
}

func (r *CallRecordRepository) Get(ctx context.Context, id string) (domain.CallRecord, error) {
	defer r.store.acquire(ctx)()

	call, ok := r.store.calls[id]
	if !ok {
		return domain.CallRecord{}, domain.ErrRecordNotFound
	}
	return call, nil
}

func (r *CallRecordRepository) GetForUpdate(ctx context.Context, id string) (domain.CallRecord, error) {
	return r.Get(ctx, id)
}

func (r *CallRecordRepository) Update(ctx context.Context, call domain.CallRecord) (domain.CallRecord, error) {
	defer r.store.acquire(ctx)()

	current, ok := r.store.calls[call.ID]
	if !ok {
		return domain.CallRecord{}, domain.ErrRecordNotFound
	}
	call.CreatedAt = current.CreatedAt
	call.UpdatedAt = r.store.now()
	r.store.calls[call.ID] = call
	return call, nil
}
