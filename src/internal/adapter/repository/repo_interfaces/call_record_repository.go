package repo_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type CallRecordRepository interface {
	Create(ctx context.Context, call domain.CallRecord) (domain.CallRecord, error)
	Get(ctx context.Context, id string) (domain.CallRecord, error)
	GetForUpdate(ctx context.Context, id string) (domain.CallRecord, error)
	Update(ctx context.Context, call domain.CallRecord) (domain.CallRecord, error)
}
