package service_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type CallRecordService interface {
	Create(ctx context.Context, req domain.NewCallRecord) (domain.CallRecord, error)
	Get(ctx context.Context, id string) (domain.CallRecord, error)
	Update(ctx context.Context, id string, patch domain.CallRecordPatch) (domain.CallRecord, error)
	Settle(ctx context.Context, id string) (domain.CallRecord, error)
}
