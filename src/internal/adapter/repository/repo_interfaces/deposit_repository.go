package repo_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type DepositRepository interface {
	Create(ctx context.Context, deposit domain.Deposit) (domain.Deposit, error)
	Get(ctx context.Context, id string) (domain.Deposit, error)
	GetForUpdate(ctx context.Context, id string) (domain.Deposit, error)
	UpdateStatus(ctx context.Context, id string, status domain.DepositStatus) (domain.Deposit, error)
}
