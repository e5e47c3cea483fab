package repo_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal domain.Withdrawal) (domain.Withdrawal, error)
	Get(ctx context.Context, id string) (domain.Withdrawal, error)
	GetForUpdate(ctx context.Context, id string) (domain.Withdrawal, error)
	List(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, id string, status domain.WithdrawalStatus) (domain.Withdrawal, error)
}
