package repo_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	Get(ctx context.Context, id string) (domain.Transaction, error)
	ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	SumByUserAndType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
