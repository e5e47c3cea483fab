package service_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionService interface {
	Record(ctx context.Context, account domain.Account, entry domain.LedgerEntry) (domain.Transaction, error)
	Get(ctx context.Context, id string) (domain.Transaction, error)
	ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	TotalByType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
