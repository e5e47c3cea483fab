package service_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	AssignDebt(ctx context.Context, actorID, userID string, amount decimal.Decimal, note string) (domain.Account, error)
	AdjustBalance(ctx context.Context, actorID, userID string, newBalance decimal.Decimal, note string) (domain.Transaction, error)
	Refund(ctx context.Context, actorID, userID string, amount decimal.Decimal, note string) (domain.Transaction, error)
}
