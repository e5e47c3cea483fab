package service_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type DepositService interface {
	Create(ctx context.Context, actorID string, sum decimal.Decimal, bank domain.BankDetails) (domain.Deposit, error)
	Decide(ctx context.Context, actorID, depositID string, decision domain.DepositStatus) (domain.Deposit, error)
	Get(ctx context.Context, id string) (domain.Deposit, error)
}
