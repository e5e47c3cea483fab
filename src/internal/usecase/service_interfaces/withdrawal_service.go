package service_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type WithdrawalService interface {
	Request(ctx context.Context, actorID string, sum decimal.Decimal, bank domain.BankDetails) (domain.Withdrawal, error)
	Decide(ctx context.Context, actorID, withdrawalID string, decision domain.WithdrawalStatus) (domain.Withdrawal, error)
	Get(ctx context.Context, id string) (domain.Withdrawal, error)
	List(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.Withdrawal, error)
}
