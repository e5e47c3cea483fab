package repo_interfaces

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	// GetForUpdate reads the account and holds its row lock until the
	// surrounding unit of work ends.
	GetForUpdate(ctx context.Context, id string) (domain.Account, error)
	// LockMany locks every listed account in id order and returns them keyed
	// by id. Missing ids yield domain.ErrRecordNotFound.
	LockMany(ctx context.Context, ids ...string) (map[string]domain.Account, error)
	// UpdateBalance persists balance, debt and the debtor flag.
	UpdateBalance(ctx context.Context, account domain.Account) (domain.Account, error)
}
