package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/morago/interpreter-ledger/src/internal/domain"
)

// requireRole loads the acting account and checks it holds role. An unknown
// actor is treated as forbidden rather than not found.
func requireRole(ctx context.Context, accountRepo repo_interfaces.AccountRepository, actorID string, role domain.Role) (domain.Account, error) {
	if actorID == "" {
		return domain.Account{}, fmt.Errorf("%w: actor is required", domain.ErrForbidden)
	}

	actor, err := accountRepo.Get(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: unknown actor", domain.ErrForbidden)
		}
		return domain.Account{}, err
	}

	if !actor.HasRole(role) {
		return domain.Account{}, fmt.Errorf("%w: %s role required", domain.ErrForbidden, role)
	}
	return actor, nil
}
