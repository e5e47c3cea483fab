package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, first_name, last_name, phone, balance, debt, is_debtor, roles, created_at, updated_at`

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	logger.Info("account repository create", logger.Fields{
		"accountId": account.ID,
		"roles":     account.Roles,
	})

	const query = `
INSERT INTO users (
	id,
	first_name,
	last_name,
	phone,
	balance,
	debt,
	is_debtor,
	roles
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at, updated_at`

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Phone,
		account.Balance,
		account.Debt,
		account.IsDebtor,
		pq.Array(rolesToStrings(account.Roles)),
	).Scan(&account.CreatedAt, &account.UpdatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Account{}, storeErr("create account", err)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId": account.ID,
	})
	return account, nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (domain.Account, error) {
	return r.get(ctx, id, false)
}

func (r *AccountRepository) GetForUpdate(ctx context.Context, id string) (domain.Account, error) {
	return r.get(ctx, id, true)
}

func (r *AccountRepository) get(ctx context.Context, id string, forUpdate bool) (domain.Account, error) {
	logger.Info("account repository get", logger.Fields{
		"accountId": id,
		"forUpdate": forUpdate,
	})

	query := `SELECT ` + accountColumns + ` FROM users WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	account, err := scanAccount(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": id,
			})
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, storeErr("get account", err)
	}

	return account, nil
}

// Rows are locked in id order so concurrent settlements touching the same
// pair of accounts cannot deadlock.
const lockAccountsQuery = `SELECT ` + accountColumns + `
FROM users
WHERE id = ANY($1::uuid[])
ORDER BY id
FOR UPDATE`

func (r *AccountRepository) LockMany(ctx context.Context, ids ...string) (map[string]domain.Account, error) {
	logger.Info("account repository lock many", logger.Fields{
		"accountIds": ids,
	})

	rows, err := conn(ctx, r.db).QueryContext(ctx, lockAccountsQuery, pq.Array(ids))
	if err != nil {
		logger.Error("account repository lock many failed", err, logger.Fields{
			"accountIds": ids,
		})
		return nil, storeErr("lock accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, storeErr("scan locked account", err)
		}
		accounts[account.ID] = account
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate locked accounts", err)
	}

	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": id,
			})
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrRecordNotFound)
		}
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateBalance(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository update balance", logger.Fields{
		"accountId": account.ID,
		"balance":   account.Balance.StringFixed(2),
		"debt":      account.Debt.StringFixed(2),
		"isDebtor":  account.IsDebtor,
	})

	const query = `
UPDATE users
SET balance = $2,
    debt = $3,
    is_debtor = $4,
    updated_at = NOW()
WHERE id = $1
RETURNING updated_at`

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		account.ID,
		account.Balance,
		account.Debt,
		account.IsDebtor,
	).Scan(&account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository update balance failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Account{}, storeErr("update account balance", err)
	}

	logger.Info("account repository update balance success", logger.Fields{
		"accountId": account.ID,
	})
	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		account domain.Account
		roles   []string
	)
	if err := row.Scan(
		&account.ID,
		&account.FirstName,
		&account.LastName,
		&account.Phone,
		&account.Balance,
		&account.Debt,
		&account.IsDebtor,
		pq.Array(&roles),
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	account.Roles = make([]domain.Role, 0, len(roles))
	for _, role := range roles {
		account.Roles = append(account.Roles, domain.Role(role))
	}
	return account, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}
