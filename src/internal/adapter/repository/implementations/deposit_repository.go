package implementations

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
)

type DepositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

const depositColumns = `id, user_id, sum, status, account_holder, bank_name, created_at, updated_at`

func (r *DepositRepository) Create(ctx context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	if deposit.ID == "" {
		deposit.ID = uuid.NewString()
	}
	logger.Info("deposit repository create", logger.Fields{
		"depositId": deposit.ID,
		"userId":    deposit.UserID,
		"sum":       deposit.Sum.StringFixed(2),
	})

	const query = `
INSERT INTO deposits (
	id,
	user_id,
	sum,
	status,
	account_holder,
	bank_name
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at, updated_at`

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		deposit.ID,
		deposit.UserID,
		deposit.Sum,
		deposit.Status,
		deposit.Bank.AccountHolder,
		deposit.Bank.BankName,
	).Scan(&deposit.CreatedAt, &deposit.UpdatedAt); err != nil {
		logger.Error("deposit repository create failed", err, logger.Fields{
			"depositId": deposit.ID,
		})
		return domain.Deposit{}, storeErr("create deposit", err)
	}

	logger.Info("deposit repository create success", logger.Fields{
		"depositId": deposit.ID,
	})
	return deposit, nil
}

func (r *DepositRepository) Get(ctx context.Context, id string) (domain.Deposit, error) {
	return r.get(ctx, id, false)
}

func (r *DepositRepository) GetForUpdate(ctx context.Context, id string) (domain.Deposit, error) {
	return r.get(ctx, id, true)
}

func (r *DepositRepository) get(ctx context.Context, id string, forUpdate bool) (domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	deposit, err := scanDeposit(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			logger.Info("deposit repository record not found", logger.Fields{
				"depositId": id,
			})
			return domain.Deposit{}, domain.ErrRecordNotFound
		}
		logger.Error("deposit repository get failed", err, logger.Fields{
			"depositId": id,
		})
		return domain.Deposit{}, storeErr("get deposit", err)
	}
	return deposit, nil
}

func (r *DepositRepository) UpdateStatus(ctx context.Context, id string, status domain.DepositStatus) (domain.Deposit, error) {
	logger.Info("deposit repository update status", logger.Fields{
		"depositId": id,
		"status":    status,
	})

	query := `
UPDATE deposits
SET status = $2,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + depositColumns

	deposit, err := scanDeposit(conn(ctx, r.db).QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Deposit{}, domain.ErrRecordNotFound
		}
		logger.Error("deposit repository update status failed", err, logger.Fields{
			"depositId": id,
			"status":    status,
		})
		return domain.Deposit{}, storeErr("update deposit status", err)
	}
	return deposit, nil
}

func scanDeposit(row rowScanner) (domain.Deposit, error) {
	var deposit domain.Deposit
	if err := row.Scan(
		&deposit.ID,
		&deposit.UserID,
		&deposit.Sum,
		&deposit.Status,
		&deposit.Bank.AccountHolder,
		&deposit.Bank.BankName,
		&deposit.CreatedAt,
		&deposit.UpdatedAt,
	); err != nil {
		return domain.Deposit{}, err
	}
	return deposit, nil
}
