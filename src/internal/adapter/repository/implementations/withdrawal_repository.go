package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
)

type WithdrawalRepository struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

const withdrawalColumns = `id, user_id, sum, status, account_number, account_holder, bank_name, created_at, updated_at`

func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal domain.Withdrawal) (domain.Withdrawal, error) {
	if withdrawal.ID == "" {
		withdrawal.ID = uuid.NewString()
	}
	logger.Info("withdrawal repository create", logger.Fields{
		"withdrawalId":  withdrawal.ID,
		"userId":        withdrawal.UserID,
		"sum":           withdrawal.Sum.StringFixed(2),
		"accountNumber": withdrawal.Bank.AccountNumber,
	})

	const query = `
INSERT INTO withdrawals (
	id,
	user_id,
	sum,
	status,
	account_number,
	account_holder,
	bank_name
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at, updated_at`

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		withdrawal.ID,
		withdrawal.UserID,
		withdrawal.Sum,
		withdrawal.Status,
		withdrawal.Bank.AccountNumber,
		withdrawal.Bank.AccountHolder,
		withdrawal.Bank.BankName,
	).Scan(&withdrawal.CreatedAt, &withdrawal.UpdatedAt); err != nil {
		logger.Error("withdrawal repository create failed", err, logger.Fields{
			"withdrawalId": withdrawal.ID,
		})
		return domain.Withdrawal{}, storeErr("create withdrawal", err)
	}

	logger.Info("withdrawal repository create success", logger.Fields{
		"withdrawalId": withdrawal.ID,
	})
	return withdrawal, nil
}

func (r *WithdrawalRepository) Get(ctx context.Context, id string) (domain.Withdrawal, error) {
	return r.get(ctx, id, false)
}

func (r *WithdrawalRepository) GetForUpdate(ctx context.Context, id string) (domain.Withdrawal, error) {
	return r.get(ctx, id, true)
}

func (r *WithdrawalRepository) get(ctx context.Context, id string, forUpdate bool) (domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	withdrawal, err := scanWithdrawal(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			logger.Info("withdrawal repository record not found", logger.Fields{
				"withdrawalId": id,
			})
			return domain.Withdrawal{}, domain.ErrRecordNotFound
		}
		logger.Error("withdrawal repository get failed", err, logger.Fields{
			"withdrawalId": id,
		})
		return domain.Withdrawal{}, storeErr("get withdrawal", err)
	}
	return withdrawal, nil
}

func (r *WithdrawalRepository) List(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.Withdrawal, error) {
	logger.Info("withdrawal repository list", logger.Fields{
		"userId": filter.UserID,
		"status": filter.Status,
	})

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("withdrawal repository list failed", err, nil)
		return nil, storeErr("list withdrawals", err)
	}
	defer rows.Close()

	withdrawals := make([]domain.Withdrawal, 0)
	for rows.Next() {
		withdrawal, err := scanWithdrawal(rows)
		if err != nil {
			return nil, storeErr("scan withdrawal", err)
		}
		withdrawals = append(withdrawals, withdrawal)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate withdrawals", err)
	}
	return withdrawals, nil
}

func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id string, status domain.WithdrawalStatus) (domain.Withdrawal, error) {
	logger.Info("withdrawal repository update status", logger.Fields{
		"withdrawalId": id,
		"status":       status,
	})

	query := `
UPDATE withdrawals
SET status = $2,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + withdrawalColumns

	withdrawal, err := scanWithdrawal(conn(ctx, r.db).QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Withdrawal{}, domain.ErrRecordNotFound
		}
		logger.Error("withdrawal repository update status failed", err, logger.Fields{
			"withdrawalId": id,
			"status":       status,
		})
		return domain.Withdrawal{}, storeErr("update withdrawal status", err)
	}

	logger.Info("withdrawal repository update status success", logger.Fields{
		"withdrawalId": id,
		"status":       status,
	})
	return withdrawal, nil
}

func scanWithdrawal(row rowScanner) (domain.Withdrawal, error) {
	var withdrawal domain.Withdrawal
	if err := row.Scan(
		&withdrawal.ID,
		&withdrawal.UserID,
		&withdrawal.Sum,
		&withdrawal.Status,
		&withdrawal.Bank.AccountNumber,
		&withdrawal.Bank.AccountHolder,
		&withdrawal.Bank.BankName,
		&withdrawal.CreatedAt,
		&withdrawal.UpdatedAt,
	); err != nil {
		return domain.Withdrawal{}, err
	}
	return withdrawal, nil
}
