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
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, transaction_type, amount, balance_before, balance_after, status,
       deposit_id, withdrawal_id, call_record_id, debtor_id, description,
       account_holder, bank_name, account_number, notes, created_at`

func (r *TransactionRepository) Create(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	logger.Info("transaction repository create", logger.Fields{
		"transactionId":   entry.ID,
		"userId":          entry.UserID,
		"transactionType": entry.Type,
		"amount":          entry.Amount.StringFixed(2),
		"balanceBefore":   entry.BalanceBefore.StringFixed(2),
		"balanceAfter":    entry.BalanceAfter.StringFixed(2),
		"status":          entry.Status,
	})

	const query = `
INSERT INTO transactions (
	id,
	user_id,
	transaction_type,
	amount,
	balance_before,
	balance_after,
	status,
	deposit_id,
	withdrawal_id,
	call_record_id,
	debtor_id,
	description,
	account_holder,
	bank_name,
	account_number,
	notes,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, clock_timestamp())
RETURNING created_at`

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.Type,
		entry.Amount,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.Status,
		nullString(entry.DepositID),
		nullString(entry.WithdrawalID),
		nullString(entry.CallRecordID),
		nullString(entry.DebtorID),
		entry.Description,
		entry.Bank.AccountHolder,
		entry.Bank.BankName,
		entry.Bank.AccountNumber,
		entry.Notes,
	).Scan(&entry.CreatedAt); err != nil {
		logger.Error("transaction repository create failed", err, logger.Fields{
			"transactionId": entry.ID,
			"userId":        entry.UserID,
		})
		return domain.Transaction{}, fmt.Errorf("create transaction: %w: %w", domain.ErrPersistence, err)
	}

	logger.Info("transaction repository create success", logger.Fields{
		"transactionId": entry.ID,
	})
	return entry, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id string) (domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	entry, err := scanTransaction(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			logger.Info("transaction repository record not found", logger.Fields{
				"transactionId": id,
			})
			return domain.Transaction{}, domain.ErrRecordNotFound
		}
		logger.Error("transaction repository get failed", err, logger.Fields{
			"transactionId": id,
		})
		return domain.Transaction{}, storeErr("get transaction", err)
	}
	return entry, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	logger.Info("transaction repository list by user", logger.Fields{
		"userId": userID,
		"type":   filter.Type,
		"status": filter.Status,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})

	query, args := listTransactionsQuery(userID, filter)
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("transaction repository list by user failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, storeErr("list transactions", err)
	}
	defer rows.Close()

	entries := make([]domain.Transaction, 0)
	for rows.Next() {
		entry, err := scanTransaction(rows)
		if err != nil {
			return nil, storeErr("scan transaction", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate transactions", err)
	}
	return entries, nil
}

// listTransactionsQuery returns a user's entries newest first, insertion
// order breaking created_at ties.
func listTransactionsQuery(userID string, filter domain.TransactionFilter) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}
	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Type != "" {
		add("transaction_type = $%d", filter.Type)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}

	query := `SELECT ` + transactionColumns + `
FROM transactions
WHERE ` + strings.Join(conditions, " AND ") + `
ORDER BY created_at DESC, seq DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

const sumTransactionsQuery = `
SELECT COALESCE(SUM(amount), 0)
FROM transactions
WHERE user_id = $1
  AND transaction_type = $2
  AND status = 'COMPLETED'`

const countTransactionsQuery = `SELECT COUNT(1) FROM transactions WHERE user_id = $1`

func (r *TransactionRepository) SumByUserAndType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := conn(ctx, r.db).QueryRowContext(ctx, sumTransactionsQuery, userID, txType).Scan(&total); err != nil {
		logger.Error("transaction repository sum by user and type failed", err, logger.Fields{
			"userId":          userID,
			"transactionType": txType,
		})
		return decimal.Zero, storeErr("sum transactions", err)
	}
	return total, nil
}

func (r *TransactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).QueryRowContext(ctx, countTransactionsQuery, userID).Scan(&count); err != nil {
		logger.Error("transaction repository count by user failed", err, logger.Fields{
			"userId": userID,
		})
		return 0, storeErr("count transactions", err)
	}
	return count, nil
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		entry        domain.Transaction
		depositID    sql.NullString
		withdrawalID sql.NullString
		callRecordID sql.NullString
		debtorID     sql.NullString
	)
	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Type,
		&entry.Amount,
		&entry.BalanceBefore,
		&entry.BalanceAfter,
		&entry.Status,
		&depositID,
		&withdrawalID,
		&callRecordID,
		&debtorID,
		&entry.Description,
		&entry.Bank.AccountHolder,
		&entry.Bank.BankName,
		&entry.Bank.AccountNumber,
		&entry.Notes,
		&entry.CreatedAt,
	); err != nil {
		return domain.Transaction{}, err
	}

	entry.DepositID = stringPtr(depositID)
	entry.WithdrawalID = stringPtr(withdrawalID)
	entry.CallRecordID = stringPtr(callRecordID)
	entry.DebtorID = stringPtr(debtorID)
	return entry, nil
}
