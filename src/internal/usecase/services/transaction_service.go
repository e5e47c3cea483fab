package services

import (
	"context"
	"fmt"

	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
	"github.com/shopspring/decimal"
)

const maxTransactionPageSize = 200

// TransactionService is the append-only ledger. Recording an entry never
// changes the account it describes; callers apply BalanceAfter themselves
// inside the same unit of work.
type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
}

func NewTransactionService(transactionRepo repo_interfaces.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

func (s *TransactionService) Record(ctx context.Context, account domain.Account, entry domain.LedgerEntry) (domain.Transaction, error) {
	if account.ID == "" {
		return domain.Transaction{}, fmt.Errorf("record %s: account: %w", entry.Type, domain.ErrRecordNotFound)
	}

	status := entry.Status
	if status == "" {
		status = domain.TransactionStatusCompleted
	}
	if !status.Valid() {
		return domain.Transaction{}, fmt.Errorf("%w: unknown transaction status %q", domain.ErrInvalidArgument, status)
	}

	after, err := domain.BalanceAfter(account.Balance, entry.Amount, entry.Type)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		UserID:        account.ID,
		Type:          entry.Type,
		Amount:        entry.Amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  after,
		Status:        status,
		Description:   entry.Description,
		Bank:          entry.Bank,
		Notes:         entry.Notes,
	}
	if entry.DebtorID != "" {
		debtorID := entry.DebtorID
		tx.DebtorID = &debtorID
	}
	if entry.RelatedID != "" {
		related := entry.RelatedID
		switch entry.Type {
		case domain.TransactionTypeDeposit, domain.TransactionTypeDebtPayment:
			tx.DepositID = &related
		case domain.TransactionTypeWithdrawal:
			tx.WithdrawalID = &related
		case domain.TransactionTypeCallPayment, domain.TransactionTypeCallEarning, domain.TransactionTypeCommission:
			tx.CallRecordID = &related
		}
	}

	created, err := s.transactionRepo.Create(ctx, tx)
	if err != nil {
		logger.Error("transaction service record failed", err, logger.Fields{
			"userId":          account.ID,
			"transactionType": entry.Type,
			"amount":          entry.Amount.StringFixed(2),
		})
		return domain.Transaction{}, err
	}

	logger.Info("transaction service record success", logger.Fields{
		"transactionId":   created.ID,
		"userId":          created.UserID,
		"transactionType": created.Type,
		"amount":          created.Amount.StringFixed(2),
		"balanceBefore":   created.BalanceBefore.StringFixed(2),
		"balanceAfter":    created.BalanceAfter.StringFixed(2),
	})
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, id string) (domain.Transaction, error) {
	return s.transactionRepo.Get(ctx, id)
}

func (s *TransactionService) ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidArgument, filter.Type)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction status %q", domain.ErrInvalidArgument, filter.Status)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: to must not be before from", domain.ErrInvalidArgument)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset cannot be negative", domain.ErrInvalidArgument)
	}
	if filter.Limit == 0 || filter.Limit > maxTransactionPageSize {
		filter.Limit = maxTransactionPageSize
	}
	return s.transactionRepo.ListByUser(ctx, userID, filter)
}

// TotalByType sums COMPLETED entries of one type for a user.
func (s *TransactionService) TotalByType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	if !txType.Valid() {
		return decimal.Zero, fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidArgument, txType)
	}
	return s.transactionRepo.SumByUserAndType(ctx, userID, txType)
}

func (s *TransactionService) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.transactionRepo.CountByUser(ctx, userID)
}
