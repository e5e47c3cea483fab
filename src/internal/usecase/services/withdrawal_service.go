package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
	"github.com/morago/interpreter-ledger/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type WithdrawalService struct {
	withdrawalRepo repo_interfaces.WithdrawalRepository
	accountRepo    repo_interfaces.AccountRepository
	txManager      repo_interfaces.TxManager
	ledger         service_interfaces.TransactionService
	events         eventEmitter
}

func NewWithdrawalService(
	withdrawalRepo repo_interfaces.WithdrawalRepository,
	accountRepo repo_interfaces.AccountRepository,
	txManager repo_interfaces.TxManager,
	ledger service_interfaces.TransactionService,
	publisher domain.EventPublisher,
) *WithdrawalService {
	return &WithdrawalService{
		withdrawalRepo: withdrawalRepo,
		accountRepo:    accountRepo,
		txManager:      txManager,
		ledger:         ledger,
		events:         newEventEmitter(publisher),
	}
}

// Request files a PENDING payout for an interpreter. Nothing is debited
// until an administrator approves it.
func (s *WithdrawalService) Request(ctx context.Context, actorID string, sum decimal.Decimal, bank domain.BankDetails) (domain.Withdrawal, error) {
	logger.Info("withdrawal service request", logger.Fields{
		"actorId":       actorID,
		"sum":           sum.StringFixed(2),
		"accountNumber": bank.AccountNumber,
		"bankName":      bank.BankName,
	})

	account, err := s.accountRepo.Get(ctx, actorID)
	if err != nil {
		return domain.Withdrawal{}, err
	}
	if !account.HasRole(domain.RoleInterpreter) {
		return domain.Withdrawal{}, fmt.Errorf("%w: only interpreters can request withdrawals", domain.ErrForbidden)
	}
	if !sum.IsPositive() {
		return domain.Withdrawal{}, fmt.Errorf("%w: sum must be greater than zero", domain.ErrInvalidArgument)
	}
	if err := domain.CheckMoneyScale("sum", sum); err != nil {
		return domain.Withdrawal{}, err
	}
	if account.IsDebtor {
		return domain.Withdrawal{}, fmt.Errorf("user %s: %w", account.ID, domain.ErrDebtBlocked)
	}

	created, err := s.withdrawalRepo.Create(ctx, domain.Withdrawal{
		UserID: account.ID,
		Sum:    sum,
		Status: domain.WithdrawalStatusPending,
		Bank: domain.BankDetails{
			AccountHolder: strings.TrimSpace(bank.AccountHolder),
			BankName:      strings.TrimSpace(bank.BankName),
			AccountNumber: strings.TrimSpace(bank.AccountNumber),
		},
	})
	if err != nil {
		logger.Error("withdrawal service request failed", err, logger.Fields{"actorId": actorID})
		return domain.Withdrawal{}, err
	}

	logger.Info("withdrawal service request success", logger.Fields{
		"withdrawalId": created.ID,
		"userId":       created.UserID,
	})
	s.events.emit(ctx, domain.EventWithdrawalRequested, []string{created.UserID}, newWithdrawalPayload(created))
	return created, nil
}

// Decide approves or rejects a pending withdrawal. Approval debits the
// balance and writes the WITHDRAWAL entry in the same unit of work as the
// status change. Repeating the current decision is a no-op.
func (s *WithdrawalService) Decide(ctx context.Context, actorID, withdrawalID string, decision domain.WithdrawalStatus) (domain.Withdrawal, error) {
	logger.Info("withdrawal service decide request", logger.Fields{
		"actorId":      actorID,
		"withdrawalId": withdrawalID,
		"decision":     decision,
	})

	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdministrator); err != nil {
		return domain.Withdrawal{}, err
	}
	decision = domain.WithdrawalStatus(strings.ToUpper(strings.TrimSpace(string(decision))))
	if !decision.Terminal() {
		return domain.Withdrawal{}, fmt.Errorf("%w: status must be APPROVED or REJECTED", domain.ErrInvalidArgument)
	}

	var (
		result  domain.Withdrawal
		changed bool
		debited *domain.Account
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.withdrawalRepo.GetForUpdate(ctx, withdrawalID)
		if err != nil {
			return err
		}

		changed, err = domain.NextWithdrawalStatus(current.Status, decision)
		if err != nil {
			return err
		}
		if !changed {
			result = current
			return nil
		}

		if decision == domain.WithdrawalStatusApproved {
			account, err := s.accountRepo.GetForUpdate(ctx, current.UserID)
			if err != nil {
				return err
			}
			if !account.CanCover(current.Sum) {
				return fmt.Errorf("user %s: %w", account.ID, domain.ErrInsufficientBalance)
			}

			entry, err := s.ledger.Record(ctx, account, domain.LedgerEntry{
				Type:        domain.TransactionTypeWithdrawal,
				Amount:      current.Sum,
				Status:      domain.TransactionStatusCompleted,
				Description: "Withdrawal to bank account",
				RelatedID:   current.ID,
				Bank:        current.Bank,
			})
			if err != nil {
				return err
			}
			account.Balance = entry.BalanceAfter
			account, err = s.accountRepo.UpdateBalance(ctx, account)
			if err != nil {
				return err
			}
			debited = &account
		}

		result, err = s.withdrawalRepo.UpdateStatus(ctx, current.ID, decision)
		return err
	})
	if err != nil {
		logger.Error("withdrawal service decide failed", err, logger.Fields{
			"withdrawalId": withdrawalID,
			"decision":     decision,
		})
		return domain.Withdrawal{}, err
	}

	if !changed {
		logger.Info("withdrawal service decide no-op", logger.Fields{
			"withdrawalId": withdrawalID,
			"status":       result.Status,
		})
		return result, nil
	}

	logger.Info("withdrawal service decide success", logger.Fields{
		"withdrawalId": result.ID,
		"status":       result.Status,
	})
	s.events.emit(ctx, domain.EventWithdrawalUpdated, []string{result.UserID}, newWithdrawalPayload(result))
	if debited != nil {
		s.events.emitBalances(ctx, *debited)
	}
	return result, nil
}

func (s *WithdrawalService) Get(ctx context.Context, id string) (domain.Withdrawal, error) {
	return s.withdrawalRepo.Get(ctx, id)
}

func (s *WithdrawalService) List(ctx context.Context, filter domain.WithdrawalFilter) ([]domain.Withdrawal, error) {
	if filter.Status != "" && filter.Status != domain.WithdrawalStatusPending && !filter.Status.Terminal() {
		return nil, fmt.Errorf("%w: unknown withdrawal status %q", domain.ErrInvalidArgument, filter.Status)
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset cannot be negative", domain.ErrInvalidArgument)
	}
	return s.withdrawalRepo.List(ctx, filter)
}

func newWithdrawalPayload(w domain.Withdrawal) statusPayload {
	return statusPayload{
		ID:     w.ID,
		UserID: w.UserID,
		Sum:    w.Sum.StringFixed(2),
		Status: string(w.Status),
	}
}
