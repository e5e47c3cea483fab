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

type DepositService struct {
	depositRepo repo_interfaces.DepositRepository
	accountRepo repo_interfaces.AccountRepository
	txManager   repo_interfaces.TxManager
	ledger      service_interfaces.TransactionService
	events      eventEmitter
}

func NewDepositService(
	depositRepo repo_interfaces.DepositRepository,
	accountRepo repo_interfaces.AccountRepository,
	txManager repo_interfaces.TxManager,
	ledger service_interfaces.TransactionService,
	publisher domain.EventPublisher,
) *DepositService {
	return &DepositService{
		depositRepo: depositRepo,
		accountRepo: accountRepo,
		txManager:   txManager,
		ledger:      ledger,
		events:      newEventEmitter(publisher),
	}
}

func (s *DepositService) Create(ctx context.Context, actorID string, sum decimal.Decimal, bank domain.BankDetails) (domain.Deposit, error) {
	logger.Info("deposit service create request", logger.Fields{
		"actorId":  actorID,
		"sum":      sum.StringFixed(2),
		"bankName": bank.BankName,
	})

	account, err := s.accountRepo.Get(ctx, actorID)
	if err != nil {
		return domain.Deposit{}, err
	}
	if !sum.IsPositive() {
		return domain.Deposit{}, fmt.Errorf("%w: sum must be greater than zero", domain.ErrInvalidArgument)
	}
	if err := domain.CheckMoneyScale("sum", sum); err != nil {
		return domain.Deposit{}, err
	}

	created, err := s.depositRepo.Create(ctx, domain.Deposit{
		UserID: account.ID,
		Sum:    sum,
		Status: domain.DepositStatusPending,
		Bank: domain.BankDetails{
			AccountHolder: strings.TrimSpace(bank.AccountHolder),
			BankName:      strings.TrimSpace(bank.BankName),
		},
	})
	if err != nil {
		logger.Error("deposit service create failed", err, logger.Fields{"actorId": actorID})
		return domain.Deposit{}, err
	}

	logger.Info("deposit service create success", logger.Fields{
		"depositId": created.ID,
		"userId":    created.UserID,
	})
	s.events.emit(ctx, domain.EventDepositCreated, []string{created.UserID}, newDepositPayload(created))
	return created, nil
}

// Decide completes or rejects a pending deposit. Completion pays down
// outstanding debt first and credits only the remainder to the balance.
func (s *DepositService) Decide(ctx context.Context, actorID, depositID string, decision domain.DepositStatus) (domain.Deposit, error) {
	logger.Info("deposit service decide request", logger.Fields{
		"actorId":   actorID,
		"depositId": depositID,
		"decision":  decision,
	})

	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdministrator); err != nil {
		return domain.Deposit{}, err
	}
	decision = domain.DepositStatus(strings.ToUpper(strings.TrimSpace(string(decision))))
	if !decision.Terminal() {
		return domain.Deposit{}, fmt.Errorf("%w: status must be COMPLETED or REJECTED", domain.ErrInvalidArgument)
	}

	var (
		result   domain.Deposit
		changed  bool
		credited *domain.Account
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.depositRepo.GetForUpdate(ctx, depositID)
		if err != nil {
			return err
		}

		changed, err = domain.NextDepositStatus(current.Status, decision)
		if err != nil {
			return err
		}
		if !changed {
			result = current
			return nil
		}

		if decision == domain.DepositStatusCompleted {
			account, err := s.settleDeposit(ctx, current)
			if err != nil {
				return err
			}
			credited = &account
		}

		result, err = s.depositRepo.UpdateStatus(ctx, current.ID, decision)
		return err
	})
	if err != nil {
		logger.Error("deposit service decide failed", err, logger.Fields{
			"depositId": depositID,
			"decision":  decision,
		})
		return domain.Deposit{}, err
	}

	if !changed {
		return result, nil
	}

	logger.Info("deposit service decide success", logger.Fields{
		"depositId": result.ID,
		"status":    result.Status,
	})
	s.events.emit(ctx, domain.EventDepositUpdated, []string{result.UserID}, newDepositPayload(result))
	if credited != nil {
		s.events.emitBalances(ctx, *credited)
	}
	return result, nil
}

func (s *DepositService) settleDeposit(ctx context.Context, deposit domain.Deposit) (domain.Account, error) {
	account, err := s.accountRepo.GetForUpdate(ctx, deposit.UserID)
	if err != nil {
		return domain.Account{}, err
	}

	split := domain.SplitDeposit(deposit.Sum, account.Debt)

	if split.AppliedToDebt.IsPositive() {
		if _, err := s.ledger.Record(ctx, account, domain.LedgerEntry{
			Type:        domain.TransactionTypeDebtPayment,
			Amount:      split.AppliedToDebt,
			Status:      domain.TransactionStatusCompleted,
			Description: "Debt repayment from deposit",
			RelatedID:   deposit.ID,
			DebtorID:    account.ID,
			Bank:        deposit.Bank,
		}); err != nil {
			return domain.Account{}, err
		}
		account.Debt = account.Debt.Sub(split.AppliedToDebt)
		account.IsDebtor = account.Debt.IsPositive()
	}

	if split.Remainder.IsPositive() {
		entry, err := s.ledger.Record(ctx, account, domain.LedgerEntry{
			Type:        domain.TransactionTypeDeposit,
			Amount:      split.Remainder,
			Status:      domain.TransactionStatusCompleted,
			Description: "Deposit",
			RelatedID:   deposit.ID,
			Bank:        deposit.Bank,
		})
		if err != nil {
			return domain.Account{}, err
		}
		account.Balance = entry.BalanceAfter
	}

	logger.Info("deposit service settle deposit", logger.Fields{
		"depositId":     deposit.ID,
		"userId":        account.ID,
		"appliedToDebt": split.AppliedToDebt.StringFixed(2),
		"credited":      split.Remainder.StringFixed(2),
		"remainingDebt": account.Debt.StringFixed(2),
	})
	return s.accountRepo.UpdateBalance(ctx, account)
}

func (s *DepositService) Get(ctx context.Context, id string) (domain.Deposit, error) {
	return s.depositRepo.Get(ctx, id)
}

func newDepositPayload(d domain.Deposit) statusPayload {
	return statusPayload{
		ID:     d.ID,
		UserID: d.UserID,
		Sum:    d.Sum.StringFixed(2),
		Status: string(d.Status),
	}
}
