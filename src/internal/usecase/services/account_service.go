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

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	txManager   repo_interfaces.TxManager
	ledger      service_interfaces.TransactionService
	events      eventEmitter
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	txManager repo_interfaces.TxManager,
	ledger service_interfaces.TransactionService,
	publisher domain.EventPublisher,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		txManager:   txManager,
		ledger:      ledger,
		events:      newEventEmitter(publisher),
	}
}

func (s *AccountService) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account service create request", logger.Fields{
		"roles": account.Roles,
	})

	if len(account.Roles) == 0 {
		return domain.Account{}, fmt.Errorf("%w: at least one role is required", domain.ErrInvalidArgument)
	}
	for _, role := range account.Roles {
		if !role.Valid() {
			return domain.Account{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidArgument, role)
		}
	}

	account.FirstName = strings.TrimSpace(account.FirstName)
	account.LastName = strings.TrimSpace(account.LastName)
	account.Phone = strings.TrimSpace(account.Phone)
	account.Balance = decimal.Zero
	account.Debt = decimal.Zero
	account.IsDebtor = false

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create failed", err, nil)
		return domain.Account{}, err
	}

	logger.Info("account service create success", logger.Fields{
		"accountId": created.ID,
	})
	return created, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.accountRepo.Get(ctx, id)
}

// AssignDebt records an outstanding amount owed by the user and marks them
// as a debtor. The balance is untouched; later deposits pay the debt first.
func (s *AccountService) AssignDebt(ctx context.Context, actorID, userID string, amount decimal.Decimal, note string) (domain.Account, error) {
	logger.Info("account service assign debt request", logger.Fields{
		"actorId": actorID,
		"userId":  userID,
		"amount":  amount.StringFixed(2),
		"note":    note,
	})

	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdministrator); err != nil {
		return domain.Account{}, err
	}
	if !amount.IsPositive() {
		return domain.Account{}, fmt.Errorf("%w: debt amount must be greater than zero", domain.ErrInvalidArgument)
	}
	if err := domain.CheckMoneyScale("debt amount", amount); err != nil {
		return domain.Account{}, err
	}

	var updated domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		account.Debt = account.Debt.Add(amount)
		account.IsDebtor = true
		updated, err = s.accountRepo.UpdateBalance(ctx, account)
		return err
	})
	if err != nil {
		logger.Error("account service assign debt failed", err, logger.Fields{"userId": userID})
		return domain.Account{}, err
	}

	logger.Info("account service assign debt success", logger.Fields{
		"userId": updated.ID,
		"debt":   updated.Debt.StringFixed(2),
	})
	s.events.emitBalances(ctx, updated)
	return updated, nil
}

// AdjustBalance sets the balance to an arbitrary non-negative value and
// records it as an ADJUSTMENT.
func (s *AccountService) AdjustBalance(ctx context.Context, actorID, userID string, newBalance decimal.Decimal, note string) (domain.Transaction, error) {
	logger.Info("account service adjust balance request", logger.Fields{
		"actorId":    actorID,
		"userId":     userID,
		"newBalance": newBalance.StringFixed(2),
	})

	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdministrator); err != nil {
		return domain.Transaction{}, err
	}
	if newBalance.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("%w: balance cannot be negative", domain.ErrInvalidArgument)
	}
	if err := domain.CheckMoneyScale("balance", newBalance); err != nil {
		return domain.Transaction{}, err
	}

	return s.applyToBalance(ctx, userID, domain.LedgerEntry{
		Type:        domain.TransactionTypeAdjustment,
		Amount:      newBalance,
		Status:      domain.TransactionStatusCompleted,
		Description: "Balance adjustment",
		Notes:       note,
	})
}

// Refund credits the user outside any call or deposit flow.
func (s *AccountService) Refund(ctx context.Context, actorID, userID string, amount decimal.Decimal, note string) (domain.Transaction, error) {
	logger.Info("account service refund request", logger.Fields{
		"actorId": actorID,
		"userId":  userID,
		"amount":  amount.StringFixed(2),
	})

	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdministrator); err != nil {
		return domain.Transaction{}, err
	}
	if !amount.IsPositive() {
		return domain.Transaction{}, fmt.Errorf("%w: refund amount must be greater than zero", domain.ErrInvalidArgument)
	}
	if err := domain.CheckMoneyScale("refund amount", amount); err != nil {
		return domain.Transaction{}, err
	}

	return s.applyToBalance(ctx, userID, domain.LedgerEntry{
		Type:        domain.TransactionTypeRefund,
		Amount:      amount,
		Status:      domain.TransactionStatusCompleted,
		Description: "Refund",
		Notes:       note,
	})
}

func (s *AccountService) applyToBalance(ctx context.Context, userID string, entry domain.LedgerEntry) (domain.Transaction, error) {
	var (
		recorded domain.Transaction
		account  domain.Account
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		account, err = s.accountRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		recorded, err = s.ledger.Record(ctx, account, entry)
		if err != nil {
			return err
		}
		account.Balance = recorded.BalanceAfter
		account, err = s.accountRepo.UpdateBalance(ctx, account)
		return err
	})
	if err != nil {
		logger.Error("account service balance change failed", err, logger.Fields{
			"userId":          userID,
			"transactionType": entry.Type,
		})
		return domain.Transaction{}, err
	}

	s.events.emitBalances(ctx, account)
	return recorded, nil
}
