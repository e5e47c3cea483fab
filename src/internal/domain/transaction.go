package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeCallPayment TransactionType = "CALL_PAYMENT"
	TransactionTypeCallEarning TransactionType = "CALL_EARNING"
	TransactionTypeCommission  TransactionType = "COMMISSION"
	TransactionTypeRefund      TransactionType = "REFUND"
	TransactionTypeAdjustment  TransactionType = "ADJUSTMENT"
	// TransactionTypeDebtPayment records the part of a deposit that settled
	// outstanding debt. It does not move the balance.
	TransactionTypeDebtPayment TransactionType = "DEBT_PAYMENT"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeCallPayment,
		TransactionTypeCallEarning, TransactionTypeCommission, TransactionTypeRefund,
		TransactionTypeAdjustment, TransactionTypeDebtPayment:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed, TransactionStatusRejected:
		return true
	}
	return false
}

// BankDetails is the payout or funding destination copied onto ledger rows.
type BankDetails struct {
	AccountHolder string
	BankName      string
	AccountNumber string
}

type Transaction struct {
	ID            string
	UserID        string
	Type          TransactionType
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Status        TransactionStatus
	DepositID     *string
	WithdrawalID  *string
	CallRecordID  *string
	DebtorID      *string
	Description   string
	Bank          BankDetails
	Notes         string
	CreatedAt     time.Time
}

// BalanceAfter derives the post-transaction balance for a ledger entry.
// ADJUSTMENT replaces the balance, so its amount may be zero; every other
// type needs a strictly positive amount.
func BalanceAfter(before, amount decimal.Decimal, txType TransactionType) (decimal.Decimal, error) {
	if err := CheckMoneyScale("amount", amount); err != nil {
		return decimal.Decimal{}, err
	}
	if txType == TransactionTypeAdjustment {
		if amount.IsNegative() {
			return decimal.Decimal{}, fmt.Errorf("%w: adjustment amount cannot be negative", ErrInvalidArgument)
		}
		return amount, nil
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidArgument)
	}

	switch txType {
	case TransactionTypeDeposit, TransactionTypeCallEarning, TransactionTypeRefund:
		return before.Add(amount), nil
	case TransactionTypeWithdrawal, TransactionTypeCallPayment, TransactionTypeCommission:
		return before.Sub(amount), nil
	case TransactionTypeDebtPayment:
		return before, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidArgument, txType)
	}
}

// TransactionFilter narrows ledger queries. Zero values mean no restriction.
type TransactionFilter struct {
	Type   TransactionType
	Status TransactionStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// LedgerEntry is what a caller asks the ledger to record. RelatedID is routed
// to the deposit, withdrawal or call reference according to Type.
type LedgerEntry struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Status      TransactionStatus
	Description string
	RelatedID   string
	DebtorID    string
	Bank        BankDetails
	Notes       string
}
