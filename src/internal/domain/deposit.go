package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "PENDING"
	DepositStatusCompleted DepositStatus = "COMPLETED"
	DepositStatusRejected  DepositStatus = "REJECTED"
)

func (s DepositStatus) Terminal() bool {
	return s == DepositStatusCompleted || s == DepositStatusRejected
}

type Deposit struct {
	ID        string
	UserID    string
	Sum       decimal.Decimal
	Status    DepositStatus
	Bank      BankDetails
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NextDepositStatus(current, decision DepositStatus) (changed bool, err error) {
	if !decision.Terminal() {
		return false, fmt.Errorf("%w: status must be COMPLETED or REJECTED", ErrInvalidArgument)
	}
	if current == decision {
		return false, nil
	}
	if current.Terminal() {
		return false, fmt.Errorf("%w: deposit already %s", ErrConflict, current)
	}
	return true, nil
}

// DebtSplit divides a deposit between outstanding debt and balance credit.
type DebtSplit struct {
	AppliedToDebt decimal.Decimal
	Remainder     decimal.Decimal
}

func SplitDeposit(sum, debt decimal.Decimal) DebtSplit {
	applied := decimal.Min(sum, debt)
	if applied.IsNegative() {
		applied = decimal.Zero
	}
	return DebtSplit{
		AppliedToDebt: applied,
		Remainder:     sum.Sub(applied),
	}
}
