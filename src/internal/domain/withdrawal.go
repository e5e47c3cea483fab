package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "PENDING"
	WithdrawalStatusApproved WithdrawalStatus = "APPROVED"
	WithdrawalStatusRejected WithdrawalStatus = "REJECTED"
)

func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusApproved || s == WithdrawalStatusRejected
}

type Withdrawal struct {
	ID        string
	UserID    string
	Sum       decimal.Decimal
	Status    WithdrawalStatus
	Bank      BankDetails
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextWithdrawalStatus validates an administrator decision against the
// current status. changed is false when the decision repeats the current
// terminal status.
func NextWithdrawalStatus(current, decision WithdrawalStatus) (changed bool, err error) {
	if !decision.Terminal() {
		return false, fmt.Errorf("%w: status must be APPROVED or REJECTED", ErrInvalidArgument)
	}
	if current == decision {
		return false, nil
	}
	if current.Terminal() {
		return false, fmt.Errorf("%w: withdrawal already %s", ErrConflict, current)
	}
	return true, nil
}

type WithdrawalFilter struct {
	UserID string
	Status WithdrawalStatus
	Limit  int
	Offset int
}
