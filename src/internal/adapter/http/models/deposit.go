package models

import (
	"strings"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateDepositRequest struct {
	Sum           decimal.Decimal `json:"sum"`
	AccountHolder string          `json:"accountHolder"`
	BankName      string          `json:"bankName"`
}

func (r CreateDepositRequest) Validate() error {
	var errs validationErrors

	if !r.Sum.IsPositive() {
		errs.add("sum must be greater than zero")
	}
	errs.money("sum", r.Sum)
	if strings.TrimSpace(r.AccountHolder) == "" {
		errs.add("accountHolder is required")
	}

	return errs.err()
}

func (r CreateDepositRequest) Bank() domain.BankDetails {
	return domain.BankDetails{
		AccountHolder: r.AccountHolder,
		BankName:      r.BankName,
	}
}

type DepositResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Sum           string `json:"sum"`
	Status        string `json:"status"`
	AccountHolder string `json:"accountHolder"`
	BankName      string `json:"bankName,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func NewDepositResponse(d domain.Deposit) DepositResponse {
	return DepositResponse{
		ID:            d.ID,
		UserID:        d.UserID,
		Sum:           formatMoney(d.Sum),
		Status:        string(d.Status),
		AccountHolder: d.Bank.AccountHolder,
		BankName:      d.Bank.BankName,
		CreatedAt:     formatTime(d.CreatedAt),
		UpdatedAt:     formatTime(d.UpdatedAt),
	}
}
