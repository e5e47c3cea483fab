package models

import (
	"net/url"
	"strings"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateWithdrawalRequest struct {
	Sum           decimal.Decimal `json:"sum"`
	AccountHolder string          `json:"accountHolder"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
}

func (r CreateWithdrawalRequest) Validate() error {
	var errs validationErrors

	if !r.Sum.IsPositive() {
		errs.add("sum must be greater than zero")
	}
	errs.money("sum", r.Sum)
	if strings.TrimSpace(r.AccountHolder) == "" {
		errs.add("accountHolder is required")
	}
	if strings.TrimSpace(r.BankName) == "" {
		errs.add("bankName is required")
	}
	if strings.TrimSpace(r.AccountNumber) == "" {
		errs.add("accountNumber is required")
	}

	return errs.err()
}

func (r CreateWithdrawalRequest) Bank() domain.BankDetails {
	return domain.BankDetails{
		AccountHolder: r.AccountHolder,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
	}
}

// StatusRequest carries an administrator decision on a withdrawal or deposit.
type StatusRequest struct {
	Status string `json:"status"`
}

func (r StatusRequest) Validate() error {
	var errs validationErrors
	if strings.TrimSpace(r.Status) == "" {
		errs.add("status is required")
	}
	return errs.err()
}

type WithdrawalResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Sum           string `json:"sum"`
	Status        string `json:"status"`
	AccountHolder string `json:"accountHolder"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func NewWithdrawalResponse(w domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:            w.ID,
		UserID:        w.UserID,
		Sum:           formatMoney(w.Sum),
		Status:        string(w.Status),
		AccountHolder: w.Bank.AccountHolder,
		BankName:      w.Bank.BankName,
		AccountNumber: w.Bank.AccountNumber,
		CreatedAt:     formatTime(w.CreatedAt),
		UpdatedAt:     formatTime(w.UpdatedAt),
	}
}

func NewWithdrawalResponses(items []domain.Withdrawal) []WithdrawalResponse {
	out := make([]WithdrawalResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewWithdrawalResponse(item))
	}
	return out
}

func ParseWithdrawalFilter(q url.Values) (domain.WithdrawalFilter, error) {
	var errs validationErrors

	filter := domain.WithdrawalFilter{
		UserID: strings.TrimSpace(q.Get("userId")),
		Status: domain.WithdrawalStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
		Limit:  parseIntParam(q, "limit", &errs),
		Offset: parseIntParam(q, "offset", &errs),
	}
	return filter, errs.err()
}
