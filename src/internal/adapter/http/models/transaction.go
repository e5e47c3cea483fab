package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type TransactionResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	TransactionType string  `json:"transactionType"`
	Amount          string  `json:"amount"`
	BalanceBefore   string  `json:"balanceBefore"`
	BalanceAfter    string  `json:"balanceAfter"`
	Status          string  `json:"status"`
	DepositID       *string `json:"depositId,omitempty"`
	WithdrawalID    *string `json:"withdrawalId,omitempty"`
	CallRecordID    *string `json:"callRecordId,omitempty"`
	DebtorID        *string `json:"debtorId,omitempty"`
	Description     string  `json:"description,omitempty"`
	AccountHolder   string  `json:"accountHolder,omitempty"`
	BankName        string  `json:"bankName,omitempty"`
	AccountNumber   string  `json:"accountNumber,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

func NewTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		TransactionType: string(t.Type),
		Amount:          formatMoney(t.Amount),
		BalanceBefore:   formatMoney(t.BalanceBefore),
		BalanceAfter:    formatMoney(t.BalanceAfter),
		Status:          string(t.Status),
		DepositID:       t.DepositID,
		WithdrawalID:    t.WithdrawalID,
		CallRecordID:    t.CallRecordID,
		DebtorID:        t.DebtorID,
		Description:     t.Description,
		AccountHolder:   t.Bank.AccountHolder,
		BankName:        t.Bank.BankName,
		AccountNumber:   t.Bank.AccountNumber,
		Notes:           t.Notes,
		CreatedAt:       formatTime(t.CreatedAt),
	}
}

func NewTransactionResponses(entries []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewTransactionResponse(entry))
	}
	return out
}

// ParseTransactionFilter reads type, status, from, to, limit and offset
// query parameters. Dates are RFC3339.
func ParseTransactionFilter(q url.Values) (domain.TransactionFilter, error) {
	var (
		filter domain.TransactionFilter
		errs   validationErrors
	)

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		filter.Type = domain.TransactionType(strings.ToUpper(v))
		if !filter.Type.Valid() {
			errs.add("type is not a known transaction type")
		}
	}
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		filter.Status = domain.TransactionStatus(strings.ToUpper(v))
		if !filter.Status.Valid() {
			errs.add("status is not a known transaction status")
		}
	}
	filter.From = parseTimeParam(q, "from", &errs)
	filter.To = parseTimeParam(q, "to", &errs)
	filter.Limit = parseIntParam(q, "limit", &errs)
	filter.Offset = parseIntParam(q, "offset", &errs)

	return filter, errs.err()
}

func parseTimeParam(q url.Values, key string, errs *validationErrors) *time.Time {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, v)
	if err != nil {
		errs.add(key + " must be an RFC3339 timestamp")
		return nil
	}
	return &parsed
}

func parseIntParam(q url.Values, key string, errs *validationErrors) int {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		errs.add(key + " must be a non-negative integer")
		return 0
	}
	return parsed
}
