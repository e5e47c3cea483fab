package models

import (
	"strings"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Phone     string   `json:"phone"`
	Roles     []string `json:"roles"`
}

func (r CreateAccountRequest) Validate() error {
	var errs validationErrors

	if strings.TrimSpace(r.Phone) == "" {
		errs.add("phone is required")
	}
	if len(r.Roles) == 0 {
		errs.add("roles must contain at least one role")
	}
	for _, role := range r.Roles {
		if !domain.Role(strings.ToUpper(strings.TrimSpace(role))).Valid() {
			errs.add("roles must be CLIENT, INTERPRETER or ADMINISTRATOR")
			break
		}
	}

	return errs.err()
}

func (r CreateAccountRequest) ToDomain() domain.Account {
	roles := make([]domain.Role, 0, len(r.Roles))
	for _, role := range r.Roles {
		roles = append(roles, domain.Role(strings.ToUpper(strings.TrimSpace(role))))
	}
	return domain.Account{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Roles:     roles,
	}
}

type AccountResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Phone     string   `json:"phone"`
	Balance   string   `json:"balance"`
	Debt      string   `json:"debt"`
	IsDebtor  bool     `json:"isDebtor"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func NewAccountResponse(a domain.Account) AccountResponse {
	roles := make([]string, 0, len(a.Roles))
	for _, role := range a.Roles {
		roles = append(roles, string(role))
	}
	return AccountResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		Balance:   formatMoney(a.Balance),
		Debt:      formatMoney(a.Debt),
		IsDebtor:  a.IsDebtor,
		Roles:     roles,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
}

// AmountRequest is the body of debt assignments and refunds.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

func (r AmountRequest) Validate() error {
	var errs validationErrors
	if !r.Amount.IsPositive() {
		errs.add("amount must be greater than zero")
	}
	errs.money("amount", r.Amount)
	return errs.err()
}

type AdjustBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
	Note    string          `json:"note,omitempty"`
}

func (r AdjustBalanceRequest) Validate() error {
	var errs validationErrors
	if r.Balance.IsNegative() {
		errs.add("balance cannot be negative")
	}
	errs.money("balance", r.Balance)
	if strings.TrimSpace(r.Note) == "" {
		errs.add("note is required")
	}
	return errs.err()
}
