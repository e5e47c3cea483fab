package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleClient        Role = "CLIENT"
	RoleInterpreter   Role = "INTERPRETER"
	RoleAdministrator Role = "ADMINISTRATOR"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleInterpreter, RoleAdministrator:
		return true
	}
	return false
}

// Account is a platform user as seen by the ledger. Balance and Debt are never
// negative; IsDebtor is set while Debt is outstanding.
type Account struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Balance   decimal.Decimal
	Debt      decimal.Decimal
	IsDebtor  bool
	Roles     []Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}
