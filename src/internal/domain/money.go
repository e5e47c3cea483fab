package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every stored amount carries.
const MoneyScale = 2

// HasMoneyScale reports whether amount is representable in the ledger's
// NUMERIC(12,2) columns without rounding.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyScale))
}

// CheckMoneyScale rejects amounts with sub-cent precision. Storing them
// would round each column separately and break balanceAfter.
func CheckMoneyScale(field string, amount decimal.Decimal) error {
	if !HasMoneyScale(amount) {
		return fmt.Errorf("%w: %s must have at most %d decimal places", ErrInvalidArgument, field, MoneyScale)
	}
	return nil
}
