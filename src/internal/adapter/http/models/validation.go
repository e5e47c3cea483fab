package models

import (
	"errors"
	"strings"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type validationErrors []string

func (v *validationErrors) add(msg string) {
	*v = append(*v, msg)
}

func (v validationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return errors.New(strings.Join(v, "; "))
}

func (v *validationErrors) money(field string, amount decimal.Decimal) {
	if !domain.HasMoneyScale(amount) {
		v.add(field + " must have at most 2 decimal places")
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
