package services

import (
	"github.com/shopspring/decimal"
)

// CommissionService derives the platform cut of a call when the call record
// does not carry one.
type CommissionService struct {
	percent decimal.Decimal
}

func NewCommissionService(commissionPercent float64) *CommissionService {
	return &CommissionService{
		percent: decimal.NewFromFloat(commissionPercent).Div(decimal.NewFromInt(100)),
	}
}

// Commission returns sum * percent rounded to cents, never more than sum.
func (s *CommissionService) Commission(sum decimal.Decimal) decimal.Decimal {
	if !sum.IsPositive() {
		return decimal.Zero
	}
	commission := sum.Mul(s.percent).Round(2)
	if commission.GreaterThan(sum) {
		return sum
	}
	return commission
}
