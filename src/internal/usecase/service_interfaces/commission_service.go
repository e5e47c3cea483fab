package service_interfaces

import "github.com/shopspring/decimal"

type CommissionService interface {
	Commission(sum decimal.Decimal) decimal.Decimal
}
