package commission_fee

import "github.com/shopspring/decimal"

type CommissionFee interface {
	// Calculate returns the commission charged on an order of the given notional value
	Calculate(notional decimal.Decimal) decimal.Decimal
}

type FeeModel string

const (
	FeeModelProportional FeeModel = "proportional"
	FeeModelMinimum      FeeModel = "proportional_with_minimum"
	FeeModelZero         FeeModel = "zero"
)

var AllFeeModels = []any{
	FeeModelProportional,
	FeeModelMinimum,
	FeeModelZero,
}

// GetCommissionFeeHandler returns the fee model for the given name. Unknown
// names fall back to a proportional fee.
func GetCommissionFeeHandler(model FeeModel, rate float64, minimum float64) CommissionFee {
	switch model {
	case FeeModelZero:
		return NewZeroCommissionFee()
	case FeeModelMinimum:
		return NewMinimumCommissionFee(rate, minimum)
	default:
		return NewProportionalCommissionFee(rate)
	}
}
