package commission_fee

import "github.com/shopspring/decimal"

// ProportionalCommissionFee charges a fixed fraction of notional.
type ProportionalCommissionFee struct {
	rate decimal.Decimal
}

func NewProportionalCommissionFee(rate float64) CommissionFee {
	return &ProportionalCommissionFee{rate: decimal.NewFromFloat(rate)}
}

func (c *ProportionalCommissionFee) Calculate(notional decimal.Decimal) decimal.Decimal {
	if notional.IsNegative() {
		return decimal.Zero
	}

	return notional.Mul(c.rate)
}

// MinimumCommissionFee charges a fraction of notional but never less than a
// fixed minimum per order.
type MinimumCommissionFee struct {
	rate    decimal.Decimal
	minimum decimal.Decimal
}

func NewMinimumCommissionFee(rate float64, minimum float64) CommissionFee {
	return &MinimumCommissionFee{
		rate:    decimal.NewFromFloat(rate),
		minimum: decimal.NewFromFloat(minimum),
	}
}

func (c *MinimumCommissionFee) Calculate(notional decimal.Decimal) decimal.Decimal {
	if notional.IsNegative() {
		return decimal.Zero
	}

	return decimal.Max(notional.Mul(c.rate), c.minimum)
}
