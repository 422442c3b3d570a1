package types

import "time"

// EquityPoint is the account value sampled at one bar's close.
type EquityPoint struct {
	Time          time.Time `csv:"time" yaml:"time"`
	Cash          float64   `csv:"cash" yaml:"cash"`
	PositionValue float64   `csv:"position_value" yaml:"position_value"`
	TotalEquity   float64   `csv:"total_equity" yaml:"total_equity"`
}
