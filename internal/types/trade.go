package types

import "time"

// Trade is a closed round trip. It is appended to the trade log on exit and
// never changed afterwards.
type Trade struct {
	EntryTime  time.Time `csv:"entry_time" yaml:"entry_time"`
	EntryPrice float64   `csv:"entry_price" yaml:"entry_price"`
	ExitTime   time.Time `csv:"exit_time" yaml:"exit_time"`
	ExitPrice  float64   `csv:"exit_price" yaml:"exit_price"`
	Quantity   float64   `csv:"quantity" yaml:"quantity"`
	// CommissionPaid is entry plus exit commission.
	CommissionPaid float64 `csv:"commission_paid" yaml:"commission_paid"`
	// RealizedPnL is exit proceeds minus exit commission minus the entry cost basis.
	RealizedPnL float64 `csv:"realized_pnl" yaml:"realized_pnl"`
	// ReturnPct is RealizedPnL over the entry cost basis, in percent.
	ReturnPct float64 `csv:"return_pct" yaml:"return_pct"`
}

// HoldingTime returns how long the position was held.
func (t Trade) HoldingTime() time.Duration {
	return t.ExitTime.Sub(t.EntryTime)
}

// IsWin reports whether the trade made money after commissions.
func (t Trade) IsWin() bool {
	return t.RealizedPnL > 0
}
