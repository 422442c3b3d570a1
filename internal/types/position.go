package types

import "time"

type PositionSide string

const (
	PositionSideFlat PositionSide = "FLAT"
	PositionSideLong PositionSide = "LONG"
)

// Position is the single long-or-flat holding of a run.
type Position struct {
	Side              PositionSide `yaml:"side"`
	Quantity          float64      `yaml:"quantity"`
	AverageEntryPrice float64      `yaml:"average_entry_price"`
	// CostBasis is entry notional plus entry commission.
	CostBasis       float64   `yaml:"cost_basis"`
	EntryCommission float64   `yaml:"entry_commission"`
	EntryTime       time.Time `yaml:"entry_time"`
	// UnrealizedPnL is the mark-to-market value at the last close minus CostBasis.
	UnrealizedPnL float64 `yaml:"unrealized_pnl"`
}

// IsLong reports whether the position is open.
func (p Position) IsLong() bool {
	return p.Side == PositionSideLong
}
