package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// BacktestResult is everything a single run produces.
type BacktestResult struct {
	RunID         string
	Strategy      string
	Symbol        string
	StartedAt     time.Time
	EquityCurve   []EquityPoint
	Trades        []Trade
	Marks         []Mark
	FinalPosition Position
}

// OpenPosition returns the final position if the run ended long.
func (r BacktestResult) OpenPosition() optional.Option[Position] {
	if r.FinalPosition.IsLong() {
		return optional.Some(r.FinalPosition)
	}

	return optional.None[Position]()
}

// FinalEquity returns the last sampled total equity, or 0 for an empty curve.
func (r BacktestResult) FinalEquity() float64 {
	if len(r.EquityCurve) == 0 {
		return 0
	}

	return r.EquityCurve[len(r.EquityCurve)-1].TotalEquity
}
