package engine

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// BacktestMarker records every non-HOLD decision of one run together with
// the ledger's response.
type BacktestMarker struct {
	marks []types.Mark
}

// NewBacktestMarker creates an empty marker.
func NewBacktestMarker() *BacktestMarker {
	return &BacktestMarker{}
}

// Mark records signal at bar index.
func (m *BacktestMarker) Mark(index int, bar types.MarketData, signal types.SignalType, execution Execution) {
	m.marks = append(m.marks, types.Mark{
		Index:    index,
		Time:     bar.Time,
		Signal:   signal,
		Price:    bar.Close,
		Executed: execution.Executed,
		Reason:   execution.Reason,
	})
}

// GetMarkers returns the recorded marks.
func (m *BacktestMarker) GetMarkers() []types.Mark {
	return m.marks
}
