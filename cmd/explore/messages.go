package main

import (
	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// RunProgressMsg reports how many bars the running backtest has processed.
type RunProgressMsg struct {
	Current int
	Total   int
}

// RunFinishedMsg carries the result of a completed backtest.
type RunFinishedMsg struct {
	Result types.BacktestResult
	Report analytics.Report
}

// RunErrorMsg indicates the backtest failed or was cancelled.
type RunErrorMsg struct {
	Err error
}
