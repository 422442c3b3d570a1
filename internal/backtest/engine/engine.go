package engine

import (
	"context"

	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Lifecycle callback types for a backtest run.
// Callbacks with an error return abort the run when they return an error.

// OnBacktestStartCallback is called once before the first bar is processed.
// runID is generated before processing starts.
type OnBacktestStartCallback func(runID string, strategyName string, totalBars int) error

// OnBacktestEndCallback is called when the run completes (always called via defer).
type OnBacktestEndCallback func(err error)

// OnProcessDataCallback is called after each bar is applied to the ledger.
type OnProcessDataCallback func(current int, total int) error

// OnTradeCallback is called whenever a position is closed.
type OnTradeCallback func(trade types.Trade) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnProcessData   *OnProcessDataCallback
	OnTrade         *OnTradeCallback
}

type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// Run replays series through strategy and returns the equity curve, the
	// trade log and the final position. The strategy instance must not be
	// shared with another concurrent run.
	// The context can be used to cancel the backtest between bars.
	Run(ctx context.Context, series *types.BarSeries, strategy strategy.Strategy, callbacks LifecycleCallbacks) (types.BacktestResult, error)
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
