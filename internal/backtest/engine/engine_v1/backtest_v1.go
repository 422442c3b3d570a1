package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

// BacktestEngineV1 replays a bar series through a strategy. Run keeps all
// per-run state on the stack, so one initialized engine can serve concurrent
// runs as long as every run has its own strategy instance.
type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	log           *logger.Logger
	commissionFee commission_fee.CommissionFee
	initialized   bool
}

// NewBacktestEngineV1 returns an engine that must be initialized before Run.
func NewBacktestEngineV1() engine.Engine {
	return &BacktestEngineV1{
		config:        EmptyConfig(),
		log:           nil,
		commissionFee: nil,
		initialized:   false,
	}
}

// NewBacktestEngineV1WithConfig returns an engine initialized from an already
// parsed configuration. A nil logger is replaced with a no-op logger.
func NewBacktestEngineV1WithConfig(config BacktestEngineV1Config, log *logger.Logger) (*BacktestEngineV1, error) {
	b := &BacktestEngineV1{
		config: EmptyConfig(),
		log:    log,
	}

	if err := b.InitializeWithConfig(config); err != nil {
		return nil, err
	}

	return b, nil
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	parsed, err := ParseConfig(config)
	if err != nil {
		return err
	}

	if b.log == nil {
		var loggerError error

		b.log, loggerError = logger.NewLogger()
		if loggerError != nil {
			return loggerError
		}
	}

	return b.InitializeWithConfig(parsed)
}

// InitializeWithConfig validates config and prepares the commission fee model.
func (b *BacktestEngineV1) InitializeWithConfig(config BacktestEngineV1Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if b.log == nil {
		b.log = logger.NewNopLogger()
	}

	b.config = config
	b.commissionFee = commission_fee.GetCommissionFeeHandler(config.CommissionFee, config.CommissionRate, config.CommissionMinimum)
	b.initialized = true

	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_capital", config.InitialCapital),
		zap.Float64("commission_rate", config.CommissionRate),
		zap.String("commission_fee", string(config.CommissionFee)),
		zap.Float64("position_fraction", config.PositionFraction),
		zap.Int("decimal_precision", config.DecimalPrecision),
	)

	return nil
}

// Config returns the active configuration.
func (b *BacktestEngineV1) Config() BacktestEngineV1Config {
	return b.config
}

// RunBars validates raw bars and runs them. A malformed bar is reported with
// its index.
func (b *BacktestEngineV1) RunBars(ctx context.Context, bars []types.MarketData, strat strategy.Strategy, callbacks engine.LifecycleCallbacks) (types.BacktestResult, error) {
	series, err := types.NewBarSeries(bars)
	if err != nil {
		return types.BacktestResult{}, err
	}

	return b.Run(ctx, series, strat, callbacks)
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, series *types.BarSeries, strat strategy.Strategy, callbacks engine.LifecycleCallbacks) (result types.BacktestResult, err error) {
	if callbacks.OnBacktestEnd != nil {
		defer func() {
			(*callbacks.OnBacktestEnd)(err)
		}()
	}

	if err := b.preRunCheck(series, strat); err != nil {
		return types.BacktestResult{}, err
	}

	runID := uuid.New().String()
	total := series.Len()
	warmUp := strat.WarmUp()

	symbol := series.Symbol()
	if b.config.Symbol != "" {
		symbol = b.config.Symbol
	}

	b.log.Debug("Running strategy",
		zap.String("run_id", runID),
		zap.String("strategy", strat.Name()),
		zap.String("symbol", symbol),
		zap.Int("bars", total),
		zap.Int("warm_up", warmUp),
	)

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(runID, strat.Name(), total); err != nil {
			return types.BacktestResult{}, errors.Wrap(errors.ErrCodeCallbackFailed, "backtest start callback failed", err)
		}
	}

	ledger := NewLedger(b.config.InitialCapital, b.commissionFee, b.config.PositionFraction, b.config.DecimalPrecision)
	marker := NewBacktestMarker()
	curve := make([]types.EquityPoint, 0, total)

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			b.log.Debug("Backtest cancelled", zap.String("run_id", runID), zap.Int("bar", i))

			return types.BacktestResult{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", err)
		}

		bar := series.At(i)

		signal := types.SignalTypeHold
		if i >= warmUp {
			signal = strat.Decide(series.History(i))
		}

		point, execution, err := ledger.Apply(signal, bar)
		if err != nil {
			return types.BacktestResult{}, errors.Wrapf(errors.ErrCodeInvalidSignal, err, "strategy %s returned an invalid signal at bar %d", strat.Name(), i)
		}

		curve = append(curve, point)

		if signal != types.SignalTypeHold {
			marker.Mark(i, bar, signal, execution)

			if err := b.onExecution(runID, i, signal, execution, ledger, callbacks); err != nil {
				return types.BacktestResult{}, err
			}
		}

		if callbacks.OnProcessData != nil {
			if err := (*callbacks.OnProcessData)(i+1, total); err != nil {
				return types.BacktestResult{}, errors.Wrap(errors.ErrCodeCallbackFailed, "process data callback failed", err)
			}
		}
	}

	result = types.BacktestResult{
		RunID:         runID,
		Strategy:      strat.Name(),
		Symbol:        symbol,
		StartedAt:     series.At(0).Time,
		EquityCurve:   curve,
		Trades:        ledger.Trades(),
		Marks:         marker.GetMarkers(),
		FinalPosition: ledger.Position(),
	}

	b.log.Info("Backtest completed",
		zap.String("run_id", runID),
		zap.String("strategy", result.Strategy),
		zap.Int("bars", total),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("final_equity", result.FinalEquity()),
		zap.Bool("open_position", result.FinalPosition.IsLong()),
	)

	return result, nil
}

func (b *BacktestEngineV1) onExecution(runID string, index int, signal types.SignalType, execution Execution, ledger *Ledger, callbacks engine.LifecycleCallbacks) error {
	if !execution.Executed {
		b.log.Debug("Signal ignored",
			zap.String("run_id", runID),
			zap.Int("bar", index),
			zap.String("signal", string(signal)),
			zap.String("reason", execution.Reason),
		)

		return nil
	}

	if signal != types.SignalTypeSell {
		position := ledger.Position()
		b.log.Debug("Position opened",
			zap.String("run_id", runID),
			zap.Int("bar", index),
			zap.Float64("quantity", position.Quantity),
			zap.Float64("price", position.AverageEntryPrice),
		)

		return nil
	}

	trade, ok := ledger.lastTrade()
	if !ok {
		return errors.New(errors.ErrCodeBacktestStateError, fmt.Sprintf("sell at bar %d executed without a trade", index))
	}

	b.log.Debug("Position closed",
		zap.String("run_id", runID),
		zap.Int("bar", index),
		zap.Float64("quantity", trade.Quantity),
		zap.Float64("realized_pnl", trade.RealizedPnL),
		zap.Duration("holding_time", trade.HoldingTime()),
	)

	if callbacks.OnTrade != nil {
		if err := (*callbacks.OnTrade)(trade); err != nil {
			return errors.Wrap(errors.ErrCodeCallbackFailed, "trade callback failed", err)
		}
	}

	return nil
}

func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", fmt.Errorf("failed to generate schema: %w", err)
	}

	return schema, nil
}

func (b *BacktestEngineV1) preRunCheck(series *types.BarSeries, strat strategy.Strategy) error {
	if !b.initialized {
		return errors.New(errors.ErrCodeBacktestNotInitialized, "backtest engine is not initialized")
	}

	if strat == nil {
		b.log.Error("No strategy provided")

		return errors.New(errors.ErrCodeBacktestNoStrategy, "no strategy provided")
	}

	if series == nil || series.Len() == 0 {
		b.log.Error("No market data provided")

		return errors.New(errors.ErrCodeEmptySeries, "bar series is empty")
	}

	return nil
}
