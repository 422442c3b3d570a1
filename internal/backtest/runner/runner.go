// Package runner executes independent backtests concurrently.
package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	engine_v1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StrategyFactory builds a fresh strategy for one job.
type StrategyFactory func() (strategy.Strategy, error)

// Job is one backtest. Series may be shared between jobs.
type Job struct {
	Name        string
	Series      *types.BarSeries
	NewStrategy StrategyFactory
	Config      engine_v1.BacktestEngineV1Config
	Callbacks   engine.LifecycleCallbacks
}

// Options controls a batch of jobs.
type Options struct {
	// Concurrency caps the number of jobs running at once. Zero means
	// GOMAXPROCS.
	Concurrency int
	Logger      *logger.Logger
}

// Result is the outcome of one job.
type Result struct {
	Name   string
	Result types.BacktestResult
	Report analytics.Report
}

// Run executes jobs and returns their results in job order. The first failing
// job cancels the others and its error is returned.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range jobs {
		g.Go(func() error {
			result, err := runJob(gctx, job, log)
			if err != nil {
				log.Debug("Backtest job failed", zap.String("job", job.Name), zap.Error(err))

				return fmt.Errorf("job %s: %w", job.Name, err)
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("Backtest jobs completed", zap.Int("jobs", len(jobs)))

	return results, nil
}

func runJob(ctx context.Context, job Job, log *logger.Logger) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	strat, err := job.NewStrategy()
	if err != nil {
		return Result{}, err
	}

	backtest, err := engine_v1.NewBacktestEngineV1WithConfig(job.Config, log)
	if err != nil {
		return Result{}, err
	}

	result, err := backtest.Run(ctx, job.Series, strat, job.Callbacks)
	if err != nil {
		return Result{}, err
	}

	report, err := analytics.Analyze(analytics.InputFromResult(result), job.Config.AnalyticsConfig())
	if err != nil {
		return Result{}, err
	}

	return Result{Name: job.Name, Result: result, Report: report}, nil
}
