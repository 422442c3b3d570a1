package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	engine_types "github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/report"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run one strategy over a data file",
		Flags: append(dataFlags(),
			&cli.StringFlag{
				Name:     "strategy",
				Aliases:  []string{"s"},
				Usage:    "Registered strategy name",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "Strategy params YAML file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory for result files; nothing is written when empty",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
		),
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	config, err := loadEngineConfig(cmd)
	if err != nil {
		return err
	}

	params, err := readParams(cmd.String("params"))
	if err != nil {
		return err
	}

	strat, err := strategy.NewDefaultRegistry().Create(cmd.String("strategy"), params)
	if err != nil {
		return err
	}

	dataPath := cmd.String("data")

	series, err := loadSeries(dataPath, cmd.String("interval"), config, log)
	if err != nil {
		return err
	}

	backtest, err := engine.NewBacktestEngineV1WithConfig(config, log)
	if err != nil {
		return err
	}

	var callbacks engine_types.LifecycleCallbacks
	if !cmd.Bool("no-progress") {
		callbacks = progressCallbacks(os.Stderr)
	}

	result, err := backtest.Run(ctx, series, strat, callbacks)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	rpt, err := analytics.Analyze(analytics.InputFromResult(result), config.AnalyticsConfig())
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	fmt.Fprintf(out, "%s on %s (%d bars)\n", result.Strategy, result.Symbol, series.Len())
	fmt.Fprintln(out, report.RenderSummary(rpt))
	fmt.Fprintln(out, report.RenderCalendar(rpt))

	if dir := cmd.String("output"); dir != "" {
		folder := engine.GetResultFolder(dir, result.Strategy, dataPath, config)
		if err := writeArtifacts(folder, dataPath, params, result, rpt, log); err != nil {
			return err
		}

		fmt.Fprintf(out, "Results written to %s\n", folder)
	}

	return nil
}

// progressCallbacks drives a progress bar from the engine lifecycle.
func progressCallbacks(w io.Writer) engine_types.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onStart := engine_types.OnBacktestStartCallback(func(runID string, strategyName string, totalBars int) error {
		bar = progressbar.NewOptions(totalBars,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(strategyName),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(50*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)

		return nil
	})

	onProcess := engine_types.OnProcessDataCallback(func(current int, total int) error {
		return bar.Set(current)
	})

	onEnd := engine_types.OnBacktestEndCallback(func(err error) {
		if bar != nil {
			_ = bar.Finish()
		}
	})

	return engine_types.LifecycleCallbacks{
		OnBacktestStart: &onStart,
		OnProcessData:   &onProcess,
		OnBacktestEnd:   &onEnd,
	}
}

// writeArtifacts exports the run into folder: parquet tables, CSV copies,
// the analytics report and the run stats.
func writeArtifacts(folder string, dataPath string, params []byte, result types.BacktestResult, rpt analytics.Report, log *logger.Logger) error {
	state, err := engine.NewBacktestState(log)
	if err != nil {
		return err
	}
	defer state.Close()

	if err := state.Initialize(); err != nil {
		return err
	}

	if err := state.Record(result); err != nil {
		return err
	}

	paths, err := state.Write(folder)
	if err != nil {
		return err
	}

	writers := []struct {
		name  string
		write func(path string) error
	}{
		{"report.yaml", func(p string) error { return report.WriteStats(p, rpt) }},
		{"trades.csv", func(p string) error { return report.WriteTradesCSV(p, result.Trades) }},
		{"equity.csv", func(p string) error { return report.WriteEquityCSV(p, result.EquityCurve) }},
		{"marks.csv", func(p string) error { return report.WriteMarksCSV(p, result.Marks) }},
		{"monthly.csv", func(p string) error { return report.WritePeriodsCSV(p, rpt.MonthlyReturns) }},
		{"weekly.csv", func(p string) error { return report.WritePeriodsCSV(p, rpt.WeeklyReturns) }},
	}

	for _, w := range writers {
		if err := w.write(filepath.Join(folder, w.name)); err != nil {
			return err
		}
	}

	stats := types.RunStats{
		ID:             result.RunID,
		EngineVersion:  version.GetVersion(),
		Timestamp:      time.Now().UTC(),
		Symbol:         result.Symbol,
		Strategy:       types.StrategyInfo{Name: result.Strategy, Params: decodeParams(params)},
		Bars:           len(result.EquityCurve),
		Metrics:        rpt.Flatten(),
		TradesFilePath: paths["trades"],
		EquityFilePath: paths["equity"],
		MarksFilePath:  paths["marks"],
		DataPath:       dataPath,
	}

	if position := result.OpenPosition(); position.IsSome() {
		p := position.Unwrap()
		stats.OpenPosition = &p
	}

	if err := types.WriteRunStats(filepath.Join(folder, "stats.yaml"), []types.RunStats{stats}); err != nil {
		return err
	}

	log.Info("Wrote backtest artifacts", zap.String("folder", folder), zap.String("run_id", result.RunID))

	return nil
}

func decodeParams(params []byte) map[string]any {
	if len(params) == 0 {
		return nil
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(params, &decoded); err != nil {
		return nil
	}

	return decoded
}
