package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/runner"
	"github.com/rxtech-lab/argo-backtest/internal/report"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/urfave/cli/v3"
)

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Run several strategies over one data file and compare them",
		Flags: append(dataFlags(),
			&cli.StringSliceFlag{
				Name:     "strategy",
				Aliases:  []string{"s"},
				Usage:    "Strategy as `name` or name=params.yaml; repeat for each strategy",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Maximum number of strategies running at once (0 = number of CPUs)",
			},
		),
		Action: compareAction,
	}
}

// parseStrategySpec splits "name=params.yaml" into its parts.
func parseStrategySpec(spec string) (name string, paramsPath string) {
	name, paramsPath, _ = strings.Cut(spec, "=")

	return strings.TrimSpace(name), strings.TrimSpace(paramsPath)
}

func compareAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	config, err := loadEngineConfig(cmd)
	if err != nil {
		return err
	}

	series, err := loadSeries(cmd.String("data"), cmd.String("interval"), config, log)
	if err != nil {
		return err
	}

	registry := strategy.NewDefaultRegistry()
	specs := cmd.StringSlice("strategy")
	jobs := make([]runner.Job, 0, len(specs))

	for i, spec := range specs {
		name, paramsPath := parseStrategySpec(spec)

		params, err := readParams(paramsPath)
		if err != nil {
			return err
		}

		// fail fast on unknown names and bad params before any job starts
		if _, err := registry.Create(name, params); err != nil {
			return err
		}

		jobs = append(jobs, runner.Job{
			Name:   fmt.Sprintf("%d:%s", i+1, name),
			Series: series,
			NewStrategy: func() (strategy.Strategy, error) {
				return registry.Create(name, params)
			},
			Config: config,
		})
	}

	results, err := runner.Run(ctx, jobs, runner.Options{
		Concurrency: int(cmd.Int("concurrency")),
		Logger:      log,
	})
	if err != nil {
		return err
	}

	names := make([]string, len(results))
	reports := make([]analytics.Report, len(results))

	for i, r := range results {
		names[i] = r.Name
		reports[i] = r.Report
	}

	fmt.Fprintln(cmd.Root().Writer, report.RenderComparison(names, reports))

	return nil
}
