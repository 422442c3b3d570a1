package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/report"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/urfave/cli/v3"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Print the metrics of a stats.yaml file written by run",
		ArgsUsage: "<stats.yaml>",
		Action:    statsAction,
	}
}

func statsAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("stats file path is required")
	}

	stats, err := types.ReadRunStats(path)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer

	for _, s := range stats {
		if err := version.CheckStatsCompatibility(version.GetVersion(), s.EngineVersion); err != nil {
			return fmt.Errorf("cannot read run %s: %w", s.ID, err)
		}

		fmt.Fprintf(out, "%s %s on %s (%d bars)\n", s.ID, s.Strategy.Name, s.Symbol, s.Bars)
		fmt.Fprintln(out, report.RenderMetrics(s.Metrics))
	}

	return nil
}
