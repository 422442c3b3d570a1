package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/urfave/cli/v3"
)

func exploreAction(ctx context.Context, cmd *cli.Command) error {
	config := engine.EmptyConfig()
	config.InitialCapital = cmd.Float("capital")

	if path := cmd.String("config"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		parsed, err := engine.ParseConfig(string(content))
		if err != nil {
			return err
		}

		config = parsed
	}

	if err := config.Validate(); err != nil {
		return err
	}

	// the TUI owns the terminal
	nop := logger.NewNopLogger()

	series, err := loadSeries(cmd.String("data"), config, nop)
	if err != nil {
		return err
	}

	m := NewModel(series, config, nop)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.SetProgram(p)

	_, err = p.Run()

	return err
}

func loadSeries(path string, config engine.BacktestEngineV1Config, log *logger.Logger) (*types.BarSeries, error) {
	ds, err := datasource.Open(path, log)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	return datasource.LoadSeries(ds, config.StartTime, config.EndTime)
}

func main() {
	cmd := &cli.Command{
		Name:  "explore",
		Usage: "Interactively run strategies over a data file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Market data file (.csv or .parquet)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Engine config YAML file",
			},
			&cli.FloatFlag{
				Name:  "capital",
				Usage: "Initial capital when no config file is given",
				Value: 10000,
			},
		},
		Action: exploreAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
