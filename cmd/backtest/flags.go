package main

import (
	"fmt"
	"os"
	"time"

	"github.com/moznion/go-optional"
	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/urfave/cli/v3"
)

func dataFlags() []cli.Flag {
	return []cli.Flag{
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
		&cli.StringFlag{
			Name:  "interval",
			Usage: "Resample bars to this interval before running (e.g. 1h, 4h, 1d)",
		},
		&cli.TimestampFlag{
			Name:  "start",
			Usage: "Start date in `YYYY-MM-DD` format",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02", time.RFC3339},
			},
		},
		&cli.TimestampFlag{
			Name:  "end",
			Usage: "End date in `YYYY-MM-DD` format",
			Config: cli.TimestampConfig{
				Layouts: []string{"2006-01-02", time.RFC3339},
			},
		},
	}
}

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	return logger.NewLoggerWithLevel(cmd.Root().String("log-level"))
}

// loadEngineConfig reads --config, or builds the defaults from --capital.
// --start and --end override the config window.
func loadEngineConfig(cmd *cli.Command) (engine.BacktestEngineV1Config, error) {
	config := engine.EmptyConfig()
	config.InitialCapital = cmd.Float("capital")

	if path := cmd.String("config"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return engine.BacktestEngineV1Config{}, fmt.Errorf("failed to read config: %w", err)
		}

		parsed, err := engine.ParseConfig(string(content))
		if err != nil {
			return engine.BacktestEngineV1Config{}, err
		}

		config = parsed
	}

	if cmd.IsSet("start") {
		config.StartTime = optional.Some(cmd.Timestamp("start"))
	}

	if cmd.IsSet("end") {
		config.EndTime = optional.Some(cmd.Timestamp("end"))
	}

	return config, config.Validate()
}

func readParams(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	params, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy params: %w", err)
	}

	return params, nil
}

// loadSeries reads the data file inside the config window. With an interval
// the bars are aggregated by DuckDB first.
func loadSeries(path string, interval string, config engine.BacktestEngineV1Config, log *logger.Logger) (*types.BarSeries, error) {
	if interval == "" {
		ds, err := datasource.Open(path, log)
		if err != nil {
			return nil, err
		}
		defer ds.Close()

		return datasource.LoadSeries(ds, config.StartTime, config.EndTime)
	}

	ds, err := datasource.NewDuckDBDataSource(log)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	if err := ds.Initialize(path); err != nil {
		return nil, err
	}

	var bars []types.MarketData

	for bar, err := range ds.ReadResampled(datasource.Interval(interval), config.StartTime, config.EndTime) {
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	return types.NewBarSeries(bars)
}
