package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/urfave/cli/v3"
)

// generateAction builds a synthetic bar series from the flags and writes it
// in the format chosen by --writer.
func generateAction(ctx context.Context, cmd *cli.Command) error {
	config := mocks.DefaultConfig()
	config.Symbol = cmd.String("symbol")
	config.StartTime = cmd.Timestamp("start")
	config.Interval = cmd.Duration("interval")
	config.Count = int(cmd.Int("count"))
	config.InitialPrice = cmd.Float("price")
	config.Volatility = cmd.Float("volatility")
	config.Drift = cmd.Float("drift")
	config.CycleAmplitude = cmd.Float("cycle-amplitude")
	config.CyclePeriod = int(cmd.Int("cycle-period"))

	if config.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", config.Count)
	}

	if config.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", config.Interval)
	}

	if config.InitialPrice <= 0 {
		return fmt.Errorf("price must be positive, got %v", config.InitialPrice)
	}

	writer, err := NewMarketWriter(MarketWriter(cmd.String("writer")))
	if err != nil {
		return err
	}

	bars := mocks.NewBarGenerator(int64(cmd.Int("seed"))).Generate(config)
	output := cmd.String("output")

	if err := writer.Write(output, bars); err != nil {
		return fmt.Errorf("failed to write bars: %w", err)
	}

	log.Printf("Wrote %d %s bars to %s", len(bars), config.Symbol, output)

	return nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "market",
		Usage: "Generate synthetic OHLCV market data for backtests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output file path",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "writer",
				Aliases: []string{"w"},
				Usage:   fmt.Sprintf("Output format (%s or %s)", MarketWriterCSV, MarketWriterParquet),
				Value:   string(MarketWriterCSV),
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Symbol written on every bar",
				Value: "SYNTH",
			},
			&cli.TimestampFlag{
				Name:  "start",
				Usage: "Time of the first bar in `YYYY-MM-DD` format (or RFC3339)",
				Value: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02", time.RFC3339},
				},
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Time between bars",
				Value: 24 * time.Hour,
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of bars",
				Value:   500,
			},
			&cli.FloatFlag{
				Name:  "price",
				Usage: "Initial price",
				Value: 100,
			},
			&cli.FloatFlag{
				Name:  "volatility",
				Usage: "Per-bar standard deviation of returns",
				Value: 0.01,
			},
			&cli.FloatFlag{
				Name:  "drift",
				Usage: "Per-bar expected return",
			},
			&cli.FloatFlag{
				Name:  "cycle-amplitude",
				Usage: "Relative size of a sine wave added to the close",
			},
			&cli.IntFlag{
				Name:  "cycle-period",
				Usage: "Bars per sine wave",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed",
				Value: 1,
			},
		},
		Action: generateAction,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
