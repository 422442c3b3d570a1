package datasource

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"go.uber.org/zap"
)

// CSVDataSource loads a whole CSV file into memory. The header must name the
// columns time, symbol, open, high, low, close and volume; time is RFC 3339.
type CSVDataSource struct {
	logger *logger.Logger
	bars   []types.MarketData
}

func NewCSVDataSource(logger *logger.Logger) *CSVDataSource {
	return &CSVDataSource{logger: logger}
}

// Initialize implements DataSource.
func (c *CSVDataSource) Initialize(path string) error {
	csvFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer csvFile.Close()

	var bars []types.MarketData
	if err := gocsv.UnmarshalFile(csvFile, &bars); err != nil {
		return fmt.Errorf("failed to unmarshal CSV: %w", err)
	}

	// order is validated by NewBarSeries
	c.bars = bars

	c.logger.Debug("Loaded market data from CSV",
		zap.String("path", path),
		zap.Int("bars", len(bars)),
	)

	return nil
}

// ReadAll implements DataSource.
func (c *CSVDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		for _, bar := range c.window(start, end) {
			if !yield(bar, nil) {
				return
			}
		}
	}
}

// Count implements DataSource.
func (c *CSVDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	return len(c.window(start, end)), nil
}

// Close implements DataSource.
func (c *CSVDataSource) Close() error {
	c.bars = nil

	return nil
}

func (c *CSVDataSource) window(start optional.Option[time.Time], end optional.Option[time.Time]) []types.MarketData {
	if start.IsNone() && end.IsNone() {
		return c.bars
	}

	// fast path for sorted input
	if sort.SliceIsSorted(c.bars, func(i, j int) bool { return c.bars[i].Time.Before(c.bars[j].Time) }) {
		lo := 0
		if start.IsSome() {
			lo = sort.Search(len(c.bars), func(i int) bool { return !c.bars[i].Time.Before(start.Unwrap()) })
		}

		hi := len(c.bars)
		if end.IsSome() {
			hi = sort.Search(len(c.bars), func(i int) bool { return c.bars[i].Time.After(end.Unwrap()) })
		}

		if lo >= hi {
			return nil
		}

		return c.bars[lo:hi]
	}

	var out []types.MarketData

	for _, bar := range c.bars {
		if inRange(bar.Time, start, end) {
			out = append(out, bar)
		}
	}

	return out
}
