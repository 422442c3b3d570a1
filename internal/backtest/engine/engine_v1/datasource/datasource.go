package datasource

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

type DataSource interface {
	// Initialize loads the market data file at path.
	Initialize(path string) error
	// ReadAll yields bars ordered by time. Both bounds are inclusive.
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool)
	// Count returns the number of bars ReadAll would yield for the same bounds.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}

// Open picks a data source by file extension and initializes it with path.
// CSV files are parsed in memory, Parquet files are read through DuckDB.
func Open(path string, log *logger.Logger) (DataSource, error) {
	var (
		ds  DataSource
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ds = NewCSVDataSource(log)
	case ".parquet":
		ds, err = NewDuckDBDataSource(log)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported market data file %s", path)
	}

	if err := ds.Initialize(path); err != nil {
		_ = ds.Close()

		return nil, err
	}

	return ds, nil
}

// LoadSeries drains ds into a validated bar series.
func LoadSeries(ds DataSource, start optional.Option[time.Time], end optional.Option[time.Time]) (*types.BarSeries, error) {
	count, err := ds.Count(start, end)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count market data", err)
	}

	bars := make([]types.MarketData, 0, count)

	for bar, err := range ds.ReadAll(start, end) {
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read market data", err)
		}

		bars = append(bars, bar)
	}

	return types.NewBarSeries(bars)
}
