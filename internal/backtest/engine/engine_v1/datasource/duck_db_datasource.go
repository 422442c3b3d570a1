package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

var marketDataColumns = []string{
	"time",
	"symbol",
	"CAST(open AS DOUBLE)",
	"CAST(high AS DOUBLE)",
	"CAST(low AS DOUBLE)",
	"CAST(close AS DOUBLE)",
	"CAST(volume AS DOUBLE)",
}

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBDataSource opens an in-memory DuckDB database. Market data is
// attached later by Initialize.
func NewDuckDBDataSource(logger *logger.Logger) (*DuckDBDataSource, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize implements DataSource. Parquet files are read with read_parquet
// and CSV files with read_csv_auto.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	var reader string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		reader = "read_parquet"
	case ".csv":
		reader = "read_csv_auto"
	default:
		return errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported market data file %s", path)
	}

	// First drop the view if it exists
	_, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return fmt.Errorf("failed to drop existing view: %w", err)
	}

	// Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT * FROM %s('%s');
	`, reader, strings.ReplaceAll(path, "'", "''"))

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, fmt.Sprintf("failed to load %s", path), err)
	}

	return nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	query := withTimeRange(d.sq.Select("COUNT(*)").From("market_data"), start, end)

	var count int
	if err := query.RunWith(d.db).QueryRow().Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count market data", err)
	}

	return count, nil
}

// ReadAll implements DataSource.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		d.logger.Debug("Reading all data from DuckDB")

		query := withTimeRange(d.sq.Select(marketDataColumns...).From("market_data"), start, end).
			OrderBy("time ASC")

		d.yieldRows(query, yield)
	}
}

// ReadResampled yields bars aggregated into interval buckets: first open,
// highest high, lowest low, last close and summed volume.
func (d *DuckDBDataSource) ReadResampled(interval Interval, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		minutes, err := getIntervalMinutes(interval)
		if err != nil {
			yield(types.MarketData{}, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid resample interval", err))

			return
		}

		d.logger.Debug("Reading resampled data from DuckDB", zap.String("interval", string(interval)))

		query := withTimeRange(d.sq.Select(
			fmt.Sprintf("time_bucket(INTERVAL '%d minutes', time) AS bucket", minutes),
			"arg_min(symbol, time)",
			"CAST(arg_min(open, time) AS DOUBLE)",
			"CAST(max(high) AS DOUBLE)",
			"CAST(min(low) AS DOUBLE)",
			"CAST(arg_max(close, time) AS DOUBLE)",
			"CAST(sum(volume) AS DOUBLE)",
		).From("market_data"), start, end).
			GroupBy("bucket").
			OrderBy("bucket ASC")

		d.yieldRows(query, yield)
	}
}

func (d *DuckDBDataSource) yieldRows(query squirrel.SelectBuilder, yield func(types.MarketData, error) bool) {
	rows, err := query.RunWith(d.db).Query()
	if err != nil {
		yield(types.MarketData{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err))

		return
	}
	defer rows.Close()

	for rows.Next() {
		var bar types.MarketData

		err := rows.Scan(&bar.Time, &bar.Symbol, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume)
		if err != nil {
			yield(types.MarketData{}, fmt.Errorf("failed to scan row: %w", err))

			return
		}

		if !yield(bar, nil) {
			return
		}
	}

	if err := rows.Err(); err != nil {
		yield(types.MarketData{}, fmt.Errorf("error iterating rows: %w", err))
	}
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func withTimeRange(query squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	return query
}
