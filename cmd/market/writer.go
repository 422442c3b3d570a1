package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/gocarina/gocsv"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

type MarketWriter string

const (
	MarketWriterCSV     MarketWriter = "csv"
	MarketWriterParquet MarketWriter = "parquet"
)

// BarWriter persists generated bars in a format the data sources can read.
type BarWriter interface {
	Write(path string, bars []types.MarketData) error
}

func NewMarketWriter(kind MarketWriter) (BarWriter, error) {
	switch kind {
	case MarketWriterCSV:
		return csvWriter{}, nil
	case MarketWriterParquet:
		return parquetWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported writer: %s", kind)
	}
}

type csvWriter struct{}

func (csvWriter) Write(path string, bars []types.MarketData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	return gocsv.MarshalFile(&bars, file)
}

// parquetWriter stages the bars in an in-memory DuckDB table and exports it
// with COPY.
type parquetWriter struct{}

const parquetBatchSize = 500

func (parquetWriter) Write(path string, bars []types.MarketData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	sq := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	for start := 0; start < len(bars); start += parquetBatchSize {
		end := min(start+parquetBatchSize, len(bars))

		query := sq.Insert("market_data").Columns("time", "symbol", "open", "high", "low", "close", "volume")
		for _, bar := range bars[start:end] {
			query = query.Values(bar.Time, bar.Symbol, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
		}

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}

		if _, err := db.Exec(sqlStr, args...); err != nil {
			return fmt.Errorf("failed to insert bars: %w", err)
		}
	}

	// COPY is not expressible with squirrel
	copyQuery := fmt.Sprintf(`COPY (SELECT * FROM market_data ORDER BY time) TO '%s' (FORMAT PARQUET)`,
		strings.ReplaceAll(path, "'", "''"))
	if _, err := db.Exec(copyQuery); err != nil {
		return fmt.Errorf("failed to export parquet: %w", err)
	}

	return nil
}
