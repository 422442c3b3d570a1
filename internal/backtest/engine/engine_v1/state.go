package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"go.uber.org/zap"
)

const insertBatchSize = 500

// BacktestState stores the output of finished runs in an in-memory DuckDB
// database so they can be exported as Parquet.
type BacktestState struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewBacktestState opens an in-memory database.
func NewBacktestState(logger *logger.Logger) (*BacktestState, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))

		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &BacktestState{
		logger: logger,
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the trades, marks and equity tables.
func (b *BacktestState) Initialize() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			run_id TEXT,
			entry_time TIMESTAMP,
			entry_price DOUBLE,
			exit_time TIMESTAMP,
			exit_price DOUBLE,
			quantity DOUBLE,
			commission_paid DOUBLE,
			realized_pnl DOUBLE,
			return_pct DOUBLE
		);
		CREATE TABLE IF NOT EXISTS marks (
			run_id TEXT,
			bar_index INTEGER,
			time TIMESTAMP,
			signal_type TEXT,
			price DOUBLE,
			executed BOOLEAN,
			reason TEXT
		);
		CREATE TABLE IF NOT EXISTS equity (
			run_id TEXT,
			time TIMESTAMP,
			cash DOUBLE,
			position_value DOUBLE,
			total_equity DOUBLE
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// Record inserts every trade, mark and equity point of result.
func (b *BacktestState) Record(result types.BacktestResult) error {
	tradeRows := make([][]any, len(result.Trades))
	for i, t := range result.Trades {
		tradeRows[i] = []any{
			result.RunID, t.EntryTime, t.EntryPrice, t.ExitTime, t.ExitPrice,
			t.Quantity, t.CommissionPaid, t.RealizedPnL, t.ReturnPct,
		}
	}

	markRows := make([][]any, len(result.Marks))
	for i, m := range result.Marks {
		markRows[i] = []any{result.RunID, m.Index, m.Time, string(m.Signal), m.Price, m.Executed, m.Reason}
	}

	equityRows := make([][]any, len(result.EquityCurve))
	for i, p := range result.EquityCurve {
		equityRows[i] = []any{result.RunID, p.Time, p.Cash, p.PositionValue, p.TotalEquity}
	}

	tables := []struct {
		name    string
		columns []string
		rows    [][]any
	}{
		{"trades", []string{"run_id", "entry_time", "entry_price", "exit_time", "exit_price", "quantity", "commission_paid", "realized_pnl", "return_pct"}, tradeRows},
		{"marks", []string{"run_id", "bar_index", "time", "signal_type", "price", "executed", "reason"}, markRows},
		{"equity", []string{"run_id", "time", "cash", "position_value", "total_equity"}, equityRows},
	}

	for _, table := range tables {
		if err := b.insert(table.name, table.columns, table.rows); err != nil {
			return err
		}
	}

	b.logger.Debug("Recorded backtest result",
		zap.String("run_id", result.RunID),
		zap.Int("trades", len(tradeRows)),
		zap.Int("marks", len(markRows)),
		zap.Int("equity_points", len(equityRows)),
	)

	return nil
}

func (b *BacktestState) insert(table string, columns []string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))

		query := b.sq.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			query = query.Values(row...)
		}

		if _, err := query.RunWith(b.db).Exec(); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	return nil
}

// GetAllTrades returns the recorded trades of a run ordered by exit time.
func (b *BacktestState) GetAllTrades(runID string) ([]types.Trade, error) {
	rows, err := b.sq.
		Select("entry_time", "entry_price", "exit_time", "exit_price", "quantity", "commission_paid", "realized_pnl", "return_pct").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("exit_time ASC").
		RunWith(b.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var t types.Trade
		if err := rows.Scan(&t.EntryTime, &t.EntryPrice, &t.ExitTime, &t.ExitPrice,
			&t.Quantity, &t.CommissionPaid, &t.RealizedPnL, &t.ReturnPct); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// Count returns the number of rows in table for runID.
func (b *BacktestState) Count(table string, runID string) (int, error) {
	var count int

	err := b.sq.Select("COUNT(*)").From(table).Where(squirrel.Eq{"run_id": runID}).RunWith(b.db).QueryRow().Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

// Cleanup drops all recorded data and recreates empty tables.
func (b *BacktestState) Cleanup() error {
	// Use raw SQL for dropping tables - Squirrel doesn't have DROP syntax
	_, err := b.db.Exec(`
		DROP TABLE IF EXISTS trades;
		DROP TABLE IF EXISTS marks;
		DROP TABLE IF EXISTS equity;
	`)
	if err != nil {
		return fmt.Errorf("failed to cleanup tables: %w", err)
	}

	return b.Initialize()
}

// Write exports trades.parquet, marks.parquet and equity.parquet into dir.
// It returns the written paths keyed by table name.
func (b *BacktestState) Write(dir string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	paths := make(map[string]string, 3)

	for _, table := range []string{"trades", "marks", "equity"} {
		path := filepath.Join(dir, table+".parquet")
		// COPY is not expressible with squirrel
		if _, err := b.db.Exec(fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, table, path)); err != nil {
			return nil, fmt.Errorf("failed to export %s to Parquet: %w", table, err)
		}

		paths[table] = path
	}

	b.logger.Info("Exported backtest results to Parquet files",
		zap.String("trades", paths["trades"]),
		zap.String("marks", paths["marks"]),
		zap.String("equity", paths["equity"]),
	)

	return paths, nil
}

// Close releases the database.
func (b *BacktestState) Close() error {
	return b.db.Close()
}
