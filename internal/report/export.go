package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"gopkg.in/yaml.v3"
)

// WriteStats writes the full report to path as YAML.
func WriteStats(path string, report analytics.Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}

// WriteTradesCSV writes the trade log to path.
func WriteTradesCSV(path string, trades []types.Trade) error {
	return writeCSV(path, trades)
}

// WriteEquityCSV writes the equity curve to path.
func WriteEquityCSV(path string, curve []types.EquityPoint) error {
	return writeCSV(path, curve)
}

// WriteMarksCSV writes the signal marks to path.
func WriteMarksCSV(path string, marks []types.Mark) error {
	return writeCSV(path, marks)
}

// WritePeriodsCSV writes periodized returns to path.
func WritePeriodsCSV(path string, periods []analytics.PeriodReturn) error {
	return writeCSV(path, periods)
}

// writeCSV writes rows with a header line even when rows is empty.
func writeCSV[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	if rows == nil {
		rows = []T{}
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write csv file %s: %w", path, err)
	}

	return nil
}
