package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// StrategyInfo describes the strategy that produced a run.
type StrategyInfo struct {
	Name   string         `yaml:"name" json:"name"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// RunStats is the YAML summary written next to the exported artifacts of a run.
type RunStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// EngineVersion is the version of the engine that wrote the file.
	EngineVersion string `yaml:"engine_version" json:"engine_version"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Symbol of the traded instrument.
	Symbol   string       `yaml:"symbol" json:"symbol"`
	Strategy StrategyInfo `yaml:"strategy" json:"strategy"`
	// Bars is the number of bars simulated.
	Bars int `yaml:"bars" json:"bars"`
	// Metrics is the flat metric mapping produced by the analytics engine.
	Metrics map[string]float64 `yaml:"metrics" json:"metrics"`
	// OpenPosition is set when the run ended long.
	OpenPosition *Position `yaml:"open_position,omitempty" json:"open_position,omitempty"`
	// TradesFilePath is the path to the trades parquet file.
	TradesFilePath string `yaml:"trades_file_path,omitempty" json:"trades_file_path,omitempty"`
	// EquityFilePath is the path to the equity curve parquet file.
	EquityFilePath string `yaml:"equity_file_path,omitempty" json:"equity_file_path,omitempty"`
	// MarksFilePath is the path to the marks parquet file.
	MarksFilePath string `yaml:"marks_file_path,omitempty" json:"marks_file_path,omitempty"`
	// DataPath is the path to the market data file used for this backtest.
	DataPath string `yaml:"data_path,omitempty" json:"data_path,omitempty"`
}

// WriteRunStats writes stats to path as YAML.
func WriteRunStats(path string, stats []RunStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal run stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run stats to file: %w", err)
	}

	return nil
}

// ReadRunStats reads a YAML file written by WriteRunStats.
func ReadRunStats(path string) ([]RunStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run stats file: %w", err)
	}

	var stats []RunStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run stats: %w", err)
	}

	return stats, nil
}
