package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "backtest-engine-v1-config.json"
	sampleConfigName = "backtest-engine-v1-config.yaml"
)

func main() {
	if err := generate("./config"); err != nil {
		log.Fatal(err)
	}
}

// generate writes the engine config schema, a sample config and one params
// schema per registered strategy under dir.
func generate(dir string) error {
	config := engine.EmptyConfig()
	config.InitialCapital = 10000

	schemaPath := filepath.Join(dir, schemaName)
	sampleConfigPath := filepath.Join(dir, sampleConfigName)

	if err := validateSchemaName(schemaName); err != nil {
		return err
	}

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		return err
	}

	if err := generateSchemaFile(config, schemaPath); err != nil {
		return err
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	if err := generateSampleConfig(config, sampleConfigPath, schemaName); err != nil {
		return err
	}

	for _, name := range strategy.NewDefaultRegistry().List() {
		if err := generateStrategySchema(name, filepath.Join(dir, "strategies", name+".json")); err != nil {
			return err
		}
	}

	return nil
}

func generateSchemaFile(config engine.BacktestEngineV1Config, schemaPath string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	return writeFile(schemaPath, []byte(schemaJSON))
}

// generateSampleConfig writes config as YAML with a schema reference header.
// An existing file is left untouched.
func generateSampleConfig(config engine.BacktestEngineV1Config, samplePath string, schemaName string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(sampleConfig{
		InitialCapital:    config.InitialCapital,
		CommissionRate:    config.CommissionRate,
		CommissionFee:     string(config.CommissionFee),
		CommissionMinimum: config.CommissionMinimum,
		PeriodsPerYear:    config.PeriodsPerYear,
		PositionFraction:  config.PositionFraction,
		DecimalPrecision:  config.DecimalPrecision,
		RiskFreeRate:      config.RiskFreeRate,
		DrawdownThreshold: config.DrawdownThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	if err := writeFile(samplePath, append([]byte(getSchemaReference(schemaName)), yamlBytes...)); err != nil {
		return err
	}

	log.Printf("Sample config successfully generated at %s", samplePath)

	return nil
}

func generateStrategySchema(name string, path string) error {
	schema, err := strategy.ParamsSchema(name)
	if err != nil {
		return fmt.Errorf("failed to generate params schema for %s: %w", name, err)
	}

	return writeFile(path, []byte(schema))
}

// sampleConfig is the YAML shape of the engine config without the optional
// time window.
type sampleConfig struct {
	InitialCapital    float64 `yaml:"initial_capital"`
	CommissionRate    float64 `yaml:"commission_rate"`
	CommissionFee     string  `yaml:"commission_fee"`
	CommissionMinimum float64 `yaml:"commission_minimum"`
	PeriodsPerYear    float64 `yaml:"periods_per_year"`
	PositionFraction  float64 `yaml:"position_fraction"`
	DecimalPrecision  int     `yaml:"decimal_precision"`
	RiskFreeRate      float64 `yaml:"risk_free_rate"`
	DrawdownThreshold float64 `yaml:"drawdown_threshold"`
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}

func validatePaths(schemaPath string, sampleConfigPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return fmt.Errorf("sample config path cannot be empty")
	}

	return nil
}

func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

func getSchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}
