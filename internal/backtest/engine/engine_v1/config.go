package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1Config struct {
	InitialCapital    float64                    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting cash for the backtest,exclusiveMinimum=0" validate:"gt=0"`
	CommissionRate    float64                    `yaml:"commission_rate" json:"commission_rate" jsonschema:"title=Commission Rate,description=Commission as a fraction of order notional,minimum=0,maximum=1" validate:"gte=0,lt=1"`
	CommissionFee     commission_fee.FeeModel    `yaml:"commission_fee" json:"commission_fee" jsonschema:"title=Commission Fee Model,description=How commission is charged on each order" validate:"oneof=proportional proportional_with_minimum zero"`
	CommissionMinimum float64                    `yaml:"commission_minimum" json:"commission_minimum" jsonschema:"title=Commission Minimum,description=Minimum commission per order for the proportional_with_minimum model,minimum=0" validate:"gte=0"`
	PeriodsPerYear    float64                    `yaml:"periods_per_year" json:"periods_per_year" jsonschema:"title=Periods Per Year,description=Annualization constant such as 252 for daily bars or 8760 for hourly bars,exclusiveMinimum=0" validate:"gt=0"`
	PositionFraction  float64                    `yaml:"position_fraction" json:"position_fraction" jsonschema:"title=Position Fraction,description=Fraction of cash committed on each buy,exclusiveMinimum=0,maximum=1" validate:"gt=0,lte=1"`
	DecimalPrecision  int                        `yaml:"decimal_precision" json:"decimal_precision" jsonschema:"title=Decimal Precision,description=Number of decimal places kept for order quantity,minimum=0,maximum=16" validate:"gte=0,lte=16"`
	RiskFreeRate      float64                    `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annual risk free rate used by Sharpe and Sortino,minimum=0" validate:"gte=0"`
	DrawdownThreshold float64                    `yaml:"drawdown_threshold" json:"drawdown_threshold" jsonschema:"title=Drawdown Threshold,description=Minimum depth of a reported drawdown episode,minimum=0" validate:"gte=0,lt=1"`
	Symbol            string                     `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Optional symbol override for reports"`
	StartTime         optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime           optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
}

// UnmarshalYAML fills unset keys from EmptyConfig.
func (c *BacktestEngineV1Config) UnmarshalYAML(value *yaml.Node) error {
	type Config struct {
		InitialCapital    float64                 `yaml:"initial_capital"`
		CommissionRate    float64                 `yaml:"commission_rate"`
		CommissionFee     commission_fee.FeeModel `yaml:"commission_fee"`
		CommissionMinimum float64                 `yaml:"commission_minimum"`
		PeriodsPerYear    float64                 `yaml:"periods_per_year"`
		PositionFraction  float64                 `yaml:"position_fraction"`
		DecimalPrecision  int                     `yaml:"decimal_precision"`
		RiskFreeRate      float64                 `yaml:"risk_free_rate"`
		DrawdownThreshold float64                 `yaml:"drawdown_threshold"`
		Symbol            string                  `yaml:"symbol"`
		StartTime         *time.Time              `yaml:"start_time"`
		EndTime           *time.Time              `yaml:"end_time"`
	}

	defaults := EmptyConfig()
	config := Config{
		InitialCapital:    defaults.InitialCapital,
		CommissionRate:    defaults.CommissionRate,
		CommissionFee:     defaults.CommissionFee,
		CommissionMinimum: defaults.CommissionMinimum,
		PeriodsPerYear:    defaults.PeriodsPerYear,
		PositionFraction:  defaults.PositionFraction,
		DecimalPrecision:  defaults.DecimalPrecision,
		RiskFreeRate:      defaults.RiskFreeRate,
		DrawdownThreshold: defaults.DrawdownThreshold,
	}

	if err := value.Decode(&config); err != nil {
		return err
	}

	*c = BacktestEngineV1Config{
		InitialCapital:    config.InitialCapital,
		CommissionRate:    config.CommissionRate,
		CommissionFee:     config.CommissionFee,
		CommissionMinimum: config.CommissionMinimum,
		PeriodsPerYear:    config.PeriodsPerYear,
		PositionFraction:  config.PositionFraction,
		DecimalPrecision:  config.DecimalPrecision,
		RiskFreeRate:      config.RiskFreeRate,
		DrawdownThreshold: config.DrawdownThreshold,
		Symbol:            config.Symbol,
		StartTime:         optional.None[time.Time](),
		EndTime:           optional.None[time.Time](),
	}

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// ParseConfig decodes and validates a YAML configuration.
func ParseConfig(content string) (BacktestEngineV1Config, error) {
	config := EmptyConfig()
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return config, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse backtest config", err)
	}

	return config, config.Validate()
}

// Validate checks field ranges and the optional time window.
func (c BacktestEngineV1Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest config", err)
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && !c.EndTime.Unwrap().After(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end_time must be after start_time")
	}

	return nil
}

// AnalyticsConfig returns the settings the analytics engine needs.
func (c BacktestEngineV1Config) AnalyticsConfig() analytics.Config {
	return analytics.Config{
		PeriodsPerYear:    c.PeriodsPerYear,
		RiskFreeRate:      c.RiskFreeRate,
		DrawdownThreshold: c.DrawdownThreshold,
	}
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.Contains(t.String(), "commission_fee.FeeModel") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission_fee.AllFeeModels,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// TestConfig returns a valid configuration for tests.
func TestConfig(initialCapital float64, commissionRate float64) BacktestEngineV1Config {
	config := EmptyConfig()
	config.InitialCapital = initialCapital
	config.CommissionRate = commissionRate

	return config
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital:    0,
		CommissionRate:    0,
		CommissionFee:     commission_fee.FeeModelProportional,
		CommissionMinimum: 0,
		PeriodsPerYear:    252,
		PositionFraction:  1,
		DecimalPrecision:  8,
		RiskFreeRate:      0,
		DrawdownThreshold: 0.001,
		Symbol:            "",
		StartTime:         optional.None[time.Time](),
		EndTime:           optional.None[time.Time](),
	}
}
