package strategy

import (
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/rxtech-lab/argo-backtest/pkg/utils"
)

var paramPrototypes = map[string]any{
	NameSMACrossover:   SMACrossoverConfig{},
	NameRSI:            RSIConfig{},
	NameMACD:           MACDConfig{},
	NameBollingerBands: BollingerBandsConfig{},
	NameBreakout:       BreakoutConfig{},
	NameRuleBased:      RuleBasedConfig{},
}

// ParamsSchema returns the JSON schema of the YAML params accepted by a
// built-in strategy.
func ParamsSchema(name string) (string, error) {
	prototype, ok := paramPrototypes[name]
	if !ok {
		return "", errors.Newf(errors.ErrCodeStrategyNotFound, "strategy %s not found", name)
	}

	schema, err := utils.GetSchemaFromConfig(prototype)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to generate %s params schema", name)
	}

	return schema, nil
}
