// Package strategy defines the decision contract used by the backtest engine
// and a library of concrete strategies.
package strategy

import (
	"bytes"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Strategy decides what to do at the last bar of a history.
//
// Decide must depend only on the bars it is given. A strategy may keep
// indicator columns computed over earlier prefixes, but must rebuild them when
// the history does not extend the one it saw before. One Strategy value
// belongs to one run at a time.
type Strategy interface {
	// Name returns the registry name of the strategy
	Name() string
	// WarmUp returns how many leading bars are forced to HOLD
	WarmUp() int
	// Decide returns the signal for history.Last()
	Decide(history types.History) types.SignalType
}

var validate = validator.New()

// decodeParams fills cfg from YAML params and validates it. Empty params keep
// the defaults already present in cfg.
func decodeParams(name string, params []byte, cfg any) error {
	if len(bytes.TrimSpace(params)) > 0 {
		if err := yaml.Unmarshal(params, cfg); err != nil {
			return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "failed to parse %s params", name)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return errors.Wrapf(errors.ErrCodeStrategyConfigError, err, "invalid %s params", name)
	}

	return nil
}

func crossedAbove(prevA, prevB, curA, curB float64) bool {
	return prevA <= prevB && curA > curB
}

func crossedBelow(prevA, prevB, curA, curB float64) bool {
	return prevA >= prevB && curA < curB
}
