package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const NameRSI = "rsi"

type RSIMode string

const (
	// RSIModeThreshold trades while RSI is beyond a threshold.
	RSIModeThreshold RSIMode = "threshold"
	// RSIModeCrossover trades when RSI re-enters the normal range.
	RSIModeCrossover RSIMode = "crossover"
)

type RSIConfig struct {
	Period     int     `yaml:"period" validate:"gt=0"`
	Oversold   float64 `yaml:"oversold" validate:"gte=0,ltfield=Overbought"`
	Overbought float64 `yaml:"overbought" validate:"lte=100"`
	Mode       RSIMode `yaml:"mode" validate:"oneof=threshold crossover"`
}

type RSI struct {
	config RSIConfig
}

// NewRSI creates the strategy from YAML params.
func NewRSI(params []byte) (Strategy, error) {
	cfg := RSIConfig{Period: 14, Oversold: 30, Overbought: 70, Mode: RSIModeThreshold}
	if err := decodeParams(NameRSI, params, &cfg); err != nil {
		return nil, err
	}

	return &RSI{config: cfg}, nil
}

func (r *RSI) Name() string { return NameRSI }

func (r *RSI) WarmUp() int {
	if r.config.Mode == RSIModeCrossover {
		return r.config.Period + 1
	}

	return r.config.Period
}

func (r *RSI) Decide(history types.History) types.SignalType {
	closes := history.Closes()

	current, err := indicator.RSI(closes, r.config.Period)
	if err != nil {
		return types.SignalTypeHold
	}

	if r.config.Mode == RSIModeThreshold {
		switch {
		case current < r.config.Oversold:
			return types.SignalTypeBuy
		case current > r.config.Overbought:
			return types.SignalTypeSell
		default:
			return types.SignalTypeHold
		}
	}

	previous, err := indicator.RSI(closes[:len(closes)-1], r.config.Period)
	if err != nil {
		return types.SignalTypeHold
	}

	switch {
	case previous <= r.config.Oversold && current > r.config.Oversold:
		return types.SignalTypeBuy
	case previous >= r.config.Overbought && current < r.config.Overbought:
		return types.SignalTypeSell
	default:
		return types.SignalTypeHold
	}
}
