package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const NameSMACrossover = "sma_crossover"

type SMACrossoverConfig struct {
	ShortWindow int `yaml:"short_window" validate:"gt=0"`
	LongWindow  int `yaml:"long_window" validate:"gtfield=ShortWindow"`
}

// SMACrossover buys when the short average crosses above the long one and
// sells on the opposite cross.
type SMACrossover struct {
	config SMACrossoverConfig
}

// NewSMACrossover creates the strategy from YAML params.
func NewSMACrossover(params []byte) (Strategy, error) {
	cfg := SMACrossoverConfig{ShortWindow: 20, LongWindow: 50}
	if err := decodeParams(NameSMACrossover, params, &cfg); err != nil {
		return nil, err
	}

	return &SMACrossover{config: cfg}, nil
}

func (s *SMACrossover) Name() string { return NameSMACrossover }

// WarmUp leaves room for the previous long average.
func (s *SMACrossover) WarmUp() int { return s.config.LongWindow }

func (s *SMACrossover) Decide(history types.History) types.SignalType {
	closes := history.Closes()
	prev := closes[:len(closes)-1]

	prevShort, err1 := indicator.SMA(prev, s.config.ShortWindow)
	prevLong, err2 := indicator.SMA(prev, s.config.LongWindow)
	curShort, err3 := indicator.SMA(closes, s.config.ShortWindow)
	curLong, err4 := indicator.SMA(closes, s.config.LongWindow)

	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return types.SignalTypeHold
	}

	switch {
	case crossedAbove(prevShort, prevLong, curShort, curLong):
		return types.SignalTypeBuy
	case crossedBelow(prevShort, prevLong, curShort, curLong):
		return types.SignalTypeSell
	default:
		return types.SignalTypeHold
	}
}
