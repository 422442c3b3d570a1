package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const NameMACD = "macd"

type MACDMode string

const (
	MACDModeSignalCross MACDMode = "signal_cross"
	MACDModeZeroCross   MACDMode = "zero_cross"
)

type MACDConfig struct {
	Fast   int      `yaml:"fast" validate:"gt=0"`
	Slow   int      `yaml:"slow" validate:"gtfield=Fast"`
	Signal int      `yaml:"signal" validate:"gt=0"`
	Mode   MACDMode `yaml:"mode" validate:"oneof=signal_cross zero_cross"`
}

// MACD trades crossings of the MACD line. The line is kept as an incremental
// column over the visible prefix.
type MACD struct {
	config MACDConfig
	column *indicator.MACDColumn
}

// NewMACD creates the strategy from YAML params.
func NewMACD(params []byte) (Strategy, error) {
	cfg := MACDConfig{Fast: 12, Slow: 26, Signal: 9, Mode: MACDModeSignalCross}
	if err := decodeParams(NameMACD, params, &cfg); err != nil {
		return nil, err
	}

	column, err := indicator.NewMACDColumn(cfg.Fast, cfg.Slow, cfg.Signal)
	if err != nil {
		return nil, err
	}

	return &MACD{config: cfg, column: column}, nil
}

func (m *MACD) Name() string { return NameMACD }

func (m *MACD) WarmUp() int { return m.config.Slow + m.config.Signal }

func (m *MACD) Decide(history types.History) types.SignalType {
	if history.Len() < 2 {
		return types.SignalTypeHold
	}

	m.column.Sync(history.Closes())

	i := history.Index()
	prev, cur := m.column.MACD(i-1), m.column.MACD(i)

	var prevRef, curRef float64
	if m.config.Mode == MACDModeSignalCross {
		prevRef, curRef = m.column.Signal(i-1), m.column.Signal(i)
	}

	switch {
	case crossedAbove(prev, prevRef, cur, curRef):
		return types.SignalTypeBuy
	case crossedBelow(prev, prevRef, cur, curRef):
		return types.SignalTypeSell
	default:
		return types.SignalTypeHold
	}
}
