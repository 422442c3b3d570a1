package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const NameBreakout = "breakout"

type BreakoutConfig struct {
	Lookback int `yaml:"lookback" validate:"gt=0"`
	// Threshold is the fraction the close must clear the channel by.
	Threshold float64 `yaml:"threshold" validate:"gte=0"`
	// VolumeMultiplier requires volume above this multiple of the lookback
	// average. Zero disables the filter.
	VolumeMultiplier float64 `yaml:"volume_multiplier" validate:"gte=0"`
}

// Breakout trades closes outside the Donchian channel of the preceding bars.
type Breakout struct {
	config BreakoutConfig
}

// NewBreakout creates the strategy from YAML params.
func NewBreakout(params []byte) (Strategy, error) {
	cfg := BreakoutConfig{Lookback: 20}
	if err := decodeParams(NameBreakout, params, &cfg); err != nil {
		return nil, err
	}

	return &Breakout{config: cfg}, nil
}

func (b *Breakout) Name() string { return NameBreakout }

func (b *Breakout) WarmUp() int { return b.config.Lookback }

func (b *Breakout) Decide(history types.History) types.SignalType {
	upper, lower, err := indicator.Donchian(history.Highs(), history.Lows(), b.config.Lookback)
	if err != nil {
		return types.SignalTypeHold
	}

	if b.config.VolumeMultiplier > 0 {
		volumes := history.Volumes()

		avg, err := indicator.SMA(volumes[:len(volumes)-1], b.config.Lookback)
		if err != nil || volumes[len(volumes)-1] <= avg*b.config.VolumeMultiplier {
			return types.SignalTypeHold
		}
	}

	price := history.Last().Close

	switch {
	case price > upper*(1+b.config.Threshold):
		return types.SignalTypeBuy
	case price < lower*(1-b.config.Threshold):
		return types.SignalTypeSell
	default:
		return types.SignalTypeHold
	}
}
