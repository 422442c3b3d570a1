package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const NameBollingerBands = "bollinger_bands"

type BollingerMode string

const (
	// BollingerModeReversion buys the lower band and sells the upper band.
	BollingerModeReversion BollingerMode = "reversion"
	// BollingerModeBreakout buys above the upper band and sells below the lower band.
	BollingerModeBreakout BollingerMode = "breakout"
)

type BollingerBandsConfig struct {
	Period int           `yaml:"period" validate:"gte=2"`
	NumStd float64       `yaml:"num_std" validate:"gt=0"`
	Mode   BollingerMode `yaml:"mode" validate:"oneof=reversion breakout"`
}

type BollingerBands struct {
	config BollingerBandsConfig
}

// NewBollingerBands creates the strategy from YAML params.
func NewBollingerBands(params []byte) (Strategy, error) {
	cfg := BollingerBandsConfig{Period: 20, NumStd: 2, Mode: BollingerModeReversion}
	if err := decodeParams(NameBollingerBands, params, &cfg); err != nil {
		return nil, err
	}

	return &BollingerBands{config: cfg}, nil
}

func (b *BollingerBands) Name() string { return NameBollingerBands }

func (b *BollingerBands) WarmUp() int { return b.config.Period }

func (b *BollingerBands) Decide(history types.History) types.SignalType {
	bands, err := indicator.BollingerBands(history.Closes(), b.config.Period, b.config.NumStd)
	if err != nil {
		return types.SignalTypeHold
	}

	price := history.Last().Close

	if b.config.Mode == BollingerModeBreakout {
		switch {
		case price > bands.Upper:
			return types.SignalTypeBuy
		case price < bands.Lower:
			return types.SignalTypeSell
		default:
			return types.SignalTypeHold
		}
	}

	switch {
	case price <= bands.Lower:
		return types.SignalTypeBuy
	case price >= bands.Upper:
		return types.SignalTypeSell
	default:
		return types.SignalTypeHold
	}
}
