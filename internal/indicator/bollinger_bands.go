package indicator

import (
	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Bands holds one Bollinger Bands observation.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// BollingerBands returns the bands over the last period closes using the
// sample standard deviation.
func BollingerBands(closes []float64, period int, numStd float64) (Bands, error) {
	if err := checkPeriod(period); err != nil {
		return Bands{}, err
	}

	if period < 2 {
		return Bands{}, errors.New(errors.ErrCodeInvalidPeriod, "bollinger bands period must be at least 2")
	}

	if err := checkLength("Bollinger Bands", closes, period); err != nil {
		return Bands{}, err
	}

	window := last(closes, period)

	mean, err := stats.Mean(window)
	if err != nil {
		return Bands{}, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate mean", err)
	}

	sd, err := stats.StandardDeviationSample(window)
	if err != nil {
		return Bands{}, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate standard deviation", err)
	}

	return Bands{
		Upper:  mean + numStd*sd,
		Middle: mean,
		Lower:  mean - numStd*sd,
	}, nil
}

// BollingerBand exposes one band of a two standard deviation channel to the registry.
type BollingerBand struct {
	name  IndicatorType
	upper bool
}

// NewBollingerUpper creates the upper band indicator.
func NewBollingerUpper() Indicator {
	return &BollingerBand{name: IndicatorTypeBollingerUpper, upper: true}
}

// NewBollingerLower creates the lower band indicator.
func NewBollingerLower() Indicator {
	return &BollingerBand{name: IndicatorTypeBollingerLower}
}

// Name returns the name of the indicator.
func (b *BollingerBand) Name() IndicatorType {
	return b.name
}

// RawValue returns the band value at the current bar.
func (b *BollingerBand) RawValue(history types.History, period int) (float64, error) {
	bands, err := BollingerBands(history.Closes(), period, 2)
	if err != nil {
		return 0, err
	}

	if b.upper {
		return bands.Upper, nil
	}

	return bands.Lower, nil
}

// Lookback returns period.
func (b *BollingerBand) Lookback(period int) int {
	return period
}

// RequiresPeriod returns true.
func (b *BollingerBand) RequiresPeriod() bool {
	return true
}
