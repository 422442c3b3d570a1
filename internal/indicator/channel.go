package indicator

import (
	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Donchian returns the highest high and lowest low of the period bars that
// precede the last element. The last bar is excluded so that a breakout can be
// measured against it.
func Donchian(highs, lows []float64, period int) (upper, lower float64, err error) {
	if err := checkPeriod(period); err != nil {
		return 0, 0, err
	}

	if err := checkLength("Donchian channel", highs, period+1); err != nil {
		return 0, 0, err
	}

	if len(lows) != len(highs) {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidParameter, "highs and lows differ in length: %d != %d", len(highs), len(lows))
	}

	end := len(highs) - 1

	upper, err = stats.Max(highs[end-period : end])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate channel high", err)
	}

	lower, err = stats.Min(lows[end-period : end])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate channel low", err)
	}

	return upper, lower, nil
}

// DonchianBand exposes one side of the channel to the registry.
type DonchianBand struct {
	name IndicatorType
	high bool
}

// NewDonchianHigh creates the channel high indicator.
func NewDonchianHigh() Indicator {
	return &DonchianBand{name: IndicatorTypeDonchianHigh, high: true}
}

// NewDonchianLow creates the channel low indicator.
func NewDonchianLow() Indicator {
	return &DonchianBand{name: IndicatorTypeDonchianLow}
}

// Name returns the name of the indicator.
func (d *DonchianBand) Name() IndicatorType {
	return d.name
}

// RawValue returns the channel side for the bars before the current one.
func (d *DonchianBand) RawValue(history types.History, period int) (float64, error) {
	upper, lower, err := Donchian(history.Highs(), history.Lows(), period)
	if err != nil {
		return 0, err
	}

	if d.high {
		return upper, nil
	}

	return lower, nil
}

// Lookback returns period+1.
func (d *DonchianBand) Lookback(period int) int {
	return period + 1
}

// RequiresPeriod returns true.
func (d *DonchianBand) RequiresPeriod() bool {
	return true
}
