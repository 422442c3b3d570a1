package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// RSI returns the relative strength index over the last period price changes,
// using simple averages of gains and losses. It needs period+1 values.
// A window with no losses returns 100, and a flat window returns 50.
func RSI(closes []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}

	if err := checkLength("RSI", closes, period+1); err != nil {
		return 0, err
	}

	window := last(closes, period+1)

	var gain, loss float64

	for i := 1; i < len(window); i++ {
		delta := window[i] - window[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}

	gain /= float64(period)
	loss /= float64(period)

	switch {
	case loss == 0 && gain == 0:
		return 50, nil
	case loss == 0:
		return 100, nil
	}

	rs := gain / loss

	return 100 - 100/(1+rs), nil
}

// RSIIndicator is the registry adapter for RSI over closes.
type RSIIndicator struct{}

// NewRSI creates an RSI indicator.
func NewRSI() Indicator {
	return &RSIIndicator{}
}

// Name returns the name of the indicator.
func (r *RSIIndicator) Name() IndicatorType {
	return IndicatorTypeRSI
}

// RawValue returns the RSI at the current bar.
func (r *RSIIndicator) RawValue(history types.History, period int) (float64, error) {
	return RSI(history.Closes(), period)
}

// Lookback returns period+1.
func (r *RSIIndicator) Lookback(period int) int {
	return period + 1
}

// RequiresPeriod returns true.
func (r *RSIIndicator) RequiresPeriod() bool {
	return true
}
