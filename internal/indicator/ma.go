package indicator

import (
	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// SMA returns the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}

	if err := checkLength("SMA", values, period); err != nil {
		return 0, err
	}

	mean, err := stats.Mean(last(values, period))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to calculate SMA", err)
	}

	return mean, nil
}

// MA is a simple moving average over one column of the history.
type MA struct {
	name   IndicatorType
	column func(types.History) []float64
}

// NewMA creates a moving average of closing prices.
func NewMA() Indicator {
	return &MA{name: IndicatorTypeSMA, column: types.History.Closes}
}

// NewVolumeMA creates a moving average of volume.
func NewVolumeMA() Indicator {
	return &MA{name: IndicatorTypeVolumeSMA, column: types.History.Volumes}
}

// Name returns the name of the indicator.
func (m *MA) Name() IndicatorType {
	return m.name
}

// RawValue returns the moving average ending at the current bar.
func (m *MA) RawValue(history types.History, period int) (float64, error) {
	return SMA(m.column(history), period)
}

// Lookback returns period.
func (m *MA) Lookback(period int) int {
	return period
}

// RequiresPeriod returns true.
func (m *MA) RequiresPeriod() bool {
	return true
}
