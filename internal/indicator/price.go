package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Momentum returns the percent change between the last value and the value
// period steps earlier.
func Momentum(values []float64, period int) (float64, error) {
	if err := checkPeriod(period); err != nil {
		return 0, err
	}

	if err := checkLength("momentum", values, period+1); err != nil {
		return 0, err
	}

	base := values[len(values)-1-period]

	return (values[len(values)-1] - base) / base * 100, nil
}

// Field returns a raw column of the current bar, ignoring the period.
type Field struct {
	name   IndicatorType
	column func(types.History) []float64
}

// NewClose creates the close price indicator.
func NewClose() Indicator {
	return &Field{name: IndicatorTypeClose, column: types.History.Closes}
}

// NewVolume creates the volume indicator.
func NewVolume() Indicator {
	return &Field{name: IndicatorTypeVolume, column: types.History.Volumes}
}

// Name returns the name of the indicator.
func (f *Field) Name() IndicatorType {
	return f.name
}

// RawValue returns the value of the current bar.
func (f *Field) RawValue(history types.History, _ int) (float64, error) {
	values := f.column(history)
	if err := checkLength(string(f.name), values, 1); err != nil {
		return 0, err
	}

	return values[len(values)-1], nil
}

// Lookback returns 1.
func (f *Field) Lookback(int) int {
	return 1
}

// RequiresPeriod returns false; fields are read from the current bar.
func (f *Field) RequiresPeriod() bool {
	return false
}

// MomentumIndicator is the registry adapter for Momentum over closes.
type MomentumIndicator struct{}

// NewMomentum creates a momentum indicator.
func NewMomentum() Indicator {
	return &MomentumIndicator{}
}

// Name returns the name of the indicator.
func (m *MomentumIndicator) Name() IndicatorType {
	return IndicatorTypeMomentum
}

// RawValue returns the percent change over period bars.
func (m *MomentumIndicator) RawValue(history types.History, period int) (float64, error) {
	return Momentum(history.Closes(), period)
}

// Lookback returns period+1.
func (m *MomentumIndicator) Lookback(period int) int {
	return period + 1
}

// RequiresPeriod returns true.
func (m *MomentumIndicator) RequiresPeriod() bool {
	return true
}
