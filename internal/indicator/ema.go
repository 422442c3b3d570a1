package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// EMAColumn computes an exponential moving average incrementally.
// It uses alpha = 2/(span+1) with the adjusted weighting, so the first value
// equals the first input and early values are not biased towards zero.
type EMAColumn struct {
	decay  float64
	num    float64
	den    float64
	values []float64
	synced syncedPrefix
}

// NewEMAColumn creates an empty column for the given span.
func NewEMAColumn(span int) *EMAColumn {
	return &EMAColumn{
		decay: 1 - 2.0/float64(span+1),
	}
}

// Update appends the next input and returns the new average.
func (c *EMAColumn) Update(x float64) float64 {
	c.num = x + c.decay*c.num
	c.den = 1 + c.decay*c.den
	value := c.num / c.den
	c.values = append(c.values, value)

	return value
}

// Len returns how many inputs have been consumed.
func (c *EMAColumn) Len() int {
	return len(c.values)
}

// At returns the average after input i.
func (c *EMAColumn) At(i int) float64 {
	return c.values[i]
}

// Values returns the computed column.
func (c *EMAColumn) Values() []float64 {
	return c.values
}

// Reset discards all state.
func (c *EMAColumn) Reset() {
	c.num = 0
	c.den = 0
	c.values = c.values[:0]
	c.synced = syncedPrefix{}
}

// Sync makes the column cover exactly values, consuming only the new tail
// when values is a longer prefix of the slice synced last time. A column is
// fed either through Sync or through Update, never both.
func (c *EMAColumn) Sync(values []float64) {
	n := c.synced.resume(values)
	if n == 0 {
		c.Reset()
	}

	for _, v := range values[n:] {
		c.Update(v)
	}

	c.synced.mark(values)
}

// EMASeries returns the exponential moving average for every element of values.
func EMASeries(values []float64, span int) ([]float64, error) {
	if err := checkPeriod(span); err != nil {
		return nil, err
	}

	column := NewEMAColumn(span)
	for _, v := range values {
		column.Update(v)
	}

	return column.Values(), nil
}

// EMA returns the exponential moving average at the last element of values.
func EMA(values []float64, span int) (float64, error) {
	if err := checkLength("EMA", values, 1); err != nil {
		return 0, err
	}

	series, err := EMASeries(values, span)
	if err != nil {
		return 0, err
	}

	return series[len(series)-1], nil
}

// EMAIndicator is the registry adapter for EMA over closes.
type EMAIndicator struct{}

var _ StreamingIndicator = (*EMAIndicator)(nil)

// NewEMA creates an EMA indicator.
func NewEMA() Indicator {
	return &EMAIndicator{}
}

// Name returns the name of the indicator.
func (e *EMAIndicator) Name() IndicatorType {
	return IndicatorTypeEMA
}

// RawValue returns the EMA of all visible closes.
func (e *EMAIndicator) RawValue(history types.History, period int) (float64, error) {
	return EMA(history.Closes(), period)
}

// Lookback returns period.
func (e *EMAIndicator) Lookback(period int) int {
	return period
}

// RequiresPeriod returns true.
func (e *EMAIndicator) RequiresPeriod() bool {
	return true
}

// NewStream returns an EMA evaluator that keeps its column between bars.
func (e *EMAIndicator) NewStream(period int) Stream {
	return &emaStream{period: period, column: NewEMAColumn(period)}
}

type emaStream struct {
	period int
	column *EMAColumn
}

func (s *emaStream) Value(history types.History) (float64, error) {
	closes := history.Closes()
	if err := checkPeriod(s.period); err != nil {
		return 0, err
	}

	if err := checkLength("EMA", closes, 1); err != nil {
		return 0, err
	}

	s.column.Sync(closes)

	return s.column.At(len(closes) - 1), nil
}
