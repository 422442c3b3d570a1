// Package indicator computes technical indicator values over a visible price
// prefix. Functions here never look past the last element they are given.
package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// IndicatorType names an indicator in the registry.
type IndicatorType string

const (
	IndicatorTypeClose          IndicatorType = "close"
	IndicatorTypeVolume         IndicatorType = "volume"
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeVolumeSMA      IndicatorType = "volume_sma"
	IndicatorTypeMomentum       IndicatorType = "momentum"
	IndicatorTypeBollingerUpper IndicatorType = "bollinger_upper"
	IndicatorTypeBollingerLower IndicatorType = "bollinger_lower"
	IndicatorTypeDonchianHigh   IndicatorType = "donchian_high"
	IndicatorTypeDonchianLow    IndicatorType = "donchian_low"
)

// Indicator evaluates to a single value at the last bar of a history.
type Indicator interface {
	// Name returns the name of the indicator
	Name() IndicatorType
	// RawValue returns the indicator value at history.Last()
	RawValue(history types.History, period int) (float64, error)
	// Lookback returns how many bars must be visible for RawValue to succeed
	Lookback(period int) int
	// RequiresPeriod reports whether RawValue needs a positive period
	RequiresPeriod() bool
}

// StreamingIndicator is an Indicator that can keep its state between
// consecutive prefixes of the same series.
type StreamingIndicator interface {
	Indicator
	// NewStream returns an evaluator for one period. A stream belongs to a
	// single caller.
	NewStream(period int) Stream
}

// Stream evaluates an indicator at history.Last(), reusing the work done for
// a shorter prefix of the same series.
type Stream interface {
	Value(history types.History) (float64, error)
}

// syncedPrefix remembers the backing array and length of the values a column
// consumed. Series prefixes share storage, so a later prefix of the same
// series starts at the same element. Synced values must not be modified.
type syncedPrefix struct {
	head *float64
	n    int
}

// resume returns how many leading elements of values were already consumed,
// or 0 when values does not extend the synced prefix.
func (p *syncedPrefix) resume(values []float64) int {
	if p.n == 0 || len(values) < p.n || &values[0] != p.head {
		return 0
	}

	return p.n
}

func (p *syncedPrefix) mark(values []float64) {
	p.n = len(values)
	p.head = nil

	if p.n > 0 {
		p.head = &values[0]
	}
}

func checkPeriod(period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return nil
}

func checkLength(name string, values []float64, required int) error {
	if len(values) < required {
		return errors.NewInsufficientDataErrorf(required, len(values), "",
			"insufficient data for %s: required %d, got %d", name, required, len(values))
	}

	return nil
}

// last returns the final n values.
func last(values []float64, n int) []float64 {
	return values[len(values)-n:]
}
