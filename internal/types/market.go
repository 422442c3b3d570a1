package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MarketData is one OHLCV bar.
type MarketData struct {
	Time   time.Time `csv:"time" yaml:"time"`
	Symbol string    `csv:"symbol" yaml:"symbol"`
	Open   float64   `csv:"open" yaml:"open"`
	High   float64   `csv:"high" yaml:"high"`
	Low    float64   `csv:"low" yaml:"low"`
	Close  float64   `csv:"close" yaml:"close"`
	Volume float64   `csv:"volume" yaml:"volume"`
}

// validate checks a single bar. prev is the time of the preceding bar, or the
// zero time for the first bar.
func (m MarketData) validate(index int, prev time.Time) error {
	prices := [...]struct {
		name  string
		value float64
	}{
		{"open", m.Open},
		{"high", m.High},
		{"low", m.Low},
		{"close", m.Close},
	}

	if m.Time.IsZero() {
		return errors.NewBarValidationError(index, m.Time, "timestamp is missing")
	}

	if index > 0 && !m.Time.After(prev) {
		return errors.NewBarValidationError(index, m.Time,
			"timestamp %s is not after previous bar %s", m.Time.Format(time.RFC3339), prev.Format(time.RFC3339))
	}

	for _, p := range prices {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return errors.NewBarValidationError(index, m.Time, "%s is not finite", p.name)
		}

		if p.value <= 0 {
			return errors.NewBarValidationError(index, m.Time, "%s must be positive, got %v", p.name, p.value)
		}
	}

	if math.IsNaN(m.Volume) || math.IsInf(m.Volume, 0) {
		return errors.NewBarValidationError(index, m.Time, "volume is not finite")
	}

	if m.Volume < 0 {
		return errors.NewBarValidationError(index, m.Time, "volume must not be negative, got %v", m.Volume)
	}

	return nil
}
