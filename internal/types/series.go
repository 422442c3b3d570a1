package types

import (
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// BarSeries is a validated, read-only sequence of bars ordered by time.
// It is safe to share between concurrent runs.
type BarSeries struct {
	bars    []MarketData
	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []float64
}

// NewBarSeries validates bars and copies them into a BarSeries.
// The first malformed bar aborts construction with a *errors.BarValidationError.
func NewBarSeries(bars []MarketData) (*BarSeries, error) {
	if len(bars) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySeries, "bar series is empty")
	}

	s := &BarSeries{
		bars:    make([]MarketData, len(bars)),
		opens:   make([]float64, len(bars)),
		highs:   make([]float64, len(bars)),
		lows:    make([]float64, len(bars)),
		closes:  make([]float64, len(bars)),
		volumes: make([]float64, len(bars)),
	}

	var prev time.Time

	for i, bar := range bars {
		if err := bar.validate(i, prev); err != nil {
			return nil, err
		}

		s.bars[i] = bar
		s.opens[i] = bar.Open
		s.highs[i] = bar.High
		s.lows[i] = bar.Low
		s.closes[i] = bar.Close
		s.volumes[i] = bar.Volume
		prev = bar.Time
	}

	return s, nil
}

// Len returns the number of bars.
func (s *BarSeries) Len() int {
	return len(s.bars)
}

// At returns the bar at index i.
func (s *BarSeries) At(i int) MarketData {
	return s.bars[i]
}

// Bars returns a copy of the underlying bars.
func (s *BarSeries) Bars() []MarketData {
	out := make([]MarketData, len(s.bars))
	copy(out, s.bars)

	return out
}

// Symbol returns the symbol of the first bar.
func (s *BarSeries) Symbol() string {
	return s.bars[0].Symbol
}

// Truncate returns a series holding the first n bars. It shares storage with s.
func (s *BarSeries) Truncate(n int) *BarSeries {
	if n >= len(s.bars) {
		return s
	}

	return &BarSeries{
		bars:    s.bars[:n:n],
		opens:   s.opens[:n:n],
		highs:   s.highs[:n:n],
		lows:    s.lows[:n:n],
		closes:  s.closes[:n:n],
		volumes: s.volumes[:n:n],
	}
}

// History returns the visible prefix ending at bar i (inclusive).
func (s *BarSeries) History(i int) History {
	n := i + 1

	return History{
		bars:    s.bars[:n:n],
		opens:   s.opens[:n:n],
		highs:   s.highs[:n:n],
		lows:    s.lows[:n:n],
		closes:  s.closes[:n:n],
		volumes: s.volumes[:n:n],
	}
}

// History is the prefix of a BarSeries visible to a strategy at one bar.
// Every slice is capped at the current bar so reslicing cannot reach later bars.
// Callers must not modify the returned slices.
type History struct {
	bars    []MarketData
	opens   []float64
	highs   []float64
	lows    []float64
	closes  []float64
	volumes []float64
}

// NewHistory builds a History directly from bars without validation.
// It is intended for tests and for strategies composed of other strategies.
func NewHistory(bars []MarketData) History {
	n := len(bars)
	h := History{
		bars:    bars[:n:n],
		opens:   make([]float64, n),
		highs:   make([]float64, n),
		lows:    make([]float64, n),
		closes:  make([]float64, n),
		volumes: make([]float64, n),
	}

	for i, bar := range bars {
		h.opens[i] = bar.Open
		h.highs[i] = bar.High
		h.lows[i] = bar.Low
		h.closes[i] = bar.Close
		h.volumes[i] = bar.Volume
	}

	return h
}

// Len returns the number of visible bars.
func (h History) Len() int {
	return len(h.bars)
}

// Index returns the series index of the current bar.
func (h History) Index() int {
	return len(h.bars) - 1
}

// At returns the visible bar at index i.
func (h History) At(i int) MarketData {
	return h.bars[i]
}

// Last returns the current bar.
func (h History) Last() MarketData {
	return h.bars[len(h.bars)-1]
}

// Opens returns the visible open prices.
func (h History) Opens() []float64 { return h.opens }

// Highs returns the visible high prices.
func (h History) Highs() []float64 { return h.highs }

// Lows returns the visible low prices.
func (h History) Lows() []float64 { return h.lows }

// Closes returns the visible close prices.
func (h History) Closes() []float64 { return h.closes }

// Volumes returns the visible volumes.
func (h History) Volumes() []float64 { return h.volumes }
