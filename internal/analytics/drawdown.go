package analytics

import (
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// DrawdownEpisode is a decline from a running peak. Recovery is the first
// later sample whose equity is back at or above the peak.
type DrawdownEpisode struct {
	PeakIndex   int       `yaml:"peak_index"`
	PeakTime    time.Time `yaml:"peak_time"`
	PeakEquity  float64   `yaml:"peak_equity"`
	TroughIndex int       `yaml:"trough_index"`
	TroughTime  time.Time `yaml:"trough_time"`
	// Depth is (peak - trough) / peak, a fraction in [0, 1).
	Depth     float64 `yaml:"depth"`
	Recovered bool    `yaml:"recovered"`
	// RecoveryIndex is -1 when the run ended below the peak.
	RecoveryIndex int       `yaml:"recovery_index"`
	RecoveryTime  time.Time `yaml:"recovery_time,omitempty"`
	// DurationBars counts bars from the peak to the recovery, or to the last
	// bar when not recovered.
	DurationBars int           `yaml:"duration_bars"`
	Duration     time.Duration `yaml:"duration"`
}

type underwater struct {
	peak   int
	trough int
	depth  float64
}

// scan walks the curve with a running peak and reports every contiguous
// stretch below it.
func scan(curve []types.EquityPoint) []underwater {
	var (
		out     []underwater
		current *underwater
	)

	peak := 0

	for i, p := range curve {
		peakEquity := curve[peak].TotalEquity

		if p.TotalEquity >= peakEquity {
			if current != nil {
				out = append(out, *current)
				current = nil
			}

			peak = i

			continue
		}

		depth := 0.0
		if peakEquity > 0 {
			depth = (peakEquity - p.TotalEquity) / peakEquity
		}

		if current == nil {
			current = &underwater{peak: peak, trough: i, depth: depth}
		} else if depth > current.depth {
			current.trough = i
			current.depth = depth
		}
	}

	if current != nil {
		out = append(out, *current)
	}

	return out
}

func episode(curve []types.EquityPoint, u underwater) DrawdownEpisode {
	e := DrawdownEpisode{
		PeakIndex:     u.peak,
		PeakTime:      curve[u.peak].Time,
		PeakEquity:    curve[u.peak].TotalEquity,
		TroughIndex:   u.trough,
		TroughTime:    curve[u.trough].Time,
		Depth:         u.depth,
		RecoveryIndex: -1,
	}

	end := len(curve) - 1

	for i := u.trough + 1; i < len(curve); i++ {
		if curve[i].TotalEquity >= e.PeakEquity {
			e.Recovered = true
			e.RecoveryIndex = i
			e.RecoveryTime = curve[i].Time
			end = i

			break
		}
	}

	e.DurationBars = end - u.peak
	e.Duration = curve[end].Time.Sub(e.PeakTime)

	return e
}

// MaxDrawdown returns the deepest drawdown episode. The earliest episode wins
// a tie. A curve that never declines yields a zero-depth, recovered episode
// at index 0.
func MaxDrawdown(curve []types.EquityPoint) DrawdownEpisode {
	if len(curve) == 0 {
		return DrawdownEpisode{RecoveryIndex: -1}
	}

	var deepest *underwater

	stretches := scan(curve)
	for i := range stretches {
		if deepest == nil || stretches[i].depth > deepest.depth {
			deepest = &stretches[i]
		}
	}

	if deepest == nil {
		return DrawdownEpisode{
			PeakTime:     curve[0].Time,
			PeakEquity:   curve[0].TotalEquity,
			TroughTime:   curve[0].Time,
			Recovered:    true,
			RecoveryTime: curve[0].Time,
		}
	}

	return episode(curve, *deepest)
}

// DrawdownEpisodes returns every episode deeper than threshold in time order.
func DrawdownEpisodes(curve []types.EquityPoint, threshold float64) []DrawdownEpisode {
	var episodes []DrawdownEpisode

	for _, u := range scan(curve) {
		if u.depth > threshold {
			episodes = append(episodes, episode(curve, u))
		}
	}

	return episodes
}
