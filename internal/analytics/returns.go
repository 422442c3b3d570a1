package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Returns computes returns[i-1] = equity[i]/equity[i-1] - 1 for i >= 1.
// A sample following zero equity counts as a zero return.
func Returns(curve []types.EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}

	returns := make([]float64, len(curve)-1)

	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].TotalEquity
		if prev <= 0 {
			continue
		}

		returns[i-1] = curve[i].TotalEquity/prev - 1
	}

	return returns
}

func excessReturns(returns []float64, riskFreeRate float64, periodsPerYear float64) []float64 {
	perPeriod := riskFreeRate / periodsPerYear
	excess := make([]float64, len(returns))

	for i, r := range returns {
		excess[i] = r - perPeriod
	}

	return excess
}

// sampleStdDev is the N-1 standard deviation, or 0 for fewer than 2 values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	sd, err := stats.StandardDeviationSample(values)
	if err != nil || math.IsNaN(sd) {
		return 0
	}

	return sd
}

func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}

	return m
}

// SharpeRatio returns mean(excess)/stdev(excess) x sqrt(periodsPerYear). It is
// 0 with fewer than 2 returns or zero standard deviation.
func SharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	excess := excessReturns(returns, riskFreeRate, periodsPerYear)

	sd := sampleStdDev(excess)
	if sd == 0 {
		return 0
	}

	return mean(excess) / sd * math.Sqrt(periodsPerYear)
}

// SortinoRatio returns mean(excess)/downside_deviation x sqrt(periodsPerYear),
// where downside_deviation is the root mean square of the negative excess
// returns. It is 0 under the same conditions as SharpeRatio. With no negative
// excess return it is +Inf and noDownside is true.
func SortinoRatio(returns []float64, riskFreeRate float64, periodsPerYear float64) (ratio float64, noDownside bool) {
	if len(returns) < 2 {
		return 0, false
	}

	excess := excessReturns(returns, riskFreeRate, periodsPerYear)
	if sampleStdDev(excess) == 0 {
		return 0, false
	}

	var (
		sumSquares float64
		negatives  int
	)

	for _, r := range excess {
		if r < 0 {
			sumSquares += r * r
			negatives++
		}
	}

	if negatives == 0 {
		return math.Inf(1), true
	}

	downside := math.Sqrt(sumSquares / float64(negatives))

	return mean(excess) / downside * math.Sqrt(periodsPerYear), false
}

// AnnualizedVolatility is the sample standard deviation of returns scaled by
// sqrt(periodsPerYear).
func AnnualizedVolatility(returns []float64, periodsPerYear float64) float64 {
	return sampleStdDev(returns) * math.Sqrt(periodsPerYear)
}
