package analytics

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// TradeStats summarizes closed trades. An open position at the end of a run
// is not a trade and never contributes here.
type TradeStats struct {
	Count   int     `yaml:"count"`
	Winners int     `yaml:"winners"`
	Losers  int     `yaml:"losers"`
	WinRate float64 `yaml:"win_rate"`

	// ProfitFactor is +Inf when ProfitFactorInfinite is set.
	ProfitFactor         float64 `yaml:"profit_factor"`
	ProfitFactorInfinite bool    `yaml:"profit_factor_infinite"`

	GrossProfit      float64 `yaml:"gross_profit"`
	GrossLoss        float64 `yaml:"gross_loss"`
	NetProfit        float64 `yaml:"net_profit"`
	AverageWin       float64 `yaml:"average_win"`
	AverageLoss      float64 `yaml:"average_loss"`
	LargestWin       float64 `yaml:"largest_win"`
	LargestLoss      float64 `yaml:"largest_loss"`
	AverageReturnPct float64 `yaml:"average_return_pct"`
	TotalCommission  float64 `yaml:"total_commission"`
	// Expectancy is the mean realized P&L per trade.
	Expectancy         float64       `yaml:"expectancy"`
	AverageHoldingTime time.Duration `yaml:"average_holding_time"`
}

// ComputeTradeStats aggregates trades. GrossLoss, AverageLoss and LargestLoss
// are reported as positive magnitudes.
func ComputeTradeStats(trades []types.Trade) TradeStats {
	ts := TradeStats{Count: len(trades)}
	if len(trades) == 0 {
		return ts
	}

	var (
		wins    []float64
		losses  []float64
		returns = make([]float64, 0, len(trades))
		holding time.Duration
	)

	for _, t := range trades {
		switch {
		case t.RealizedPnL > 0:
			wins = append(wins, t.RealizedPnL)
			ts.GrossProfit += t.RealizedPnL
		case t.RealizedPnL < 0:
			losses = append(losses, -t.RealizedPnL)
			ts.GrossLoss += -t.RealizedPnL
		}

		ts.NetProfit += t.RealizedPnL
		ts.TotalCommission += t.CommissionPaid
		returns = append(returns, t.ReturnPct)
		holding += t.HoldingTime()
	}

	ts.Winners = len(wins)
	ts.Losers = len(losses)
	ts.WinRate = float64(ts.Winners) / float64(ts.Count)
	ts.Expectancy = ts.NetProfit / float64(ts.Count)
	ts.AverageReturnPct = mean(returns)
	ts.AverageHoldingTime = holding / time.Duration(ts.Count)

	switch {
	case ts.Winners == 0:
		ts.ProfitFactor = 0
	case ts.Losers == 0:
		ts.ProfitFactor = math.Inf(1)
		ts.ProfitFactorInfinite = true
	default:
		ts.ProfitFactor = ts.GrossProfit / ts.GrossLoss
	}

	if len(wins) > 0 {
		ts.AverageWin = mean(wins)
		ts.LargestWin, _ = stats.Max(wins)
	}

	if len(losses) > 0 {
		ts.AverageLoss = mean(losses)
		ts.LargestLoss, _ = stats.Max(losses)
	}

	return ts
}
