package analytics

// Flatten returns the report as a flat metric name to value mapping.
// Infinite sentinels are kept and flags are encoded as 0 or 1.
func (r Report) Flatten() map[string]float64 {
	ts := r.TradeStats

	m := map[string]float64{
		"bars":                   float64(r.Bars),
		"initial_equity":         r.InitialEquity,
		"final_equity":           r.FinalEquity,
		"total_return":           r.TotalReturn,
		"annualized_return":      r.AnnualizedReturn,
		"annualized_volatility":  r.AnnualizedVolatility,
		"sharpe_ratio":           r.SharpeRatio,
		"sortino_ratio":          r.SortinoRatio,
		"sortino_no_downside":    flag(r.SortinoNoDownside),
		"calmar_ratio":           r.CalmarRatio,
		"max_drawdown":           r.MaxDrawdown.Depth,
		"max_drawdown_bars":      float64(r.MaxDrawdown.DurationBars),
		"max_drawdown_recovered": flag(r.MaxDrawdown.Recovered),
		"drawdown_episodes":      float64(len(r.DrawdownEpisodes)),
		"trades":                 float64(ts.Count),
		"winners":                float64(ts.Winners),
		"losers":                 float64(ts.Losers),
		"win_rate":               ts.WinRate,
		"profit_factor":          ts.ProfitFactor,
		"profit_factor_infinite": flag(ts.ProfitFactorInfinite),
		"gross_profit":           ts.GrossProfit,
		"gross_loss":             ts.GrossLoss,
		"net_profit":             ts.NetProfit,
		"average_win":            ts.AverageWin,
		"average_loss":           ts.AverageLoss,
		"largest_win":            ts.LargestWin,
		"largest_loss":           ts.LargestLoss,
		"average_return_pct":     ts.AverageReturnPct,
		"total_commission":       ts.TotalCommission,
		"expectancy":             ts.Expectancy,
		"average_holding_hours":  ts.AverageHoldingTime.Hours(),
		"best_month":             r.MonthlySummary.Best,
		"worst_month":            r.MonthlySummary.Worst,
		"positive_months_ratio":  r.MonthlySummary.PositiveRatio,
		"best_week":              r.WeeklySummary.Best,
		"worst_week":             r.WeeklySummary.Worst,
		"positive_weeks_ratio":   r.WeeklySummary.PositiveRatio,
		"open_position":          flag(r.OpenPosition != nil),
	}

	if r.OpenPosition != nil {
		m["unrealized_pnl"] = r.OpenPosition.UnrealizedPnL
	}

	return m
}

func flag(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
