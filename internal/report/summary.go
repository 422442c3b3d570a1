// Package report renders analytics reports for the terminal and writes run
// artifacts to disk.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// RenderSummary renders the headline metrics of report as a two column table.
func RenderSummary(report analytics.Report) string {
	display := &strings.Builder{}
	ts := report.TradeStats

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	rows := [][]string{
		{"Period", fmt.Sprintf("%s - %s", report.Start.Format(time.DateOnly), report.End.Format(time.DateOnly))},
		{"Bars", printer.Sprintf("%d", report.Bars)},
		{"Initial equity", money(report.InitialEquity)},
		{"Final equity", money(report.FinalEquity)},
		{"Total return", percent(report.TotalReturn)},
		{"Annualized return", percent(report.AnnualizedReturn)},
		{"Annualized volatility", percent(report.AnnualizedVolatility)},
		{"Sharpe ratio", ratio(report.SharpeRatio)},
		{"Sortino ratio", ratio(report.SortinoRatio)},
		{"Calmar ratio", ratio(report.CalmarRatio)},
		{"Max drawdown", percent(-report.MaxDrawdown.Depth)},
		{"Max drawdown duration", drawdownDuration(report.MaxDrawdown)},
		{"Drawdown episodes", printer.Sprintf("%d", len(report.DrawdownEpisodes))},
		{"Trades", printer.Sprintf("%d", ts.Count)},
		{"Win rate", percent(ts.WinRate)},
		{"Profit factor", ratio(ts.ProfitFactor)},
		{"Net profit", money(ts.NetProfit)},
		{"Average win", money(ts.AverageWin)},
		{"Average loss", money(-ts.AverageLoss)},
		{"Largest win", money(ts.LargestWin)},
		{"Largest loss", money(-ts.LargestLoss)},
		{"Commission", money(ts.TotalCommission)},
		{"Average holding time", ts.AverageHoldingTime.String()},
	}

	if report.OpenPosition != nil {
		rows = append(rows,
			[]string{"Open position", printer.Sprintf("%.8g", report.OpenPosition.Quantity)},
			[]string{"Unrealized P&L", money(report.OpenPosition.UnrealizedPnL)},
		)
	}

	table.AppendBulk(rows)
	table.Render()

	return display.String()
}

// RenderPeriods renders one row per period.
func RenderPeriods(periods []analytics.PeriodReturn) string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Period", "Return", "Volatility", "Samples", "Start", "End"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, p := range periods {
		samples := printer.Sprintf("%d", p.Samples)
		if p.LowConfidence {
			samples += "*"
		}

		table.Append([]string{
			p.Key,
			percent(p.Return),
			percent(p.Volatility),
			samples,
			money(p.StartValue),
			money(p.EndValue),
		})
	}

	table.Render()

	return display.String()
}

// RenderComparison renders the headline metrics of several runs side by side.
func RenderComparison(names []string, reports []analytics.Report) string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Strategy", "Return", "Sharpe", "Sortino", "Max DD", "Trades", "Win rate", "Profit factor"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, r := range reports {
		table.Append([]string{
			names[i],
			percent(r.TotalReturn),
			ratio(r.SharpeRatio),
			ratio(r.SortinoRatio),
			percent(-r.MaxDrawdown.Depth),
			printer.Sprintf("%d", r.TradeStats.Count),
			percent(r.TradeStats.WinRate),
			ratio(r.TradeStats.ProfitFactor),
		})
	}

	table.Render()

	return display.String()
}

func money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return printer.Sprintf("%+.2f%%", v*100)
}

func ratio(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return printer.Sprintf("%.3f", v)
	}
}

func drawdownDuration(dd analytics.DrawdownEpisode) string {
	s := fmt.Sprintf("%d bars", dd.DurationBars)
	if !dd.Recovered {
		s += " (not recovered)"
	}

	return s
}

// RenderMetrics renders a flat metric mapping sorted by name.
func RenderMetrics(metrics map[string]float64) string {
	display := &strings.Builder{}

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}

	sort.Strings(names)

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, name := range names {
		table.Append([]string{name, ratio(metrics[name])})
	}

	table.Render()

	return display.String()
}
