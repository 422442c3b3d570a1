package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"gopkg.in/yaml.v3"
)

// listItem implements list.Item for the strategy list.
type listItem struct {
	name        string
	description string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.description }
func (i listItem) FilterValue() string { return i.name }

var strategyDescriptions = map[string]string{
	"sma_crossover":   "Short SMA crossing the long SMA",
	"rsi":             "RSI leaving the oversold or overbought zone",
	"macd":            "MACD line crossing its signal line",
	"bollinger_bands": "Close crossing the Bollinger bands",
	"breakout":        "Close breaking the highest high or lowest low",
	"rule_based":      "Indicator conditions combined by a match count",
}

// NewStrategyList creates the strategy selection list.
func NewStrategyList(names []string) list.Model {
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, listItem{name: name, description: strategyDescriptions[name]})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Strategy"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewParamsInput creates the text input for inline strategy params.
func NewParamsInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "short_window=5, long_window=20"
	ti.CharLimit = 200
	ti.Width = 60
	ti.Prompt = "> "

	return ti
}

// ParseParams turns comma-separated key=value pairs into a YAML document.
// Values are decoded as YAML scalars so numbers and booleans keep their type.
// An empty input yields nil, which selects the strategy defaults.
func ParseParams(input string) ([]byte, error) {
	params := map[string]any{}

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, raw, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", part)
		}

		var value any
		if err := yaml.Unmarshal([]byte(strings.TrimSpace(raw)), &value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}

		params[key] = value
	}

	if len(params) == 0 {
		return nil, nil
	}

	return yaml.Marshal(params)
}

// NewTradesTable creates the table listing closed trades.
func NewTradesTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Entry", Width: 17},
		{Title: "Entry Price", Width: 12},
		{Title: "Exit", Width: 17},
		{Title: "Exit Price", Width: 12},
		{Title: "Quantity", Width: 12},
		{Title: "PnL", Width: 14},
		{Title: "Return", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateTradeRows fills the table with trades in execution order.
func UpdateTradeRows(t table.Model, trades []types.Trade) table.Model {
	rows := make([]table.Row, 0, len(trades))

	for i, trade := range trades {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			trade.EntryTime.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.4f", trade.EntryPrice),
			trade.ExitTime.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.4f", trade.ExitPrice),
			fmt.Sprintf("%.4f", trade.Quantity),
			FormatPnL(trade.RealizedPnL),
			fmt.Sprintf("%+.2f%%", trade.ReturnPct),
		})
	}

	t.SetRows(rows)

	return t
}

// SummaryLine renders the headline metrics of a report on one line.
func SummaryLine(report analytics.Report) string {
	parts := []string{
		"Return " + colorize(fmt.Sprintf("%+.2f%%", report.TotalReturn*100), report.TotalReturn),
		fmt.Sprintf("Sharpe %.3f", report.SharpeRatio),
		fmt.Sprintf("Max DD %.2f%%", report.MaxDrawdown.Depth*100),
		fmt.Sprintf("Trades %d", report.TradeStats.Count),
		fmt.Sprintf("Win rate %.1f%%", report.TradeStats.WinRate*100),
		fmt.Sprintf("Final equity %.2f", report.FinalEquity),
	}

	return strings.Join(parts, " | ")
}
