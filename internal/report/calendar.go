package report

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-backtest/internal/analytics"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	emptyStyle  = lipgloss.NewStyle().Faint(true)
)

var monthHeaders = []string{
	"Year", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec", "Total",
}

// RenderCalendar renders monthly returns as a year by month heatmap. Gains
// and losses are colored when the terminal supports it.
func RenderCalendar(report analytics.Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(monthHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, row := range report.Calendar.Rows {
		cells := make([]string, 0, len(monthHeaders))
		cells = append(cells, strconv.Itoa(row.Year))

		for _, m := range row.Months {
			if m == nil {
				cells = append(cells, emptyStyle.Render("-"))

				continue
			}

			cells = append(cells, heat(*m))
		}

		cells = append(cells, heat(row.Total))
		t.Row(cells...)
	}

	return t.String()
}

func heat(v float64) string {
	s := percent(v)

	switch {
	case v > 0:
		return gainStyle.Render(s)
	case v < 0:
		return lossStyle.Render(s)
	default:
		return s
	}
}
