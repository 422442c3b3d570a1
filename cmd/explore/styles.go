package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	GainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	LossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// FormatPnL formats a realized PnL with an arrow showing its sign.
func FormatPnL(pnl float64) string {
	s := fmt.Sprintf("%.2f", pnl)

	switch {
	case pnl > 0:
		return s + " ▲"
	case pnl < 0:
		return s + " ▼"
	}

	return s
}

// colorize renders s in the gain or loss color depending on the sign of v.
func colorize(s string, v float64) string {
	switch {
	case v > 0:
		return GainStyle.Render(s)
	case v < 0:
		return LossStyle.Render(s)
	}

	return s
}
