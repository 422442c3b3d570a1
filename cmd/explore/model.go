package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-backtest/internal/analytics"
	engine_types "github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// Application states.
const (
	StateStrategySelect = iota
	StateParamsInput
	StateRunning
	StateResults
)

// sender lets the backtest goroutine reach the running program. It is shared
// by every copy of the model.
type sender struct {
	program *tea.Program
}

func (s *sender) send(msg tea.Msg) {
	if s.program != nil {
		s.program.Send(msg)
	}
}

// Model is the main Bubble Tea model for the backtest explorer.
type Model struct {
	state        int
	strategyList list.Model
	paramsInput  textinput.Model
	tradesTable  table.Model
	registry     strategy.Registry
	series       *types.BarSeries
	config       engine.BacktestEngineV1Config
	log          *logger.Logger
	strategyName string
	current      int
	total        int
	result       *types.BacktestResult
	report       analytics.Report
	err          error
	width        int
	height       int

	// Run control
	cancel context.CancelFunc
	sender *sender
}

// NewModel creates a Model exploring series with config.
func NewModel(series *types.BarSeries, config engine.BacktestEngineV1Config, log *logger.Logger) Model {
	registry := strategy.NewDefaultRegistry()

	return Model{
		state:        StateStrategySelect,
		strategyList: NewStrategyList(registry.List()),
		paramsInput:  NewParamsInput(),
		tradesTable:  NewTradesTable(),
		registry:     registry,
		series:       series,
		config:       config,
		log:          log,
		sender:       &sender{},
	}
}

// SetProgram sets the tea.Program used to report progress from the run.
func (m *Model) SetProgram(p *tea.Program) {
	m.sender.program = p
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopRun()
			return m, tea.Quit
		case "q":
			if m.state != StateParamsInput {
				m.stopRun()
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.strategyList.SetSize(msg.Width, msg.Height-4)
		m.tradesTable.SetWidth(msg.Width)
		m.tradesTable.SetHeight(msg.Height - 8)
		return m, nil

	case RunProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		return m, nil

	case RunFinishedMsg:
		m.cancel = nil
		m.result = &msg.Result
		m.report = msg.Report
		m.tradesTable = UpdateTradeRows(m.tradesTable, msg.Result.Trades)
		m.state = StateResults
		return m, nil

	case RunErrorMsg:
		m.cancel = nil
		m.err = msg.Err
		m.state = StateParamsInput
		m.paramsInput.Focus()
		return m, textinput.Blink
	}

	switch m.state {
	case StateStrategySelect:
		return m.updateStrategySelect(msg)
	case StateParamsInput:
		return m.updateParamsInput(msg)
	case StateResults:
		return m.updateResults(msg)
	}

	return m, nil
}

func (m *Model) stopRun() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateParamsInput:
		m.err = nil
		m.paramsInput.Blur()
		m.state = StateStrategySelect
	case StateRunning:
		// the run reports a RunErrorMsg once it sees the cancellation
		m.stopRun()
	case StateResults:
		m.result = nil
		m.report = analytics.Report{}
		m.tradesTable.SetRows(nil)
		m.state = StateParamsInput
		m.paramsInput.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) updateStrategySelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if item, ok := m.strategyList.SelectedItem().(listItem); ok {
			m.strategyName = item.name
			m.paramsInput.Reset()
			m.paramsInput.Focus()
			m.state = StateParamsInput
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.strategyList, cmd = m.strategyList.Update(msg)
	return m, cmd
}

func (m Model) updateParamsInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		params, err := ParseParams(m.paramsInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}

		strat, err := m.registry.Create(m.strategyName, params)
		if err != nil {
			m.err = err
			return m, nil
		}

		ctx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		m.err = nil
		m.current = 0
		m.total = m.series.Len()
		m.paramsInput.Blur()
		m.state = StateRunning

		return m, m.runBacktest(ctx, strat)
	}

	var cmd tea.Cmd
	m.paramsInput, cmd = m.paramsInput.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.tradesTable, cmd = m.tradesTable.Update(msg)
	return m, cmd
}

// runBacktest returns a command that runs strat over the series and reports
// progress through the program.
func (m Model) runBacktest(ctx context.Context, strat strategy.Strategy) tea.Cmd {
	series := m.series
	config := m.config
	log := m.log
	out := m.sender

	return func() tea.Msg {
		backtest, err := engine.NewBacktestEngineV1WithConfig(config, log)
		if err != nil {
			return RunErrorMsg{Err: err}
		}

		onProcess := engine_types.OnProcessDataCallback(func(current int, total int) error {
			out.send(RunProgressMsg{Current: current, Total: total})
			return nil
		})

		result, err := backtest.Run(ctx, series, strat, engine_types.LifecycleCallbacks{OnProcessData: &onProcess})
		if err != nil {
			return RunErrorMsg{Err: err}
		}

		report, err := analytics.Analyze(analytics.InputFromResult(result), config.AnalyticsConfig())
		if err != nil {
			return RunErrorMsg{Err: err}
		}

		return RunFinishedMsg{Result: result, Report: report}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateStrategySelect:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Argo Backtest - %s (%d bars)", m.series.Symbol(), m.series.Len())))
		s.WriteString("\n\n")
		s.WriteString(m.strategyList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, q to quit"))

	case StateParamsInput:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Params for %s", m.strategyName)))
		s.WriteString("\n\n")
		s.WriteString("Enter comma-separated key=value pairs, or leave empty for defaults:\n\n")
		s.WriteString(m.paramsInput.View())
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(HelpStyle.Render("Press Enter to run, Esc to go back"))

	case StateRunning:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Running %s", m.strategyName)))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Processed %d/%d bars\n\n", m.current, m.total))
		s.WriteString(HelpStyle.Render("Esc: cancel | q: quit"))

	case StateResults:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Results - %s on %s", m.strategyName, m.series.Symbol())))
		s.WriteString("\n\n")
		s.WriteString(SummaryLine(m.report))
		s.WriteString("\n\n")

		if m.result != nil && len(m.result.Trades) == 0 {
			s.WriteString("No closed trades\n")
		} else {
			s.WriteString(m.tradesTable.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("q: quit | Esc: change params"))
	}

	return s.String()
}
