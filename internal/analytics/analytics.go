// Package analytics turns a finished equity curve and trade log into risk and
// return statistics. It never mutates its input and does no I/O.
package analytics

import (
	"math"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Config holds the annualization and reporting settings.
type Config struct {
	// PeriodsPerYear is the number of equity samples in a year, e.g. 252 for
	// daily bars or 8760 for hourly bars.
	PeriodsPerYear float64 `yaml:"periods_per_year"`
	// RiskFreeRate is the annual risk free rate. It is spread evenly over
	// PeriodsPerYear when computing excess returns.
	RiskFreeRate float64 `yaml:"risk_free_rate"`
	// DrawdownThreshold is the minimum depth of a reported drawdown episode.
	DrawdownThreshold float64 `yaml:"drawdown_threshold"`
}

// DefaultConfig returns daily annualization with no risk free rate.
func DefaultConfig() Config {
	return Config{
		PeriodsPerYear:    252,
		RiskFreeRate:      0,
		DrawdownThreshold: 0.001,
	}
}

// Input is the output of one backtest run.
type Input struct {
	EquityCurve  []types.EquityPoint
	Trades       []types.Trade
	OpenPosition optional.Option[types.Position]
}

// InputFromResult adapts an engine result.
func InputFromResult(result types.BacktestResult) Input {
	return Input{
		EquityCurve:  result.EquityCurve,
		Trades:       result.Trades,
		OpenPosition: result.OpenPosition(),
	}
}

// OpenPositionSummary describes a position still held at the end of the run.
// It is excluded from trade statistics.
type OpenPositionSummary struct {
	Quantity      float64   `yaml:"quantity"`
	EntryPrice    float64   `yaml:"entry_price"`
	EntryTime     time.Time `yaml:"entry_time"`
	UnrealizedPnL float64   `yaml:"unrealized_pnl"`
}

// Report is the full analytics output of a run.
type Report struct {
	Config Config `yaml:"config"`

	Start         time.Time `yaml:"start"`
	End           time.Time `yaml:"end"`
	Bars          int       `yaml:"bars"`
	InitialEquity float64   `yaml:"initial_equity"`
	FinalEquity   float64   `yaml:"final_equity"`

	TotalReturn          float64 `yaml:"total_return"`
	AnnualizedReturn     float64 `yaml:"annualized_return"`
	AnnualizedVolatility float64 `yaml:"annualized_volatility"`
	SharpeRatio          float64 `yaml:"sharpe_ratio"`
	// SortinoRatio is +Inf when SortinoNoDownside is set.
	SortinoRatio      float64 `yaml:"sortino_ratio"`
	SortinoNoDownside bool    `yaml:"sortino_no_downside"`
	CalmarRatio       float64 `yaml:"calmar_ratio"`

	MaxDrawdown      DrawdownEpisode      `yaml:"max_drawdown"`
	DrawdownEpisodes []DrawdownEpisode    `yaml:"drawdown_episodes"`
	TradeStats       TradeStats           `yaml:"trade_stats"`
	MonthlyReturns   []PeriodReturn       `yaml:"monthly_returns"`
	WeeklyReturns    []PeriodReturn       `yaml:"weekly_returns"`
	MonthlySummary   PeriodSummary        `yaml:"monthly_summary"`
	WeeklySummary    PeriodSummary        `yaml:"weekly_summary"`
	Calendar         Calendar             `yaml:"calendar"`
	OpenPosition     *OpenPositionSummary `yaml:"open_position,omitempty"`
}

// Analyze computes the report for input. An empty equity curve is a usage
// error; statistical degeneracies such as zero variance or zero trades are
// not errors and resolve to documented sentinel values.
func Analyze(input Input, cfg Config) (Report, error) {
	if err := validate(input, cfg); err != nil {
		return Report{}, err
	}

	curve := input.EquityCurve
	equity := equityValues(curve)
	returns := Returns(curve)

	report := Report{
		Config:        cfg,
		Start:         curve[0].Time,
		End:           curve[len(curve)-1].Time,
		Bars:          len(curve),
		InitialEquity: equity[0],
		FinalEquity:   equity[len(equity)-1],
	}

	report.TotalReturn = totalReturn(equity)
	report.AnnualizedReturn = annualizedReturn(report.TotalReturn, len(returns), cfg.PeriodsPerYear)
	report.AnnualizedVolatility = AnnualizedVolatility(returns, cfg.PeriodsPerYear)
	report.SharpeRatio = SharpeRatio(returns, cfg.RiskFreeRate, cfg.PeriodsPerYear)
	report.SortinoRatio, report.SortinoNoDownside = SortinoRatio(returns, cfg.RiskFreeRate, cfg.PeriodsPerYear)

	report.MaxDrawdown = MaxDrawdown(curve)
	report.DrawdownEpisodes = DrawdownEpisodes(curve, cfg.DrawdownThreshold)

	if report.MaxDrawdown.Depth > 0 {
		report.CalmarRatio = report.AnnualizedReturn / report.MaxDrawdown.Depth
	}

	report.TradeStats = ComputeTradeStats(input.Trades)

	report.MonthlyReturns = PeriodReturns(curve, Monthly)
	report.WeeklyReturns = PeriodReturns(curve, Weekly)
	report.MonthlySummary = Summarize(report.MonthlyReturns)
	report.WeeklySummary = Summarize(report.WeeklyReturns)
	report.Calendar = BuildCalendar(report.MonthlyReturns)

	if input.OpenPosition.IsSome() {
		position := input.OpenPosition.Unwrap()
		report.OpenPosition = &OpenPositionSummary{
			Quantity:      position.Quantity,
			EntryPrice:    position.AverageEntryPrice,
			EntryTime:     position.EntryTime,
			UnrealizedPnL: position.UnrealizedPnL,
		}
	}

	return report, nil
}

func validate(input Input, cfg Config) error {
	if len(input.EquityCurve) == 0 {
		return errors.New(errors.ErrCodeEmptyEquityCurve, "equity curve is empty")
	}

	if !(cfg.PeriodsPerYear > 0) || math.IsInf(cfg.PeriodsPerYear, 0) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "periods_per_year must be positive, got %v", cfg.PeriodsPerYear)
	}

	if cfg.DrawdownThreshold < 0 || cfg.DrawdownThreshold >= 1 {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "drawdown_threshold must be in [0, 1), got %v", cfg.DrawdownThreshold)
	}

	for i, p := range input.EquityCurve {
		if math.IsNaN(p.TotalEquity) || math.IsInf(p.TotalEquity, 0) || p.TotalEquity < 0 {
			return errors.Newf(errors.ErrCodeInvalidEquity, "invalid equity %v at index %d", p.TotalEquity, i)
		}
	}

	return nil
}

func equityValues(curve []types.EquityPoint) []float64 {
	values := make([]float64, len(curve))
	for i, p := range curve {
		values[i] = p.TotalEquity
	}

	return values
}

func totalReturn(equity []float64) float64 {
	first := equity[0]
	if first <= 0 {
		return 0
	}

	return equity[len(equity)-1]/first - 1
}

// annualizedReturn compounds total over n returns to a yearly rate.
func annualizedReturn(total float64, n int, periodsPerYear float64) float64 {
	if n == 0 {
		return 0
	}

	if total <= -1 {
		return -1
	}

	return math.Pow(1+total, periodsPerYear/float64(n)) - 1
}
