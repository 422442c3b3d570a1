package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// PeriodKind selects calendar bucketing for periodized returns.
type PeriodKind int

const (
	Monthly PeriodKind = iota
	Weekly
)

func (k PeriodKind) String() string {
	switch k {
	case Monthly:
		return "monthly"
	case Weekly:
		return "weekly"
	default:
		return fmt.Sprintf("PeriodKind(%d)", int(k))
	}
}

// key buckets t in UTC. Weeks follow ISO 8601, so the first days of January
// can belong to the last week of the previous year.
func (k PeriodKind) key(t time.Time) string {
	t = t.UTC()
	if k == Weekly {
		year, week := t.ISOWeek()

		return fmt.Sprintf("%04d-W%02d", year, week)
	}

	return t.Format("2006-01")
}

// PeriodReturn is the return of the equity samples that fall inside one
// calendar period.
type PeriodReturn struct {
	Key        string    `yaml:"key" csv:"period"`
	Start      time.Time `yaml:"start" csv:"start"`
	End        time.Time `yaml:"end" csv:"end"`
	StartValue float64   `yaml:"start_value" csv:"start_value"`
	EndValue   float64   `yaml:"end_value" csv:"end_value"`
	Return     float64   `yaml:"return" csv:"return"`
	// Volatility is the sample standard deviation of the returns between
	// consecutive samples in the period.
	Volatility float64 `yaml:"volatility" csv:"volatility"`
	Samples    int     `yaml:"samples" csv:"samples"`
	// LowConfidence marks periods with fewer than two samples.
	LowConfidence bool `yaml:"low_confidence" csv:"low_confidence"`
}

// PeriodReturns groups curve into periods of the given kind, in time order.
func PeriodReturns(curve []types.EquityPoint, kind PeriodKind) []PeriodReturn {
	var periods []PeriodReturn

	for start := 0; start < len(curve); {
		key := kind.key(curve[start].Time)

		end := start
		for end+1 < len(curve) && kind.key(curve[end+1].Time) == key {
			end++
		}

		periods = append(periods, periodReturn(key, curve[start:end+1]))
		start = end + 1
	}

	return periods
}

func periodReturn(key string, samples []types.EquityPoint) PeriodReturn {
	first := samples[0]
	last := samples[len(samples)-1]

	p := PeriodReturn{
		Key:           key,
		Start:         first.Time,
		End:           last.Time,
		StartValue:    first.TotalEquity,
		EndValue:      last.TotalEquity,
		Samples:       len(samples),
		LowConfidence: len(samples) < 2,
	}

	if first.TotalEquity > 0 {
		p.Return = last.TotalEquity/first.TotalEquity - 1
	}

	p.Volatility = sampleStdDev(Returns(samples))

	return p
}

// PeriodSummary aggregates a list of period returns.
type PeriodSummary struct {
	Count         int     `yaml:"count"`
	Best          float64 `yaml:"best"`
	BestKey       string  `yaml:"best_key"`
	Worst         float64 `yaml:"worst"`
	WorstKey      string  `yaml:"worst_key"`
	Average       float64 `yaml:"average"`
	PositiveRatio float64 `yaml:"positive_ratio"`
}

// Summarize returns the best, worst and average period return. Low
// confidence periods are included.
func Summarize(periods []PeriodReturn) PeriodSummary {
	summary := PeriodSummary{Count: len(periods)}
	if len(periods) == 0 {
		return summary
	}

	values := make([]float64, len(periods))
	positive := 0

	summary.Best, summary.BestKey = periods[0].Return, periods[0].Key
	summary.Worst, summary.WorstKey = periods[0].Return, periods[0].Key

	for i, p := range periods {
		values[i] = p.Return

		if p.Return > 0 {
			positive++
		}

		if p.Return > summary.Best {
			summary.Best, summary.BestKey = p.Return, p.Key
		}

		if p.Return < summary.Worst {
			summary.Worst, summary.WorstKey = p.Return, p.Key
		}
	}

	summary.Average, _ = stats.Mean(values)
	summary.PositiveRatio = float64(positive) / float64(len(periods))

	return summary
}

// CalendarRow holds one year of monthly returns. A nil month has no samples.
type CalendarRow struct {
	Year   int          `yaml:"year"`
	Months [12]*float64 `yaml:"months"`
	// Total compounds the available months.
	Total float64 `yaml:"total"`
}

// Calendar is a year by month matrix of monthly returns.
type Calendar struct {
	Rows []CalendarRow `yaml:"rows"`
}

// BuildCalendar lays monthly returns out by year. Keys that do not parse as
// months are skipped.
func BuildCalendar(monthly []PeriodReturn) Calendar {
	rows := map[int]*CalendarRow{}

	for _, p := range monthly {
		t, err := time.Parse("2006-01", p.Key)
		if err != nil {
			continue
		}

		row, ok := rows[t.Year()]
		if !ok {
			row = &CalendarRow{Year: t.Year()}
			rows[t.Year()] = row
		}

		r := p.Return
		row.Months[t.Month()-1] = &r
	}

	calendar := Calendar{Rows: make([]CalendarRow, 0, len(rows))}

	for _, row := range rows {
		growth := 1.0

		for _, m := range row.Months {
			if m != nil {
				growth *= 1 + *m
			}
		}

		row.Total = growth - 1
		calendar.Rows = append(calendar.Rows, *row)
	}

	sort.Slice(calendar.Rows, func(i, j int) bool {
		return calendar.Rows[i].Year < calendar.Rows[j].Year
	})

	return calendar
}
