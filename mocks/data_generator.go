package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// BarGenerator produces synthetic OHLCV bars for tests and benchmarks.
type BarGenerator struct {
	rng *rand.Rand
}

// NewBarGenerator creates a generator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewBarGenerator(seed int64) *BarGenerator {
	return &BarGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// Symbol is the trading symbol (e.g., "BTCUSDT")
	Symbol string
	// StartTime is the time of the first bar
	StartTime time.Time
	// Interval is the duration between bars
	Interval time.Duration
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility is the per-bar standard deviation of returns (0.01 = 1%)
	Volatility float64
	// Drift is the per-bar expected return
	Drift float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the relative spread of volume (0.0 to 1.0)
	VolumeVariance float64
	// CycleAmplitude adds a sine wave of this relative size to the close
	CycleAmplitude float64
	// CyclePeriod is the number of bars in one full sine wave
	CyclePeriod int
}

// DefaultConfig returns daily bars with a mild random walk.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:       24 * time.Hour,
		Count:          500,
		InitialPrice:   100.0,
		Volatility:     0.01,
		Drift:          0,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
		CycleAmplitude: 0,
		CyclePeriod:    0,
	}
}

// CycleConfig returns bars that oscillate around InitialPrice so crossover
// strategies trade several times.
func CycleConfig(count int) GeneratorConfig {
	config := DefaultConfig()
	config.Count = count
	config.Volatility = 0.002
	config.CycleAmplitude = 0.15
	config.CyclePeriod = 60

	return config
}

// Generate creates bars following a geometric random walk, optionally
// modulated by a sine wave. Prices are always positive and times strictly
// increasing.
func (g *BarGenerator) Generate(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	walk := config.InitialPrice
	prevClose := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		// Box-Muller transform for a standard normal sample
		u1 := 1 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		walk *= math.Max(1+config.Drift+config.Volatility*z, 0.5)

		closePrice := walk
		if config.CycleAmplitude > 0 && config.CyclePeriod > 0 {
			phase := 2 * math.Pi * float64(i) / float64(config.CyclePeriod)
			closePrice *= 1 + config.CycleAmplitude*math.Sin(phase)
		}

		openPrice := prevClose
		high := math.Max(openPrice, closePrice) * (1 + g.rng.Float64()*config.Volatility*0.5)
		low := math.Min(openPrice, closePrice) * (1 - g.rng.Float64()*config.Volatility*0.5)

		volume := config.VolumeBase * (1 + (g.rng.Float64()*2-1)*config.VolumeVariance)
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		data[i] = types.MarketData{
			Time:   currentTime,
			Symbol: config.Symbol,
			Open:   roundToDecimals(openPrice, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(closePrice, 4),
			Volume: roundToDecimals(volume, 2),
		}

		prevClose = closePrice
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// GenerateSeries wraps Generate in a validated BarSeries. It panics on
// invalid output, which only happens with a broken config.
func (g *BarGenerator) GenerateSeries(config GeneratorConfig) *types.BarSeries {
	series, err := types.NewBarSeries(g.Generate(config))
	if err != nil {
		panic(err)
	}

	return series
}

// BarsFromCloses builds daily bars with open = high = low = close.
func BarsFromCloses(symbol string, start time.Time, closes ...float64) []types.MarketData {
	bars := make([]types.MarketData, len(closes))
	for i, c := range closes {
		bars[i] = types.MarketData{
			Time:   start.AddDate(0, 0, i),
			Symbol: symbol,
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
