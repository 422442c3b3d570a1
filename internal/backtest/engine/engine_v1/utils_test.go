package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// UtilsTestSuite is a test suite for utils package
type UtilsTestSuite struct {
	suite.Suite
}

// TestUtilsSuite runs the test suite
func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestGetResultFolder() {
	tests := []struct {
		name         string
		dataPath     string
		strategyName string
		outputDir    string
		startTime    optional.Option[time.Time]
		endTime      optional.Option[time.Time]
		expectedPath string
	}{
		{
			name:         "Basic case without time range",
			dataPath:     "/path/to/data.csv",
			strategyName: "sma_crossover",
			outputDir:    "/results",
			startTime:    optional.None[time.Time](),
			endTime:      optional.None[time.Time](),
			expectedPath: "/results/sma_crossover/data",
		},
		{
			name:         "Case with time range",
			dataPath:     "/path/to/data.parquet",
			strategyName: "sma_crossover",
			outputDir:    "/results",
			startTime:    optional.Some(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			endTime:      optional.Some(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
			expectedPath: "/results/sma_crossover/data/20230101_20231231",
		},
		{
			name:         "Case with only start time",
			dataPath:     "/path/to/data.csv",
			strategyName: "rsi",
			outputDir:    "/results",
			startTime:    optional.Some(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			endTime:      optional.None[time.Time](),
			expectedPath: "/results/rsi/data/20230101_all",
		},
		{
			name:         "Case with only end time",
			dataPath:     "/path/to/data.csv",
			strategyName: "rsi",
			outputDir:    "/results",
			startTime:    optional.None[time.Time](),
			endTime:      optional.Some(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
			expectedPath: "/results/rsi/data/all_20231231",
		},
		{
			name:         "Case with complex file names",
			dataPath:     "/path/to/trading.data.csv",
			strategyName: "macd",
			outputDir:    "/results",
			startTime:    optional.None[time.Time](),
			endTime:      optional.None[time.Time](),
			expectedPath: "/results/macd/trading.data",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := EmptyConfig()
			config.StartTime = tc.startTime
			config.EndTime = tc.endTime

			resultPath := GetResultFolder(tc.outputDir, tc.strategyName, tc.dataPath, config)

			suite.Equal(filepath.Clean(tc.expectedPath), filepath.Clean(resultPath), "Result folder path mismatch")
		})
	}
}

func (suite *UtilsTestSuite) TestCalculateQuantity() {
	tests := []struct {
		name      string
		budget    string
		price     string
		precision int32
		expected  string
	}{
		{"exact", "9990", "100", 8, "99.9"},
		{"truncates rather than rounds", "100", "3", 2, "33.33"},
		{"whole units", "299", "100", 0, "2"},
		{"below one unit", "50", "100", 0, "0"},
		{"zero price", "100", "0", 8, "0"},
		{"negative budget", "-5", "10", 8, "0"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			qty := calculateQuantity(decimal.RequireFromString(tc.budget), decimal.RequireFromString(tc.price), tc.precision)
			suite.True(decimal.RequireFromString(tc.expected).Equal(qty), "got %s", qty)
		})
	}
}
