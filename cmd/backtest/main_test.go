package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

type BacktestCmdTestSuite struct {
	suite.Suite
	dir      string
	dataPath string
}

func TestBacktestCmdSuite(t *testing.T) {
	suite.Run(t, new(BacktestCmdTestSuite))
}

func (suite *BacktestCmdTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.dataPath = filepath.Join(suite.dir, "bars.csv")

	var b strings.Builder
	b.WriteString("time,symbol,open,high,low,close,volume\n")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 160; i++ {
		price := 100 + 15*math.Sin(float64(i)/8)
		fmt.Fprintf(&b, "%s,TEST,%.4f,%.4f,%.4f,%.4f,%d\n",
			start.AddDate(0, 0, i).Format(time.RFC3339), price, price+1, price-1, price, 1000+i)
	}

	suite.Require().NoError(os.WriteFile(suite.dataPath, []byte(b.String()), 0644))
}

func (suite *BacktestCmdTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out

	err := app.Run(context.Background(), append([]string{"backtest"}, args...))

	return out.String(), err
}

func (suite *BacktestCmdTestSuite) writeFile(name string, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0644))

	return path
}

func (suite *BacktestCmdTestSuite) TestStrategies() {
	out, err := suite.run("strategies")
	suite.Require().NoError(err)

	suite.Contains(out, "sma_crossover")
	suite.Contains(out, "rule_based")
}

func (suite *BacktestCmdTestSuite) TestSchema() {
	out, err := suite.run("schema")
	suite.Require().NoError(err)
	suite.Contains(out, "initial_capital")

	out, err = suite.run("schema", "--strategy", "rsi")
	suite.Require().NoError(err)
	suite.Contains(out, "overbought")

	_, err = suite.run("schema", "--strategy", "missing")
	suite.Error(err)
}

func (suite *BacktestCmdTestSuite) TestRunWritesArtifacts() {
	params := suite.writeFile("params.yaml", "short_window: 5\nlong_window: 20\n")
	output := filepath.Join(suite.dir, "results")

	out, err := suite.run("run",
		"--data", suite.dataPath,
		"--strategy", "sma_crossover",
		"--params", params,
		"--output", output,
		"--no-progress",
	)
	suite.Require().NoError(err)

	suite.Contains(out, "sma_crossover on TEST (160 bars)")
	suite.Contains(out, "Sharpe ratio")
	suite.Contains(out, "Jan")

	folder := filepath.Join(output, "sma_crossover", "bars")
	for _, name := range []string{
		"stats.yaml", "report.yaml",
		"trades.parquet", "marks.parquet", "equity.parquet",
		"trades.csv", "equity.csv", "marks.csv", "monthly.csv", "weekly.csv",
	} {
		suite.FileExists(filepath.Join(folder, name))
	}

	stats, err := types.ReadRunStats(filepath.Join(folder, "stats.yaml"))
	suite.Require().NoError(err)
	suite.Require().Len(stats, 1)
	suite.Equal("sma_crossover", stats[0].Strategy.Name)
	suite.Equal(5, stats[0].Strategy.Params["short_window"])
	suite.Equal(160, stats[0].Bars)
	suite.Contains(stats[0].Metrics, "sharpe_ratio")
	suite.Equal(suite.dataPath, stats[0].DataPath)

	out, err = suite.run("stats", filepath.Join(folder, "stats.yaml"))
	suite.Require().NoError(err)
	suite.Contains(out, "sharpe_ratio")
	suite.Contains(out, stats[0].ID)
}

func (suite *BacktestCmdTestSuite) TestRunWithWindowAndConfig() {
	config := suite.writeFile("config.yaml", "initial_capital: 5000\ncommission_rate: 0.001\n")

	out, err := suite.run("run",
		"--data", suite.dataPath,
		"--strategy", "rsi",
		"--config", config,
		"--start", "2024-02-01",
		"--end", "2024-03-31",
		"--no-progress",
	)
	suite.Require().NoError(err)
	suite.Contains(out, "rsi on TEST (60 bars)")
	suite.Contains(out, "5,000.00")
}

func (suite *BacktestCmdTestSuite) TestRunResampled() {
	out, err := suite.run("run",
		"--data", suite.dataPath,
		"--strategy", "breakout",
		"--interval", "1w",
		"--no-progress",
	)
	suite.Require().NoError(err)
	suite.Contains(out, "breakout on TEST")
	suite.NotContains(out, "(160 bars)")
}

func (suite *BacktestCmdTestSuite) TestRunErrors() {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "unknown strategy",
			args: []string{"run", "--data", suite.dataPath, "--strategy", "missing", "--no-progress"},
		},
		{
			name: "missing data file",
			args: []string{"run", "--data", filepath.Join(suite.dir, "missing.csv"), "--strategy", "rsi", "--no-progress"},
		},
		{
			name: "unsupported format",
			args: []string{"run", "--data", suite.writeFile("bars.txt", "x"), "--strategy", "rsi", "--no-progress"},
		},
		{
			name: "invalid window",
			args: []string{"run", "--data", suite.dataPath, "--strategy", "rsi", "--start", "2024-03-01", "--end", "2024-02-01", "--no-progress"},
		},
		{
			name: "invalid params",
			args: []string{"run", "--data", suite.dataPath, "--strategy", "sma_crossover", "--params", suite.writeFile("bad.yaml", "short_window: 30\nlong_window: 10\n"), "--no-progress"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.run(tc.args...)
			suite.Error(err)
		})
	}
}

func (suite *BacktestCmdTestSuite) TestCompare() {
	params := suite.writeFile("fast.yaml", "short_window: 3\nlong_window: 10\n")

	out, err := suite.run("compare",
		"--data", suite.dataPath,
		"--strategy", "sma_crossover",
		"--strategy", "sma_crossover="+params,
		"--strategy", "rsi",
		"--concurrency", "2",
	)
	suite.Require().NoError(err)

	suite.Contains(out, "1:sma_crossover")
	suite.Contains(out, "2:sma_crossover")
	suite.Contains(out, "3:rsi")
	suite.Less(strings.Index(out, "1:sma_crossover"), strings.Index(out, "3:rsi"))
}

func (suite *BacktestCmdTestSuite) TestCompareUnknownStrategy() {
	_, err := suite.run("compare", "--data", suite.dataPath, "--strategy", "missing")
	suite.Error(err)
}

func (suite *BacktestCmdTestSuite) TestParseStrategySpec() {
	name, params := parseStrategySpec("rsi")
	suite.Equal("rsi", name)
	suite.Empty(params)

	name, params = parseStrategySpec(" macd = params/macd.yaml ")
	suite.Equal("macd", name)
	suite.Equal("params/macd.yaml", params)
}

func (suite *BacktestCmdTestSuite) TestProgressCallbacks() {
	var out bytes.Buffer

	callbacks := progressCallbacks(&out)
	suite.Require().NotNil(callbacks.OnBacktestStart)
	suite.Require().NotNil(callbacks.OnProcessData)
	suite.Require().NotNil(callbacks.OnBacktestEnd)
	suite.Nil(callbacks.OnTrade)

	suite.NoError((*callbacks.OnBacktestStart)("run", "rsi", 10))

	for i := 1; i <= 10; i++ {
		suite.NoError((*callbacks.OnProcessData)(i, 10))
	}

	(*callbacks.OnBacktestEnd)(nil)
}
