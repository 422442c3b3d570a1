package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/stretchr/testify/suite"
)

type BacktestStateTestSuite struct {
	suite.Suite
	state  *BacktestState
	logger *logger.Logger
}

func TestBacktestStateSuite(t *testing.T) {
	suite.Run(t, new(BacktestStateTestSuite))
}

func (suite *BacktestStateTestSuite) SetupSuite() {
	suite.logger = logger.NewNopLogger()

	var err error
	suite.state, err = NewBacktestState(suite.logger)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.state.Initialize())
}

func (suite *BacktestStateTestSuite) TearDownSuite() {
	suite.NoError(suite.state.Close())
}

func (suite *BacktestStateTestSuite) TearDownTest() {
	suite.Require().NoError(suite.state.Cleanup())
}

func sampleResult(runID string) types.BacktestResult {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return types.BacktestResult{
		RunID:    runID,
		Strategy: "sma_crossover",
		Symbol:   "TEST",
		EquityCurve: []types.EquityPoint{
			{Time: t0, Cash: 0, PositionValue: 9990, TotalEquity: 9990},
			{Time: t0.AddDate(0, 0, 1), Cash: 0, PositionValue: 10989, TotalEquity: 10989},
			{Time: t0.AddDate(0, 0, 2), Cash: 11976.012, PositionValue: 0, TotalEquity: 11976.012},
		},
		Trades: []types.Trade{
			{
				EntryTime:      t0,
				EntryPrice:     100,
				ExitTime:       t0.AddDate(0, 0, 2),
				ExitPrice:      120,
				Quantity:       99.9,
				CommissionPaid: 21.988,
				RealizedPnL:    1976.012,
				ReturnPct:      19.76012,
			},
		},
		Marks: []types.Mark{
			{Index: 0, Time: t0, Signal: types.SignalTypeBuy, Price: 100, Executed: true, Reason: reasonOpened},
			{Index: 2, Time: t0.AddDate(0, 0, 2), Signal: types.SignalTypeSell, Price: 120, Executed: true, Reason: reasonClosed},
		},
	}
}

func (suite *BacktestStateTestSuite) TestRecordAndCount() {
	suite.Require().NoError(suite.state.Record(sampleResult("run-1")))
	suite.Require().NoError(suite.state.Record(sampleResult("run-2")))

	tests := []struct {
		table    string
		expected int
	}{
		{"trades", 1},
		{"marks", 2},
		{"equity", 3},
	}

	for _, tc := range tests {
		suite.Run(tc.table, func() {
			count, err := suite.state.Count(tc.table, "run-1")
			suite.NoError(err)
			suite.Equal(tc.expected, count)
		})
	}
}

func (suite *BacktestStateTestSuite) TestGetAllTrades() {
	result := sampleResult("run-1")
	suite.Require().NoError(suite.state.Record(result))

	trades, err := suite.state.GetAllTrades("run-1")
	suite.Require().NoError(err)
	suite.Require().Len(trades, 1)

	suite.InDelta(1976.012, trades[0].RealizedPnL, 1e-9)
	suite.InDelta(99.9, trades[0].Quantity, 1e-9)
	suite.True(trades[0].ExitTime.Equal(result.Trades[0].ExitTime))

	missing, err := suite.state.GetAllTrades("unknown")
	suite.NoError(err)
	suite.Empty(missing)
}

func (suite *BacktestStateTestSuite) TestRecordLargeCurve() {
	result := sampleResult("big")
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	result.EquityCurve = make([]types.EquityPoint, 1234)

	for i := range result.EquityCurve {
		result.EquityCurve[i] = types.EquityPoint{Time: t0.Add(time.Duration(i) * time.Hour), Cash: 100, TotalEquity: 100}
	}

	suite.Require().NoError(suite.state.Record(result))

	count, err := suite.state.Count("equity", "big")
	suite.NoError(err)
	suite.Equal(1234, count)
}

func (suite *BacktestStateTestSuite) TestCleanup() {
	suite.Require().NoError(suite.state.Record(sampleResult("run-1")))
	suite.Require().NoError(suite.state.Cleanup())

	count, err := suite.state.Count("trades", "run-1")
	suite.NoError(err)
	suite.Equal(0, count)
}

func (suite *BacktestStateTestSuite) TestWrite() {
	suite.Require().NoError(suite.state.Record(sampleResult("run-1")))

	dir := filepath.Join(suite.T().TempDir(), "nested", "out")
	paths, err := suite.state.Write(dir)
	suite.Require().NoError(err)

	for _, table := range []string{"trades", "marks", "equity"} {
		path, ok := paths[table]
		suite.True(ok, table)
		suite.Equal(filepath.Join(dir, table+".parquet"), path)

		info, err := os.Stat(path)
		suite.NoError(err)
		suite.Positive(info.Size())
	}
}
