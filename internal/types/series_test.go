package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BarSeriesTestSuite struct {
	suite.Suite
	start time.Time
}

func TestBarSeriesSuite(t *testing.T) {
	suite.Run(t, new(BarSeriesTestSuite))
}

func (suite *BarSeriesTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *BarSeriesTestSuite) bars(closes ...float64) []MarketData {
	out := make([]MarketData, len(closes))
	for i, c := range closes {
		out[i] = MarketData{
			Time:   suite.start.Add(time.Duration(i) * 24 * time.Hour),
			Symbol: "AAPL",
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}

	return out
}

func (suite *BarSeriesTestSuite) TestNewBarSeries() {
	series, err := NewBarSeries(suite.bars(100, 110, 105))
	suite.Require().NoError(err)
	suite.Equal(3, series.Len())
	suite.Equal("AAPL", series.Symbol())
	suite.Equal(110.0, series.At(1).Close)
}

func (suite *BarSeriesTestSuite) TestEmptySeries() {
	series, err := NewBarSeries(nil)
	suite.Nil(series)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))
}

func (suite *BarSeriesTestSuite) TestValidationReportsIndex() {
	testCases := []struct {
		name   string
		mutate func(bars []MarketData)
		index  int
	}{
		{
			name:   "non-monotonic timestamp",
			mutate: func(bars []MarketData) { bars[2].Time = bars[1].Time },
			index:  2,
		},
		{
			name:   "zero close",
			mutate: func(bars []MarketData) { bars[1].Close = 0 },
			index:  1,
		},
		{
			name:   "negative low",
			mutate: func(bars []MarketData) { bars[3].Low = -5 },
			index:  3,
		},
		{
			name:   "negative volume",
			mutate: func(bars []MarketData) { bars[0].Volume = -1 },
			index:  0,
		},
		{
			name:   "nan open",
			mutate: func(bars []MarketData) { bars[2].Open = math.NaN() },
			index:  2,
		},
		{
			name:   "missing timestamp",
			mutate: func(bars []MarketData) { bars[0].Time = time.Time{} },
			index:  0,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			bars := suite.bars(100, 101, 102, 103)
			tc.mutate(bars)

			_, err := NewBarSeries(bars)
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))

			index, ok := errors.GetBarIndex(err)
			suite.True(ok)
			suite.Equal(tc.index, index)
		})
	}
}

func (suite *BarSeriesTestSuite) TestZeroVolumeIsAllowed() {
	bars := suite.bars(100, 101)
	bars[1].Volume = 0

	_, err := NewBarSeries(bars)
	suite.NoError(err)
}

func (suite *BarSeriesTestSuite) TestHistoryIsCapped() {
	series, err := NewBarSeries(suite.bars(100, 110, 105, 120, 115))
	suite.Require().NoError(err)

	history := series.History(2)
	suite.Equal(3, history.Len())
	suite.Equal(2, history.Index())
	suite.Equal(105.0, history.Last().Close)
	suite.Equal([]float64{100, 110, 105}, history.Closes())
	suite.Equal(3, cap(history.Closes()))
	suite.Equal(3, cap(history.Highs()))

	// Appending must reallocate rather than overwrite bar 3.
	_ = append(history.Closes(), -1)
	suite.Equal(120.0, series.At(3).Close)
}

func (suite *BarSeriesTestSuite) TestBarsReturnsCopy() {
	series, err := NewBarSeries(suite.bars(100, 110))
	suite.Require().NoError(err)

	bars := series.Bars()
	bars[0].Close = 1
	suite.Equal(100.0, series.At(0).Close)
}

func (suite *BarSeriesTestSuite) TestTruncate() {
	series, err := NewBarSeries(suite.bars(100, 110, 105, 120))
	suite.Require().NoError(err)

	truncated := series.Truncate(2)
	suite.Equal(2, truncated.Len())
	suite.Equal(4, series.Len())
	suite.Same(series, series.Truncate(10))
}

func (suite *BarSeriesTestSuite) TestNewHistory() {
	history := NewHistory(suite.bars(1, 2, 3))
	suite.Equal([]float64{1, 2, 3}, history.Closes())
	suite.Equal([]float64{2, 3, 4}, history.Highs())
	suite.Equal([]float64{0, 1, 2}, history.Lows())
	suite.Equal(3.0, history.At(2).Open)
}
