package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const hourlyCSV = `time,symbol,open,high,low,close,volume
2024-01-01 00:00:00,ETHUSDT,10,12,9,11,100
2024-01-01 01:00:00,ETHUSDT,11,13,10,12,100
2024-01-01 02:00:00,ETHUSDT,12,15,11,14,100
2024-01-01 03:00:00,ETHUSDT,14,14,8,9,100
2024-01-01 04:00:00,ETHUSDT,9,10,7,8,50
2024-01-01 05:00:00,ETHUSDT,8,9,6,7,50
`

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	dir     string
	csvPath string
	ds      *DuckDBDataSource
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.csvPath = filepath.Join(suite.dir, "hourly.csv")
	suite.Require().NoError(os.WriteFile(suite.csvPath, []byte(hourlyCSV), 0644))

	var err error
	suite.ds, err = NewDuckDBDataSource(logger.NewNopLogger())
	suite.Require().NoError(err)
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	suite.NoError(suite.ds.Close())
}

func (suite *DuckDBDataSourceTestSuite) collect(iter func(yield func(types.MarketData, error) bool)) []types.MarketData {
	var bars []types.MarketData

	for bar, err := range iter {
		suite.Require().NoError(err)

		bars = append(bars, bar)
	}

	return bars
}

func (suite *DuckDBDataSourceTestSuite) TestReadCSV() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	bars := suite.collect(suite.ds.ReadAll(optional.None[time.Time](), optional.None[time.Time]()))
	suite.Require().Len(bars, 6)
	suite.Equal("ETHUSDT", bars[0].Symbol)
	suite.Equal(11.0, bars[0].Close)
	suite.Equal(100.0, bars[0].Volume)
	suite.True(bars[5].Time.Equal(time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC)))

	count, err := suite.ds.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(6, count)
}

func (suite *DuckDBDataSourceTestSuite) TestTimeWindow() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	start := optional.Some(time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC))
	end := optional.Some(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC))

	bars := suite.collect(suite.ds.ReadAll(start, end))
	suite.Require().Len(bars, 3)
	suite.Equal(12.0, bars[0].Close)
	suite.Equal(9.0, bars[2].Close)

	count, err := suite.ds.Count(start, end)
	suite.NoError(err)
	suite.Equal(3, count)
}

func (suite *DuckDBDataSourceTestSuite) TestReadParquet() {
	parquetPath := filepath.Join(suite.dir, "hourly.parquet")

	db, err := sql.Open("duckdb", ":memory:")
	suite.Require().NoError(err)
	defer db.Close()

	_, err = db.Exec(fmt.Sprintf(`COPY (SELECT * FROM read_csv_auto('%s')) TO '%s' (FORMAT PARQUET)`, suite.csvPath, parquetPath))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.ds.Initialize(parquetPath))

	series, err := LoadSeries(suite.ds, optional.None[time.Time](), optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Equal(6, series.Len())
	suite.Equal("ETHUSDT", series.Symbol())
	suite.Equal(7.0, series.At(5).Close)
}

func (suite *DuckDBDataSourceTestSuite) TestReadResampled() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	bars := suite.collect(suite.ds.ReadResampled(Interval4h, optional.None[time.Time](), optional.None[time.Time]()))
	suite.Require().Len(bars, 2)

	first := bars[0]
	suite.True(first.Time.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	suite.Equal(10.0, first.Open)
	suite.Equal(15.0, first.High)
	suite.Equal(8.0, first.Low)
	suite.Equal(9.0, first.Close)
	suite.Equal(400.0, first.Volume)

	second := bars[1]
	suite.Equal(9.0, second.Open)
	suite.Equal(7.0, second.Close)
	suite.Equal(100.0, second.Volume)
}

func (suite *DuckDBDataSourceTestSuite) TestReadResampledInvalidInterval() {
	suite.Require().NoError(suite.ds.Initialize(suite.csvPath))

	for _, err := range suite.ds.ReadResampled(Interval("3d"), optional.None[time.Time](), optional.None[time.Time]()) {
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
	}
}

func (suite *DuckDBDataSourceTestSuite) TestUnsupportedFormat() {
	err := suite.ds.Initialize(filepath.Join(suite.dir, "bars.xlsx"))
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}

func (suite *DuckDBDataSourceTestSuite) TestMissingFile() {
	err := suite.ds.Initialize(filepath.Join(suite.dir, "missing.parquet"))
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}
