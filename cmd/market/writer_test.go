package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/stretchr/testify/suite"
)

type WriterTestSuite struct {
	suite.Suite
	dir string
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

func (suite *WriterTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *WriterTestSuite) TestNewMarketWriter() {
	tests := []struct {
		name    string
		kind    MarketWriter
		wantErr bool
	}{
		{name: "csv", kind: MarketWriterCSV},
		{name: "parquet", kind: MarketWriterParquet},
		{name: "unknown", kind: "duckdb", wantErr: true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			writer, err := NewMarketWriter(tc.kind)
			if tc.wantErr {
				suite.Error(err)
				suite.Nil(writer)

				return
			}

			suite.NoError(err)
			suite.NotNil(writer)
		})
	}
}

func (suite *WriterTestSuite) TestRoundTrip() {
	config := mocks.DefaultConfig()
	config.Count = 50
	bars := mocks.NewBarGenerator(3).Generate(config)

	log, err := logger.NewLogger()
	suite.Require().NoError(err)

	for _, kind := range []MarketWriter{MarketWriterCSV, MarketWriterParquet} {
		suite.Run(string(kind), func() {
			path := filepath.Join(suite.dir, "nested", "bars."+string(kind))

			writer, err := NewMarketWriter(kind)
			suite.Require().NoError(err)
			suite.Require().NoError(writer.Write(path, bars))

			ds, err := datasource.Open(path, log)
			suite.Require().NoError(err)
			defer ds.Close()

			series, err := datasource.LoadSeries(ds, optional.None[time.Time](), optional.None[time.Time]())
			suite.Require().NoError(err)
			suite.Require().Equal(len(bars), series.Len())

			first := series.At(0)
			suite.True(bars[0].Time.Equal(first.Time))
			suite.Equal(bars[0].Symbol, first.Symbol)
			suite.InDelta(bars[0].Close, first.Close, 1e-9)

			last := series.At(series.Len() - 1)
			suite.InDelta(bars[len(bars)-1].Close, last.Close, 1e-9)
		})
	}
}

func (suite *WriterTestSuite) TestGenerateAction() {
	path := filepath.Join(suite.dir, "synthetic.csv")

	err := newApp().Run(context.Background(), []string{
		"market",
		"--output", path,
		"--symbol", "ABC",
		"--count", "30",
		"--interval", "1h",
		"--seed", "7",
	})
	suite.Require().NoError(err)

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Contains(string(content), "time,symbol,open,high,low,close,volume")
	suite.Contains(string(content), "ABC")
}

func (suite *WriterTestSuite) TestGenerateActionErrors() {
	tests := []struct {
		name string
		args []string
	}{
		{name: "zero count", args: []string{"--count", "0"}},
		{name: "negative price", args: []string{"--price=-1"}},
		{name: "zero interval", args: []string{"--interval", "0s"}},
		{name: "unknown writer", args: []string{"--writer", "json"}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			args := append([]string{"market", "--output", filepath.Join(suite.dir, "x.csv")}, tc.args...)
			suite.Error(newApp().Run(context.Background(), args))
		})
	}
}
