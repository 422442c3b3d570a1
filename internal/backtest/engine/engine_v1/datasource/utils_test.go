package datasource

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type DatasourceUtilsTestSuite struct {
	suite.Suite
}

func TestDatasourceUtilsSuite(t *testing.T) {
	suite.Run(t, new(DatasourceUtilsTestSuite))
}

func (suite *DatasourceUtilsTestSuite) TestGetIntervalMinutes() {
	tests := []struct {
		interval Interval
		minutes  int
		wantErr  bool
	}{
		{Interval1m, 1, false},
		{Interval15m, 15, false},
		{Interval1h, 60, false},
		{Interval4h, 240, false},
		{Interval1d, 1440, false},
		{Interval1w, 10080, false},
		{Interval("3d"), 0, true},
		{Interval(""), 0, true},
	}

	for _, tc := range tests {
		suite.Run("interval "+string(tc.interval), func() {
			minutes, err := getIntervalMinutes(tc.interval)
			suite.Equal(tc.minutes, minutes)

			if tc.wantErr {
				suite.ErrorContains(err, "unsupported interval")
				return
			}

			suite.NoError(err)
		})
	}
}

func (suite *DatasourceUtilsTestSuite) TestInRange() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(0, 0, 1)
	t2 := t0.AddDate(0, 0, 2)

	tests := []struct {
		name     string
		t        time.Time
		start    optional.Option[time.Time]
		end      optional.Option[time.Time]
		expected bool
	}{
		{"unbounded", t1, optional.None[time.Time](), optional.None[time.Time](), true},
		{"start inclusive", t0, optional.Some(t0), optional.None[time.Time](), true},
		{"before start", t0, optional.Some(t1), optional.None[time.Time](), false},
		{"end inclusive", t2, optional.None[time.Time](), optional.Some(t2), true},
		{"after end", t2, optional.None[time.Time](), optional.Some(t1), false},
		{"inside window", t1, optional.Some(t0), optional.Some(t2), true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, inRange(tc.t, tc.start, tc.end))
		})
	}
}
