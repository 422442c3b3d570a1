package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestConstructors() {
	cause := errors.New("underlying error")

	tests := []struct {
		name    string
		err     *Error
		code    ErrorCode
		message string
		cause   error
		text    string
	}{
		{
			name:    "New",
			err:     New(ErrCodeInvalidParameter, "invalid parameter"),
			code:    ErrCodeInvalidParameter,
			message: "invalid parameter",
			text:    "[100] invalid parameter",
		},
		{
			name:    "Newf",
			err:     Newf(ErrCodeStrategyNotFound, "strategy %s not found", "rsi"),
			code:    ErrCodeStrategyNotFound,
			message: "strategy rsi not found",
			text:    "[400] strategy rsi not found",
		},
		{
			name:    "Wrap",
			err:     Wrap(ErrCodeInvalidBar, "invalid bar", cause),
			code:    ErrCodeInvalidBar,
			message: "invalid bar",
			cause:   cause,
			text:    "[200] invalid bar: underlying error",
		},
		{
			name:    "Wrapf",
			err:     Wrapf(ErrCodeQueryFailed, cause, "query failed for file: %s", "bars.parquet"),
			code:    ErrCodeQueryFailed,
			message: "query failed for file: bars.parquet",
			cause:   cause,
			text:    "[203] query failed for file: bars.parquet: underlying error",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.code, tc.err.Code)
			suite.Equal(tc.message, tc.err.Message)
			suite.Equal(tc.cause, tc.err.Unwrap())
			suite.Equal(tc.text, tc.err.Error())
		})
	}
}

func (suite *ErrorTestSuite) TestCodes() {
	inner := New(ErrCodeInvalidBar, "invalid bar")
	outer := Wrap(ErrCodeBacktestConfigError, "bad run", inner)

	suite.Equal(ErrCodeBacktestConfigError, GetCode(outer))
	suite.True(HasCode(outer, ErrCodeBacktestConfigError))
	suite.False(HasCode(outer, ErrCodeInvalidBar))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))
	suite.Equal(ErrCodeEmptyEquityCurve, GetCode(fmt.Errorf("analyze: %w", New(ErrCodeEmptyEquityCurve, "empty"))))

	suite.True(Is(outer, inner))

	var coded *Error
	suite.True(As(outer, &coded))
	suite.Equal(ErrCodeBacktestConfigError, coded.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeRanges() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeInvalidBar)
	suite.Equal(ErrorCode(300), ErrCodeIndicatorNotFound)
	suite.Equal(ErrorCode(400), ErrCodeStrategyNotFound)
	suite.Equal(ErrorCode(500), ErrCodeInvalidSignal)
	suite.Equal(ErrorCode(600), ErrCodeBacktestNotInitialized)
	suite.Equal(ErrorCode(700), ErrCodeEmptyEquityCurve)
	suite.Equal(ErrorCode(800), ErrCodeCallbackFailed)
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataErrorf(20, 5, "AAPL", "insufficient data for %s: required %d, got %d", "sma", 20, 5)

	suite.Equal(20, err.Required)
	suite.Equal(5, err.Actual)
	suite.Equal("AAPL", err.Symbol)
	suite.Equal("insufficient data for sma: required 20, got 5", err.Error())
	suite.True(HasCode(err, ErrCodeInsufficientData))
	suite.True(HasCode(fmt.Errorf("indicator: %w", err), ErrCodeInsufficientData))
}

func (suite *ErrorTestSuite) TestBarValidationError() {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	err := NewBarValidationError(3, ts, "close must be positive, got %v", -1.0)

	suite.Equal(3, err.Index)
	suite.Equal("close must be positive, got -1", err.Reason)
	suite.Equal("[200] invalid bar at index 3 (2024-01-02T00:00:00Z): close must be positive, got -1", err.Error())
	suite.True(HasCode(err, ErrCodeInvalidBar))
}

func (suite *ErrorTestSuite) TestGetBarIndex() {
	wrapped := fmt.Errorf("failed to run backtest: %w", NewBarValidationError(7, time.Time{}, "timestamp not increasing"))

	index, ok := GetBarIndex(wrapped)
	suite.True(ok)
	suite.Equal(7, index)

	index, ok = GetBarIndex(errors.New("standard error"))
	suite.False(ok)
	suite.Equal(-1, index)
}
