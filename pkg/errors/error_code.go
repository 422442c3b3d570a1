package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeInvalidThreshold     ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105

	// Data errors (200-299)
	ErrCodeInvalidBar            ErrorCode = 200
	ErrCodeEmptySeries           ErrorCode = 201
	ErrCodeDataSourceUnavailable ErrorCode = 202
	ErrCodeQueryFailed           ErrorCode = 203
	ErrCodeUnsupportedFormat     ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound    ErrorCode = 300
	ErrCodeIndicatorCalculation ErrorCode = 301

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound      ErrorCode = 400
	ErrCodeStrategyConfigError   ErrorCode = 401
	ErrCodeStrategyAlreadyExists ErrorCode = 402

	// Ledger errors (500-599)
	ErrCodeInvalidSignal   ErrorCode = 500
	ErrCodeNegativeBalance ErrorCode = 501

	// Backtest errors (600-699)
	ErrCodeBacktestNotInitialized ErrorCode = 600
	ErrCodeBacktestConfigError    ErrorCode = 601
	ErrCodeBacktestNoStrategy     ErrorCode = 602
	ErrCodeBacktestCancelled      ErrorCode = 603
	ErrCodeBacktestStateError     ErrorCode = 604

	// Analytics errors (700-799)
	ErrCodeEmptyEquityCurve ErrorCode = 700
	ErrCodeInvalidEquity    ErrorCode = 701

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800
)
