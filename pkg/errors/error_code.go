package errors

import "strconv"

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeDataPathError         ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 302

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError ErrorCode = 401
	ErrCodeVersionMismatch     ErrorCode = 404
	ErrCodeUnknownDecision     ErrorCode = 405

	// Trading errors (500-599)
	ErrCodeOrderFailed             ErrorCode = 500
	ErrCodeMarketDataMissing       ErrorCode = 502
	ErrCodeInsufficientBuyingPower ErrorCode = 503
	ErrCodePositionAlreadyOpen     ErrorCode = 504

	// Backtest errors (600-699)
	ErrCodeBacktestStateNil      ErrorCode = 600
	ErrCodeBacktestInitFailed    ErrorCode = 601
	ErrCodeBacktestConfigError   ErrorCode = 602
	ErrCodeBacktestDataPathError ErrorCode = 603
	ErrCodeBacktestNoStrategies  ErrorCode = 604
	ErrCodeBacktestNoDatasource  ErrorCode = 608
	ErrCodeBacktestCancelled     ErrorCode = 609

	// Callback errors (800-899)
	ErrCodeCallbackFailed ErrorCode = 800

	// Sweep errors (900-999)
	ErrCodeEmptySweep       ErrorCode = 900
	ErrCodeInvalidGrid      ErrorCode = 901
	ErrCodeSweepRunFailed   ErrorCode = 902
	ErrCodeResultWriteError ErrorCode = 903
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                 "UNKNOWN",
	ErrCodeInvalidParameter:        "INVALID_PARAMETER",
	ErrCodeInvalidConfiguration:    "INVALID_CONFIGURATION",
	ErrCodeInvalidType:             "INVALID_TYPE",
	ErrCodeInvalidPeriod:           "INVALID_PERIOD",
	ErrCodeMissingParameter:        "MISSING_PARAMETER",
	ErrCodeInvalidVersion:          "INVALID_VERSION",
	ErrCodeDataNotFound:            "DATA_NOT_FOUND",
	ErrCodeDataSourceUnavailable:   "DATA_SOURCE_UNAVAILABLE",
	ErrCodeQueryFailed:             "QUERY_FAILED",
	ErrCodeDataPathError:           "DATA_PATH_ERROR",
	ErrCodeIndicatorCalculation:    "INDICATOR_CALCULATION",
	ErrCodeStrategyConfigError:     "STRATEGY_CONFIG_ERROR",
	ErrCodeVersionMismatch:         "VERSION_MISMATCH",
	ErrCodeUnknownDecision:         "UNKNOWN_DECISION",
	ErrCodeOrderFailed:             "ORDER_FAILED",
	ErrCodeMarketDataMissing:       "MARKET_DATA_MISSING",
	ErrCodeInsufficientBuyingPower: "INSUFFICIENT_BUYING_POWER",
	ErrCodePositionAlreadyOpen:     "POSITION_ALREADY_OPEN",
	ErrCodeBacktestStateNil:        "BACKTEST_STATE_NIL",
	ErrCodeBacktestInitFailed:      "BACKTEST_INIT_FAILED",
	ErrCodeBacktestConfigError:     "BACKTEST_CONFIG_ERROR",
	ErrCodeBacktestDataPathError:   "BACKTEST_DATA_PATH_ERROR",
	ErrCodeBacktestNoStrategies:    "BACKTEST_NO_STRATEGIES",
	ErrCodeBacktestNoDatasource:    "BACKTEST_NO_DATASOURCE",
	ErrCodeBacktestCancelled:       "BACKTEST_CANCELLED",
	ErrCodeCallbackFailed:          "CALLBACK_FAILED",
	ErrCodeEmptySweep:              "EMPTY_SWEEP",
	ErrCodeInvalidGrid:             "INVALID_GRID",
	ErrCodeSweepRunFailed:          "SWEEP_RUN_FAILED",
	ErrCodeResultWriteError:        "RESULT_WRITE_ERROR",
}

// String returns the code's name, e.g. EMPTY_SWEEP.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "CODE_" + strconv.Itoa(int(c))
}
