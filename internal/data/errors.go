package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrBillNotFound         = errors.New("bill not found")
	ErrBillRequestRequired  = errors.New("bill request is required")
	ErrDatabaseURLRequired  = errors.New("database url is required")
	ErrHistoryLimitRequired = errors.New("history limit must be positive")
	ErrReportSessionClosed  = errors.New("report session already closed")
)
