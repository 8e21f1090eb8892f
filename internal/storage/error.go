package storage

import "errors"

// Error description
const (
	ErrExecuteStatement = "failed to execute statement"
	ErrExecuteQuery     = "failed to execute query"
	ErrScanData         = "failed to scan data"
)

var (
	ErrTradeNotFound      = errors.New("trade not found")
	ErrPredictionNotFound = errors.New("prediction not found")
)
