package coder

import "errors"

// Encode and decode failures always mean a schema/value mismatch and are never
// retryable. Callers match on the sentinels with errors.Is.
var (
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrIntegerOverflow  = errors.New("integer overflow")
	ErrTruncatedInput   = errors.New("truncated input")
	ErrUnknownEnumTag   = errors.New("unknown enum tag")
	ErrUnsupportedValue = errors.New("unsupported value")
)
