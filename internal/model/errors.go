package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable covers unknown symbols, empty responses, rate limits
	// and upstream failures.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrMalformedRecord means a field could not be parsed or a record broke
	// a data model invariant.
	ErrMalformedRecord = errors.New("malformed record")
)

// RecordError attaches the symbol and field to ErrDataUnavailable or
// ErrMalformedRecord.
type RecordError struct {
	Symbol string
	Field  string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Symbol, e.Err)
	}
	return fmt.Sprintf("%s: field %q: %v", e.Symbol, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Unavailable wraps cause as ErrDataUnavailable for symbol.
func Unavailable(symbol string, cause error) error {
	if cause == nil {
		return &RecordError{Symbol: symbol, Err: ErrDataUnavailable}
	}
	return &RecordError{Symbol: symbol, Err: fmt.Errorf("%w: %w", ErrDataUnavailable, cause)}
}

// Malformed reports that field of symbol's record is invalid.
func Malformed(symbol, field string, cause error) error {
	if cause == nil {
		return &RecordError{Symbol: symbol, Field: field, Err: ErrMalformedRecord}
	}
	return &RecordError{Symbol: symbol, Field: field, Err: fmt.Errorf("%w: %w", ErrMalformedRecord, cause)}
}
