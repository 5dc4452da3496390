package timebill

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks an input row with a bad date, a bad duration
	// or missing columns.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrMissingCategory marks a record whose category is not configured.
	ErrMissingCategory = errors.New("unknown category")

	ErrInvalidCategories = errors.New("invalid categories")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidDivisor    = errors.New("invalid divisor")
)

// RecordError locates a rejected input record.
type RecordError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
