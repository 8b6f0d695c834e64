package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when a Static buffer is asked to hold
	// more than its fixed capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidRange is returned when a source range aliases the buffer's own
	// storage in a way the operation cannot support.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidStrategy is returned by New for a strategy that cannot be
	// built, such as a negative inline capacity.
	ErrInvalidStrategy = errors.New("invalid strategy")
)

// RangeError describes a rejected source range.
//
// The original underlying error can be accessed via errors.Unwrap.
type RangeError struct {
	Op    string
	Pos   int
	Count int
	Len   int
	cause error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("buffer: %s at %d (count=%d, len=%d): %v", e.Op, e.Pos, e.Count, e.Len, e.cause)
}

func (e *RangeError) Unwrap() error { return e.cause }

// NewRangeError returns a RangeError wrapping ErrInvalidRange.
func NewRangeError(op string, pos, count, length int) error {
	return &RangeError{Op: op, Pos: pos, Count: count, Len: length, cause: ErrInvalidRange}
}

func rangeError(op string, pos, count, length int) error {
	return NewRangeError(op, pos, count, length)
}
