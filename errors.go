package slotkit

import (
	"errors"

	"github.com/hupe1980/slotkit/alloc"
	"github.com/hupe1980/slotkit/buffer"
	"github.com/hupe1980/slotkit/ordered"
)

// Kind is the category of a failure.
type Kind uint8

const (
	// KindNone is the Kind of a nil error.
	KindNone Kind = iota
	// KindAllocationFailure means an allocator could not provide memory.
	KindAllocationFailure
	// KindCapacityExceeded means a Static buffer is full.
	KindCapacityExceeded
	// KindInvalidRange means a source range aliases the destination.
	KindInvalidRange
	// KindPreconditionViolation means the call itself was malformed.
	KindPreconditionViolation
	// KindUnknown is any error from outside the toolkit.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAllocationFailure:
		return "allocation failure"
	case KindCapacityExceeded:
		return "capacity exceeded"
	case KindInvalidRange:
		return "invalid range"
	case KindPreconditionViolation:
		return "precondition violation"
	default:
		return "unknown"
	}
}

// Classify returns the Kind of err. Wrapped errors are unwrapped.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	// Malformed requests first: bad alignments and sizes also wrap
	// alloc.ErrAllocation.
	if errors.Is(err, alloc.ErrInvalidAlignment) ||
		errors.Is(err, alloc.ErrInvalidSize) ||
		errors.Is(err, buffer.ErrInvalidStrategy) ||
		errors.Is(err, ordered.ErrUnsortedInput) {
		return KindPreconditionViolation
	}

	var re *buffer.RangeError
	if errors.As(err, &re) || errors.Is(err, buffer.ErrInvalidRange) {
		return KindInvalidRange
	}
	if errors.Is(err, buffer.ErrCapacityExceeded) {
		return KindCapacityExceeded
	}

	var ae *alloc.Error
	if errors.As(err, &ae) || errors.Is(err, alloc.ErrAllocation) {
		return KindAllocationFailure
	}
	return KindUnknown
}

// IsKind reports whether err classifies as k.
func IsKind(err error, k Kind) bool {
	return Classify(err) == k
}
