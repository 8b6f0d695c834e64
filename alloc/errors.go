package alloc

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is the root of every allocator failure.
	ErrAllocation = errors.New("allocation failed")

	// ErrInvalidAlignment is returned when the alignment is not a power of two.
	ErrInvalidAlignment = fmt.Errorf("%w: alignment must be a power of two", ErrAllocation)
	// ErrInvalidSize is returned for zero-sized requests.
	ErrInvalidSize = fmt.Errorf("%w: invalid size", ErrAllocation)
	// ErrOverflow is returned when the padded request does not fit in uintptr.
	ErrOverflow = fmt.Errorf("%w: size overflow", ErrAllocation)
	// ErrOutOfMemory is returned when the underlying provider cannot satisfy a request.
	ErrOutOfMemory = fmt.Errorf("%w: out of memory", ErrAllocation)
	// ErrBudgetExceeded is returned when a Budget has no room left.
	ErrBudgetExceeded = fmt.Errorf("%w: budget exceeded", ErrAllocation)
)

// Error describes a failed allocation.
//
// The cause can be accessed via errors.Unwrap and always wraps ErrAllocation.
type Error struct {
	Op    string
	Align uintptr
	Size  uintptr
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("alloc: %s(align=%d, size=%d): %v", e.Op, e.Align, e.Size, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(op string, align, size uintptr, cause error) error {
	if !errors.Is(cause, ErrAllocation) {
		cause = fmt.Errorf("%w: %w", ErrOutOfMemory, cause)
	}
	return &Error{Op: op, Align: align, Size: size, cause: cause}
}
