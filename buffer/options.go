package buffer

import (
	"log/slog"

	"github.com/hupe1980/slotkit/alloc"
)

type options struct {
	allocator alloc.Allocator
	logger    *slog.Logger
	reserve   int
	align     uintptr
}

// Option configures a Buffer.
type Option func(*options)

// WithAllocator sets the allocator used for heap blocks of pointer-free
// element types. The allocator must outlive the buffer.
//
// If nil is passed, alloc.Default is used.
func WithAllocator(a alloc.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithLogger sets the logger for growth, promotion and release events.
//
// If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithReserve reserves room for n elements at construction.
func WithReserve(n int) Option {
	return func(o *options) {
		o.reserve = n
	}
}

// WithAlignment aligns the inline slots of Static and Hybrid buffers.
// Heap alignment is part of the Dynamic and Hybrid strategies.
func WithAlignment(align uintptr) Option {
	return func(o *options) {
		o.align = align
	}
}
