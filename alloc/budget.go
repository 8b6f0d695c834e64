package alloc

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/slotkit/internal/logging"
)

// Budget caps the number of bytes outstanding in an inner Allocator.
//
// Requests that would exceed the limit fail with ErrBudgetExceeded without
// waiting. Budget is safe for concurrent use and is typically shared by many
// containers.
type Budget struct {
	inner  Allocator
	limit  int64
	sem    *semaphore.Weighted
	used   atomic.Int64
	logger *logging.Logger

	mu    sync.Mutex
	sizes map[unsafe.Pointer]int64
}

// BudgetOption configures a Budget.
type BudgetOption func(*Budget)

// WithBudgetLogger logs refused requests to l.
func WithBudgetLogger(l *slog.Logger) BudgetOption {
	return func(b *Budget) {
		b.logger = logging.Wrap(l)
	}
}

// NewBudget wraps inner with a limit of limitBytes. A nil inner uses Default.
func NewBudget(inner Allocator, limitBytes int64, opts ...BudgetOption) *Budget {
	if inner == nil {
		inner = Default()
	}
	if limitBytes < 0 {
		limitBytes = 0
	}
	b := &Budget{
		inner:  inner,
		limit:  limitBytes,
		sem:    semaphore.NewWeighted(limitBytes),
		logger: logging.NoopLogger(),
		sizes:  make(map[unsafe.Pointer]int64),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Malloc implements Allocator.
func (b *Budget) Malloc(align, size uintptr) (unsafe.Pointer, error) {
	if _, err := checkRequest("malloc", align, size); err != nil {
		return nil, err
	}
	n := int64(size) //nolint:gosec // compared against the limit below
	if n < 0 || n > b.limit || !b.sem.TryAcquire(n) {
		if b.logger.Enabled(context.Background(), slog.LevelWarn) {
			b.logger.Warn("allocation refused",
				"size", size,
				"used", b.used.Load(),
				"limit", b.limit,
			)
		}
		return nil, newError("malloc", align, size, ErrBudgetExceeded)
	}

	p, err := b.inner.Malloc(align, size)
	if err != nil {
		b.sem.Release(n)
		return nil, err
	}

	b.mu.Lock()
	b.sizes[p] = n
	b.mu.Unlock()
	b.used.Add(n)
	return p, nil
}

// Free implements Allocator.
func (b *Budget) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	b.mu.Lock()
	n, ok := b.sizes[ptr]
	delete(b.sizes, ptr)
	b.mu.Unlock()

	b.inner.Free(ptr)
	if ok {
		b.used.Add(-n)
		b.sem.Release(n)
	}
}

// Used returns the number of bytes currently charged to the budget.
func (b *Budget) Used() int64 {
	return b.used.Load()
}

// Limit returns the configured limit in bytes.
func (b *Budget) Limit() int64 {
	return b.limit
}

// Remaining returns the number of bytes still available.
func (b *Budget) Remaining() int64 {
	return b.limit - b.used.Load()
}
