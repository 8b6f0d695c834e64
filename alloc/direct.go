package alloc

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/slotkit/internal/conv"
	"github.com/hupe1980/slotkit/internal/logging"
	"github.com/hupe1980/slotkit/internal/mmap"
)

// Direct allocates every block as its own anonymous memory mapping.
//
// Mappings are page aligned. Larger alignments over-map by align bytes and
// return the first aligned address inside the mapping. Direct is safe for
// concurrent use.
type Direct struct {
	logger *logging.Logger
	unmap  func(*mmap.Mapping) error

	mu       sync.Mutex
	mappings map[uintptr]*mmap.Mapping

	unmapFailures atomic.Int64
}

// DirectOption configures a Direct allocator.
type DirectOption func(*Direct)

// WithDirectLogger logs failed unmaps to l.
func WithDirectLogger(l *slog.Logger) DirectOption {
	return func(d *Direct) {
		d.logger = logging.Wrap(l)
	}
}

// NewDirect creates a Direct allocator.
func NewDirect(opts ...DirectOption) *Direct {
	d := &Direct{
		logger:   logging.NoopLogger(),
		unmap:    (*mmap.Mapping).Close,
		mappings: make(map[uintptr]*mmap.Mapping),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Malloc maps a new block of at least size bytes.
func (d *Direct) Malloc(align, size uintptr) (unsafe.Pointer, error) {
	a, err := checkRequest("malloc", align, size)
	if err != nil {
		return nil, err
	}

	total := size
	page := uintptr(mmap.PageSize()) //nolint:gosec // page size is positive
	if a > page {
		var ok bool
		if total, ok = conv.AddUintptr(size, a); !ok {
			return nil, newError("malloc", align, size, ErrOverflow)
		}
	}
	n, err := conv.UintptrToInt(total)
	if err != nil {
		return nil, newError("malloc", align, size, ErrOverflow)
	}

	m, err := mmap.MapAnon(n)
	if err != nil {
		return nil, newError("malloc", align, size, err)
	}

	base := unsafe.Pointer(unsafe.SliceData(m.Bytes()))
	off := conv.AlignUp(m.Addr(), a) - m.Addr()
	p := unsafe.Add(base, off)

	d.mu.Lock()
	d.mappings[uintptr(p)] = m
	d.mu.Unlock()

	return p, nil
}

// Free unmaps a block returned by Malloc. Unknown pointers are ignored. A
// failed unmap is counted and logged; the block is forgotten either way.
func (d *Direct) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	d.mu.Lock()
	m, ok := d.mappings[uintptr(ptr)]
	delete(d.mappings, uintptr(ptr))
	d.mu.Unlock()

	if !ok {
		return
	}
	n := len(m.Bytes())
	if err := d.unmap(m); err != nil {
		d.unmapFailures.Add(1)
		if d.logger.Enabled(context.Background(), slog.LevelWarn) {
			d.logger.Warn("unmap failed",
				"addr", uintptr(ptr),
				"bytes", n,
				"error", err,
			)
		}
	}
}

// Live returns the number of blocks that have not been freed.
func (d *Direct) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.mappings)
}

// UnmapFailures returns the number of blocks whose unmap failed in Free.
func (d *Direct) UnmapFailures() int64 {
	return d.unmapFailures.Load()
}
