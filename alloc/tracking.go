package alloc

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// Stats is a snapshot of a Tracking allocator.
type Stats struct {
	Mallocs    int64
	Frees      int64
	Failures   int64
	BytesInUse int64
	PeakBytes  int64
}

// Live returns the number of blocks that have not been freed.
func (s Stats) Live() int64 {
	return s.Mallocs - s.Frees
}

// Tracking wraps an Allocator and counts what passes through it.
// It is safe for concurrent use.
type Tracking struct {
	inner Allocator

	mallocs    atomic.Int64
	frees      atomic.Int64
	failures   atomic.Int64
	bytesInUse atomic.Int64
	peakBytes  atomic.Int64

	mu    sync.Mutex
	sizes map[unsafe.Pointer]uintptr
}

// NewTracking wraps inner. A nil inner uses Default.
func NewTracking(inner Allocator) *Tracking {
	if inner == nil {
		inner = Default()
	}
	return &Tracking{
		inner: inner,
		sizes: make(map[unsafe.Pointer]uintptr),
	}
}

// Malloc implements Allocator.
func (t *Tracking) Malloc(align, size uintptr) (unsafe.Pointer, error) {
	p, err := t.inner.Malloc(align, size)
	if err != nil {
		t.failures.Add(1)
		return nil, err
	}

	t.mu.Lock()
	t.sizes[p] = size
	t.mu.Unlock()

	t.mallocs.Add(1)
	inUse := t.bytesInUse.Add(int64(size)) //nolint:gosec // bounded by the address space
	for {
		peak := t.peakBytes.Load()
		if inUse <= peak || t.peakBytes.CompareAndSwap(peak, inUse) {
			break
		}
	}
	return p, nil
}

// Free implements Allocator.
func (t *Tracking) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	t.mu.Lock()
	size, ok := t.sizes[ptr]
	delete(t.sizes, ptr)
	t.mu.Unlock()

	if ok {
		t.frees.Add(1)
		t.bytesInUse.Add(-int64(size)) //nolint:gosec // bounded by the address space
	}
	t.inner.Free(ptr)
}

// Stats returns a snapshot of the counters.
func (t *Tracking) Stats() Stats {
	return Stats{
		Mallocs:    t.mallocs.Load(),
		Frees:      t.frees.Load(),
		Failures:   t.failures.Load(),
		BytesInUse: t.bytesInUse.Load(),
		PeakBytes:  t.peakBytes.Load(),
	}
}

// SizeOf returns the requested size of a live block.
func (t *Tracking) SizeOf(ptr unsafe.Pointer) (uintptr, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	size, ok := t.sizes[ptr]
	return size, ok
}
