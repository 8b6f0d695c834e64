package alloc

import (
	"errors"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/slotkit/internal/conv"
)

// ErrArenaFull is returned when an Arena has no room left.
var ErrArenaFull = errors.New("arena is full")

// Arena is a RawAllocator that bumps an offset through one contiguous slab.
//
// Release does nothing; memory is reclaimed all at once by Reset. Alloc is
// safe for concurrent use.
type Arena struct {
	buf []byte
	off atomic.Uint64
}

// NewArena creates an Arena with a slab of size bytes.
func NewArena(size int) *Arena {
	return &Arena{
		buf: make([]byte, size),
	}
}

// Alloc carves size bytes, aligned to PointerSize, out of the slab.
func (a *Arena) Alloc(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
	for {
		cur := a.off.Load()
		start := conv.AlignUp(base+uintptr(cur), PointerSize) - base
		next, ok := conv.AddUintptr(start, size)
		if !ok || next > uintptr(len(a.buf)) {
			return nil, errors.Join(ErrOutOfMemory, ErrArenaFull)
		}
		if a.off.CompareAndSwap(cur, uint64(next)) {
			return unsafe.Pointer(&a.buf[start]), nil
		}
	}
}

// Release is a no-op.
func (a *Arena) Release(unsafe.Pointer) {}

// Used returns the number of bytes consumed, including padding.
func (a *Arena) Used() int {
	return int(a.off.Load()) //nolint:gosec // bounded by len(buf)
}

// Cap returns the slab size.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Reset rewinds the arena. Blocks handed out before Reset must no longer be used.
func (a *Arena) Reset() {
	clear(a.buf[:a.Used()])
	a.off.Store(0)
}
