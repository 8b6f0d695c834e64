package alloc

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/slotkit/internal/mem"
)

// Heap is a RawAllocator backed by Go byte slices.
//
// Blocks are reclaimed by the garbage collector once nothing points into them,
// so Release only drops the reference. Memory obtained from Heap must not be
// used to hold Go pointers.
type Heap struct {
	maxBytes uintptr
}

// GoHeap returns an unbounded Heap.
func GoHeap() *Heap {
	return &Heap{}
}

// GoHeapLimit returns a Heap that refuses single requests larger than maxBytes.
// A limit of zero means unbounded.
func GoHeapLimit(maxBytes uintptr) *Heap {
	return &Heap{maxBytes: maxBytes}
}

// Alloc returns a zeroed block of size bytes.
func (h *Heap) Alloc(size uintptr) (p unsafe.Pointer, err error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}
	if (h.maxBytes > 0 && size > h.maxBytes) || size > mem.MaxAlloc() {
		return nil, ErrOutOfMemory
	}

	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()

	buf := make([]byte, size)
	return unsafe.Pointer(unsafe.SliceData(buf)), nil
}

// Release is a no-op; the collector reclaims unreachable blocks.
func (h *Heap) Release(unsafe.Pointer) {}
