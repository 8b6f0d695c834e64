package alloc

import (
	"sync"
	"unsafe"

	"github.com/hupe1980/slotkit/internal/conv"
)

// PointerSize is the alignment used when a caller asks for none.
const PointerSize = unsafe.Sizeof(uintptr(0))

// Allocator hands out aligned blocks of memory.
//
// Malloc returns a block of at least size bytes whose address is a multiple of
// align. An align of 0 or 1 requests no special alignment, which is treated as
// PointerSize. Free releases a block previously returned by Malloc on the same
// instance; freeing nil is a no-op.
type Allocator interface {
	Malloc(align, size uintptr) (unsafe.Pointer, error)
	Free(ptr unsafe.Pointer)
}

// RawAllocator is an unaligned memory provider used by SelfEncoding.
type RawAllocator interface {
	Alloc(size uintptr) (unsafe.Pointer, error)
	Release(ptr unsafe.Pointer)
}

// NormalizeAlign validates align and maps 0 and 1 to PointerSize.
func NormalizeAlign(align uintptr) (uintptr, error) {
	if align <= 1 {
		return PointerSize, nil
	}
	if !conv.IsPow2(align) {
		return 0, ErrInvalidAlignment
	}
	if align < PointerSize {
		return PointerSize, nil
	}
	return align, nil
}

func checkRequest(op string, align, size uintptr) (uintptr, error) {
	a, err := NormalizeAlign(align)
	if err != nil {
		return 0, newError(op, align, size, err)
	}
	if size == 0 {
		return 0, newError(op, align, size, ErrInvalidSize)
	}
	return a, nil
}

var (
	defaultOnce sync.Once
	defaultMM   *SelfEncoding
)

// Default returns the process-wide allocator: a SelfEncoding allocator over
// the Go heap.
func Default() Allocator {
	defaultOnce.Do(func() {
		defaultMM = NewSelfEncoding(GoHeap())
	})
	return defaultMM
}
