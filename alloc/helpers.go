package alloc

import (
	"unsafe"

	"github.com/hupe1980/slotkit/internal/conv"
	"github.com/hupe1980/slotkit/internal/mem"
)

// Calloc allocates n*size zeroed bytes. The product is overflow-checked.
func Calloc(a Allocator, align, n, size uintptr) (unsafe.Pointer, error) {
	if n == 0 || size == 0 {
		return nil, newError("calloc", align, 0, ErrInvalidSize)
	}
	total, ok := conv.MulUintptr(n, size)
	if !ok {
		return nil, newError("calloc", align, n, ErrOverflow)
	}
	p, err := a.Malloc(align, total)
	if err != nil {
		return nil, err
	}
	clear(unsafe.Slice((*byte)(p), total))
	return p, nil
}

// Realloc resizes a block.
//
// A nil ptr behaves like Malloc and a zero newSize frees ptr and returns nil.
// Growing allocates a new block, copies oldSize bytes and frees the old one.
// Shrinking keeps the block in place. On failure ptr is left untouched.
func Realloc(a Allocator, align uintptr, ptr unsafe.Pointer, oldSize, newSize uintptr) (unsafe.Pointer, error) {
	if ptr == nil {
		return a.Malloc(align, newSize)
	}
	if newSize == 0 {
		a.Free(ptr)
		return nil, nil
	}
	if newSize <= oldSize {
		return ptr, nil
	}
	p, err := a.Malloc(align, newSize)
	if err != nil {
		return nil, err
	}
	copy(unsafe.Slice((*byte)(p), oldSize), unsafe.Slice((*byte)(ptr), oldSize))
	a.Free(ptr)
	return p, nil
}

// New allocates a zero T from a. T must not contain Go pointers.
func New[T any](a Allocator, align uintptr) (*T, error) {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 || mem.HasPointers[T]() {
		return nil, newError("new", align, size, ErrInvalidSize)
	}
	if align == 0 {
		align = unsafe.Alignof(zero)
	}
	p, err := a.Malloc(align, size)
	if err != nil {
		return nil, err
	}
	t := (*T)(p)
	*t = zero
	return t, nil
}

// Delete returns t, obtained from New on the same allocator, to a.
func Delete[T any](a Allocator, t *T) {
	if t == nil {
		return
	}
	var zero T
	*t = zero
	a.Free(unsafe.Pointer(t))
}
