package alloc

import (
	"unsafe"
)

// Block records a live allocation together with the allocator that owns it.
//
// The zero Block is empty and valid.
type Block struct {
	Ptr   unsafe.Pointer
	Size  uintptr
	Align uintptr

	owner Allocator
}

// Malloc releases the current block and allocates a new one from a.
// A size of zero leaves the block empty and succeeds.
func (b *Block) Malloc(a Allocator, align, size uintptr) error {
	b.Free()
	if size == 0 {
		if _, err := NormalizeAlign(align); err != nil {
			return newError("malloc", align, size, err)
		}
		return nil
	}
	p, err := a.Malloc(align, size)
	if err != nil {
		return err
	}
	*b = Block{Ptr: p, Size: size, Align: align, owner: a}
	return nil
}

// Realloc resizes the block, keeping its contents up to the smaller size.
//
// The block stays in place when it is large enough and already satisfies
// align. A zero size frees the block. On failure the block is unchanged.
func (b *Block) Realloc(a Allocator, align, size uintptr) error {
	if b.Ptr == nil {
		return b.Malloc(a, align, size)
	}
	if size == 0 {
		b.Free()
		return nil
	}
	if _, err := NormalizeAlign(align); err != nil {
		return newError("realloc", align, size, err)
	}
	if size <= b.Size && b.IsAligned(align) {
		b.Size = size
		b.Align = align
		return nil
	}
	p, err := a.Malloc(align, size)
	if err != nil {
		return err
	}
	copy(unsafe.Slice((*byte)(p), size), b.Bytes())
	b.owner.Free(b.Ptr)
	*b = Block{Ptr: p, Size: size, Align: align, owner: a}
	return nil
}

// Free returns the block to its allocator and empties it.
func (b *Block) Free() {
	if b.Ptr != nil && b.owner != nil {
		b.owner.Free(b.Ptr)
	}
	*b = Block{}
}

// IsAligned reports whether the block address is a multiple of n.
// An empty block is aligned to everything.
func (b *Block) IsAligned(n uintptr) bool {
	if n <= 1 {
		return true
	}
	return uintptr(b.Ptr)%n == 0
}

// Bytes views the block as a byte slice.
func (b *Block) Bytes() []byte {
	if b.Ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.Ptr), b.Size)
}

// Valid reports whether the block holds an allocation.
func (b *Block) Valid() bool {
	return b.Ptr != nil
}
