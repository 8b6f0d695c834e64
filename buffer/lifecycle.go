package buffer

import (
	"github.com/hupe1980/slotkit/internal/mem"
)

// Move replaces the contents of b with the contents of other and leaves
// other empty.
//
// When other holds a heap block and b is not Static, the block and the
// allocator that owns it are handed over without touching the elements.
// Otherwise the elements are relocated one by one after reserving room, so a
// failure leaves both buffers unchanged.
func (b *Buffer[T]) Move(other *Buffer[T]) error {
	if other == b || other == nil {
		return nil
	}

	if other.onHeap && b.strategy.kind != KindStatic {
		b.Free()
		b.slots = other.slots
		b.block = other.block
		b.alloc = other.alloc
		b.length = other.length
		b.onHeap = true

		other.slots = other.inline
		other.block = nil
		other.length = 0
		other.onHeap = false
		return nil
	}

	if err := b.Reserve(other.length); err != nil {
		return err
	}
	b.Clear()
	b.relocate(b.slots[:other.length], other.slots[:other.length])
	b.length = other.length
	other.length = 0
	other.Free()
	return nil
}

// Assign replaces the contents with copies of src.
func (b *Buffer[T]) Assign(src []T) error {
	if mem.Overlaps(src, b.slots) {
		return rangeError("assign", 0, len(src), b.length)
	}
	if err := b.Reserve(len(src)); err != nil {
		return err
	}
	b.Clear()
	_, err := b.Insert(0, src...)
	return err
}

// Clone returns a buffer with the same strategy, policy, allocator and logger
// holding copies of every element.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	c := &Buffer[T]{
		strategy:  b.strategy,
		ops:       b.ops,
		kind:      b.kind,
		alloc:     b.alloc,
		logger:    b.logger,
		elemSize:  b.elemSize,
		elemAlign: b.elemAlign,
		pointers:  b.pointers,

		inlineAlign: b.inlineAlign,
	}
	if len(b.inline) > 0 {
		inline, err := mem.AlignedSlice[T](len(b.inline), b.inlineAlign)
		if err != nil {
			return nil, err
		}
		c.inline = inline
		c.slots = inline
	}
	if _, err := c.Insert(0, b.Data()...); err != nil {
		return nil, err
	}
	return c, nil
}
