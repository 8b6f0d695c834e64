package buffer

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/hupe1980/slotkit/alloc"
	"github.com/hupe1980/slotkit/elem"
	"github.com/hupe1980/slotkit/internal/conv"
	"github.com/hupe1980/slotkit/internal/mem"
)

// storage is a set of slots together with what is needed to release them.
type storage[T any] struct {
	slots []T
	block unsafe.Pointer
}

// Reserve ensures room for at least n elements.
func (b *Buffer[T]) Reserve(n int) error {
	if n <= len(b.slots) {
		return nil
	}

	switch b.strategy.kind {
	case KindStatic:
		return fmt.Errorf("%w: need %d slots, static capacity is %d", ErrCapacityExceeded, n, b.strategy.inline)
	case KindHybrid:
		if !b.onHeap && n <= b.strategy.inline {
			return nil
		}
	}

	count, err := conv.IntToUintptr(n)
	if err != nil {
		return fmt.Errorf("buffer: reserve: %w", err)
	}
	bytes, ok := conv.MulUintptr(count, b.elemSize)
	if !ok || (b.elemSize > 0 && bytes > mem.MaxAlloc()) {
		err := fmt.Errorf("buffer: reserve %d elements: %w", n, alloc.ErrOverflow)
		b.logger.LogReserve(context.Background(), len(b.slots), n, bytes, err)
		return err
	}

	wasInline := !b.onHeap
	if b.elemSize == 0 {
		b.adopt(storage[T]{slots: make([]T, n)})
		return nil
	}

	rounded := bytes
	if r := b.strategy.round; r > 1 {
		if v, ok := conv.RoundUp(bytes, r); ok {
			rounded = v
		}
	}

	st, err := b.acquire(rounded)
	if err != nil && rounded != bytes {
		rounded = bytes
		st, err = b.acquire(bytes)
	}
	if err != nil {
		b.logger.LogReserve(context.Background(), len(b.slots), n, bytes, err)
		return err
	}

	from := len(b.slots)
	b.adopt(st)
	b.logger.LogReserve(context.Background(), from, len(b.slots), rounded, nil)
	if wasInline && b.strategy.kind == KindHybrid {
		b.logger.LogPromotion(context.Background(), b.strategy.inline, len(b.slots), b.length)
	}
	return nil
}

// acquire obtains heap slots for bytes bytes. The slot count is
// bytes / sizeof(T).
func (b *Buffer[T]) acquire(bytes uintptr) (storage[T], error) {
	count, err := conv.UintptrToInt(bytes / b.elemSize)
	if err != nil {
		return storage[T]{}, fmt.Errorf("buffer: %w", alloc.ErrOverflow)
	}
	align := max(b.strategy.align, b.elemAlign)

	if b.pointers {
		slots, err := mem.AlignedSlice[T](count, align)
		if err != nil {
			return storage[T]{}, fmt.Errorf("buffer: allocate %d bytes: %w: %w", bytes, alloc.ErrOutOfMemory, err)
		}
		return storage[T]{slots: slots}, nil
	}

	p, err := b.alloc.Malloc(align, bytes)
	if err != nil {
		return storage[T]{}, err
	}
	slots := unsafe.Slice((*T)(p), count)
	clear(slots)
	return storage[T]{slots: slots, block: p}, nil
}

// adopt relocates the live elements into st and releases the old storage.
func (b *Buffer[T]) adopt(st storage[T]) {
	old := b.slots[:b.length]
	b.relocate(st.slots[:b.length], old)
	b.release()
	b.slots = st.slots
	b.block = st.block
	b.onHeap = true
}

// relocate moves live elements from src into the raw slots dst, leaving src raw.
func (b *Buffer[T]) relocate(dst, src []T) {
	if len(src) == 0 {
		return
	}
	if b.kind == elem.KindObject {
		b.ops.Initialize(dst)
		b.ops.Move(dst, src)
		b.ops.Destroy(src)
		return
	}
	copy(dst, src)
	clear(src)
}

// release drops the heap storage, if any, without touching elements.
func (b *Buffer[T]) release() {
	if !b.onHeap {
		return
	}
	if b.block != nil {
		b.alloc.Free(b.block)
	}
	b.block = nil
	b.onHeap = false
	b.slots = nil
}

// Free destroys every element and releases heap storage. A promoted Hybrid
// buffer goes back to its inline slots.
func (b *Buffer[T]) Free() {
	b.Clear()
	if !b.onHeap {
		return
	}
	from := len(b.slots)
	b.release()
	b.slots = b.inline
	b.logger.LogRelease(context.Background(), from, len(b.slots))
}

// Recycle shrinks heap storage to exactly Len slots. A promoted Hybrid buffer
// keeps heap storage while it holds elements; an empty one is freed.
func (b *Buffer[T]) Recycle() error {
	if !b.onHeap {
		return nil
	}
	if b.length == 0 {
		b.Free()
		return nil
	}
	if b.length == len(b.slots) {
		return nil
	}

	if b.elemSize == 0 {
		b.adopt(storage[T]{slots: make([]T, b.length)})
		return nil
	}
	bytes := uintptr(b.length) * b.elemSize
	st, err := b.acquire(bytes)
	if err != nil {
		b.logger.LogReserve(context.Background(), len(b.slots), b.length, bytes, err)
		return err
	}
	from := len(b.slots)
	b.adopt(st)
	b.logger.LogRelease(context.Background(), from, len(b.slots))
	return nil
}
