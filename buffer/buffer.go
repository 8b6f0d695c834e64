package buffer

import (
	"fmt"
	"iter"
	"log/slog"
	"unsafe"

	"github.com/hupe1980/slotkit/alloc"
	"github.com/hupe1980/slotkit/elem"
	"github.com/hupe1980/slotkit/internal/logging"
	"github.com/hupe1980/slotkit/internal/mem"
)

// Buffer is a growable contiguous sequence of T.
//
// slots always spans the full capacity. Slots [0, Len) hold live elements;
// the rest are raw and zeroed.
type Buffer[T any] struct {
	strategy Strategy
	ops      elem.Ops[T]
	kind     elem.Kind
	alloc    alloc.Allocator
	logger   *logging.Logger

	inline      []T
	inlineAlign uintptr
	slots       []T
	length      int

	// block is the allocator block behind slots, nil for inline storage and
	// typed Go memory.
	block  unsafe.Pointer
	onHeap bool

	elemSize  uintptr
	elemAlign uintptr
	pointers  bool
}

// New creates an empty Buffer. A nil ops uses elem.Object.
func New[T any](strategy Strategy, ops elem.Ops[T], opts ...Option) (*Buffer[T], error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.allocator == nil {
		o.allocator = alloc.Default()
	}
	if ops == nil {
		ops = elem.Object[T]()
	}

	if strategy.inline < 0 {
		return nil, fmt.Errorf("buffer: inline capacity %d: %w", strategy.inline, ErrInvalidStrategy)
	}
	if strategy.kind != KindStatic {
		if _, err := alloc.NormalizeAlign(strategy.align); err != nil {
			return nil, fmt.Errorf("buffer: %w", err)
		}
	}

	var zero T
	b := &Buffer[T]{
		strategy:  strategy,
		ops:       ops,
		kind:      ops.Kind(),
		alloc:     o.allocator,
		logger:    logging.Wrap(o.logger).WithStrategy(strategy.kind.String()),
		elemSize:  unsafe.Sizeof(zero),
		elemAlign: unsafe.Alignof(zero),
		pointers:  mem.HasPointers[T](),
	}

	if strategy.kind != KindDynamic && strategy.inline > 0 {
		inline, err := mem.AlignedSlice[T](strategy.inline, o.align)
		if err != nil {
			return nil, fmt.Errorf("buffer: inline storage: %w", err)
		}
		b.inline = inline
		b.inlineAlign = o.align
		b.slots = inline
	}

	if o.reserve > 0 {
		if err := b.Reserve(o.reserve); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int { return b.length }

// Cap returns the number of slots.
func (b *Buffer[T]) Cap() int { return len(b.slots) }

// IsEmpty reports whether the buffer holds no elements.
func (b *Buffer[T]) IsEmpty() bool { return b.length == 0 }

// Data returns the live elements. The slice aliases the buffer and is
// invalidated by any operation that changes Len or Cap.
func (b *Buffer[T]) Data() []T { return b.slots[:b.length:b.length] }

// At returns the element at i. It panics if i is out of range, like slice
// indexing.
func (b *Buffer[T]) At(i int) T { return b.Data()[i] }

// Ptr returns a pointer to the element at i, or nil if i is out of range.
func (b *Buffer[T]) Ptr(i int) *T {
	if i < 0 || i >= b.length {
		return nil
	}
	return &b.slots[i]
}

// Set copy-assigns v to the element at i.
func (b *Buffer[T]) Set(i int, v T) error {
	if i < 0 || i >= b.length {
		return rangeError("set", i, 1, b.length)
	}
	b.replace(b.slots[i:i+1], []T{v})
	return nil
}

// SetMove moves *v into the element at i. On success v has been consumed
// and must not be destroyed again.
func (b *Buffer[T]) SetMove(i int, v *T) error {
	if i < 0 || i >= b.length {
		return rangeError("set", i, 1, b.length)
	}
	src := unsafe.Slice(v, 1)
	if mem.Overlaps(src, b.slots) {
		return rangeError("set", i, 1, b.length)
	}
	b.replaceMove(b.slots[i:i+1], src)
	return nil
}

// Overlaps reports whether s shares memory with any slot of the buffer,
// live or raw.
func (b *Buffer[T]) Overlaps(s []T) bool {
	return mem.Overlaps(s, b.slots)
}

// Dispose destroys vs with the buffer's element policy. Used to drop
// elements the buffer took ownership of but did not keep.
func (b *Buffer[T]) Dispose(vs []T) {
	b.destroy(vs)
}

// IsInline reports whether the buffer currently uses its inline slots.
func (b *Buffer[T]) IsInline() bool { return !b.onHeap && b.strategy.kind != KindDynamic }

// IsPromoted reports whether a Hybrid buffer has moved to heap storage.
func (b *Buffer[T]) IsPromoted() bool { return b.strategy.kind == KindHybrid && b.onHeap }

// Strategy returns the storage strategy.
func (b *Buffer[T]) Strategy() Strategy { return b.strategy }

// Ops returns the element policy.
func (b *Buffer[T]) Ops() elem.Ops[T] { return b.ops }

// Allocator returns the allocator that backs heap blocks.
func (b *Buffer[T]) Allocator() alloc.Allocator { return b.alloc }

// Logger returns the logger the buffer reports to.
func (b *Buffer[T]) Logger() *slog.Logger { return b.logger.Logger }

// All returns an iterator over index/element pairs in order.
func (b *Buffer[T]) All() iter.Seq2[int, T] {
	return b.Range(0, b.length)
}

// Range returns an iterator over the elements in [from, to), clamped to the
// live range.
func (b *Buffer[T]) Range(from, to int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		from, to := clamp(from, 0, b.length), clamp(to, 0, b.length)
		for i := from; i < to && i < b.length; i++ {
			if !yield(i, b.slots[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over index/element pairs in reverse order.
func (b *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := b.length - 1; i >= 0; i-- {
			if i >= b.length {
				continue
			}
			if !yield(i, b.slots[i]) {
				return
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
