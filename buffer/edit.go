package buffer

import (
	"fmt"

	"github.com/hupe1980/slotkit/alloc"
	"github.com/hupe1980/slotkit/elem"
	"github.com/hupe1980/slotkit/internal/conv"
	"github.com/hupe1980/slotkit/internal/mem"
)

// Insert copies src into the buffer at pos and returns the position of the
// first inserted element. pos is clamped into [0, Len].
//
// src may alias elements before pos as long as the buffer does not need to
// grow; any other overlap with the buffer's storage is rejected with
// ErrInvalidRange.
func (b *Buffer[T]) Insert(pos int, src ...T) (int, error) {
	pos, err := b.open("insert", pos, src, false)
	if err != nil {
		return pos, err
	}
	b.fill(b.slots[pos:pos+len(src)], src)
	return pos, nil
}

// InsertN inserts count copies of v at pos.
func (b *Buffer[T]) InsertN(pos int, v T, count int) (int, error) {
	if count <= 0 {
		return clamp(pos, 0, b.length), nil
	}
	pos, err := b.openN("insert", pos, count)
	if err != nil {
		return pos, err
	}
	one := []T{v}
	for i := pos; i < pos+count; i++ {
		b.fill(b.slots[i:i+1], one)
	}
	return pos, nil
}

// Inject moves src into the buffer at pos. On success the elements of src
// belong to the buffer and src is left zeroed; the caller must not destroy
// them again. src must not overlap the buffer's storage.
func (b *Buffer[T]) Inject(pos int, src []T) (int, error) {
	pos, err := b.open("inject", pos, src, true)
	if err != nil {
		return pos, err
	}
	b.take(b.slots[pos:pos+len(src)], src)
	return pos, nil
}

// InjectFrom moves count elements starting at from out of other and into the
// buffer at pos. The range is clamped to other's live elements.
func (b *Buffer[T]) InjectFrom(pos int, other *Buffer[T], from, count int) (int, error) {
	if other == b {
		return clamp(pos, 0, b.length), rangeError("inject", pos, count, b.length)
	}
	from, count = other.Clamp(from, count)

	pos, err := b.Inject(pos, other.slots[from:from+count])
	if err != nil {
		return pos, err
	}
	other.Discard(from, count)
	return pos, nil
}

// Expand opens count freshly initialized slots at pos.
func (b *Buffer[T]) Expand(pos, count int) (int, error) {
	if count <= 0 {
		return clamp(pos, 0, b.length), nil
	}
	pos, err := b.openN("expand", pos, count)
	if err != nil {
		return pos, err
	}
	gap := b.slots[pos : pos+count]
	if b.kind == elem.KindObject {
		b.ops.Destroy(gap)
	}
	clear(gap)
	b.ops.Initialize(gap)
	return pos, nil
}

// Append copies src to the end of the buffer.
func (b *Buffer[T]) Append(src ...T) error {
	_, err := b.Insert(b.length, src...)
	return err
}

// Delete removes the elements in [pos, pos+count), intersected with the live
// range, preserving the order of the rest. It returns the position of the
// first element after the removed range.
func (b *Buffer[T]) Delete(pos, count int) int {
	pos, count = b.Clamp(pos, count)
	if count == 0 {
		return pos
	}
	newLen := b.length - count

	if b.kind == elem.KindObject {
		b.ops.Move(b.slots[pos:newLen], b.slots[pos+count:b.length])
		b.destroy(b.slots[newLen:b.length])
	} else {
		b.destroy(b.slots[pos : pos+count])
		copy(b.slots[pos:], b.slots[pos+count:b.length])
		clear(b.slots[newLen:b.length])
	}
	b.length = newLen
	return pos
}

// DeleteFlip removes the elements in [pos, pos+count), intersected with the
// live range, by moving the last min(count, Len-pos-count) elements into the
// hole. It runs in time proportional to the number of elements moved and
// does not preserve order. It returns pos.
func (b *Buffer[T]) DeleteFlip(pos, count int) int {
	pos, count = b.Clamp(pos, count)
	if count == 0 {
		return pos
	}
	newLen := b.length - count
	m := min(count, b.length-pos-count)

	if b.kind == elem.KindObject {
		b.ops.Move(b.slots[pos:pos+m], b.slots[b.length-m:b.length])
		b.destroy(b.slots[newLen:b.length])
	} else {
		b.destroy(b.slots[pos : pos+count])
		copy(b.slots[pos:pos+m], b.slots[b.length-m:b.length])
		clear(b.slots[newLen:b.length])
	}
	b.length = newLen
	return pos
}

// Discard removes the elements in [pos, pos+count) whose slots have already
// been emptied by a move, preserving the order of the rest.
func (b *Buffer[T]) Discard(pos, count int) int {
	pos, count = b.Clamp(pos, count)
	if count == 0 {
		return pos
	}
	if b.kind == elem.KindObject {
		b.ops.Initialize(b.slots[pos : pos+count])
		return b.Delete(pos, count)
	}
	newLen := b.length - count
	copy(b.slots[pos:], b.slots[pos+count:b.length])
	clear(b.slots[newLen:b.length])
	b.length = newLen
	return pos
}

// Clamp intersects [pos, pos+count) with the live range and returns the
// resulting start and length.
func (b *Buffer[T]) Clamp(pos, count int) (int, int) {
	if count <= 0 {
		return clamp(pos, 0, b.length), 0
	}
	end, ok := conv.AddInt(pos, count)
	if !ok {
		end = b.length
	}
	lo, hi := clamp(pos, 0, b.length), clamp(end, 0, b.length)
	return lo, max(0, hi-lo)
}

// Clear destroys every element. Capacity is kept.
func (b *Buffer[T]) Clear() {
	b.destroy(b.slots[:b.length])
	b.length = 0
}

// open validates src against pos, grows the buffer and shifts the tail right
// by len(src). For moves any overlap with storage is rejected.
func (b *Buffer[T]) open(op string, pos int, src []T, move bool) (int, error) {
	pos = clamp(pos, 0, b.length)
	if len(src) == 0 {
		return pos, nil
	}
	newLen, ok := conv.AddInt(b.length, len(src))
	if !ok {
		return pos, fmt.Errorf("buffer: %s %d elements: %w", op, len(src), alloc.ErrOverflow)
	}

	switch {
	case move, newLen > len(b.slots):
		if mem.Overlaps(src, b.slots) {
			return pos, rangeError(op, pos, len(src), b.length)
		}
	default:
		if mem.Overlaps(src, b.slots[pos:]) {
			return pos, rangeError(op, pos, len(src), b.length)
		}
	}

	if err := b.Reserve(newLen); err != nil {
		return pos, err
	}
	b.shift(pos, len(src))
	return pos, nil
}

func (b *Buffer[T]) openN(op string, pos, count int) (int, error) {
	pos = clamp(pos, 0, b.length)
	newLen, ok := conv.AddInt(b.length, count)
	if !ok {
		return pos, fmt.Errorf("buffer: %s %d elements: %w", op, count, alloc.ErrOverflow)
	}
	if err := b.Reserve(newLen); err != nil {
		return pos, err
	}
	b.shift(pos, count)
	return pos, nil
}

// shift moves [pos, Len) right by count. For Object elements the hole holds
// moved-from live elements afterwards; otherwise it holds stale bits.
func (b *Buffer[T]) shift(pos, count int) {
	newLen := b.length + count
	if b.kind == elem.KindObject {
		b.ops.Initialize(b.slots[b.length:newLen])
		b.ops.Move(b.slots[pos+count:newLen], b.slots[pos:b.length])
	} else {
		copy(b.slots[pos+count:newLen], b.slots[pos:b.length])
	}
	b.length = newLen
}

// fill copy-assigns src into a hole opened by shift.
func (b *Buffer[T]) fill(hole, src []T) {
	if b.kind != elem.KindObject {
		clear(hole)
		b.ops.Initialize(hole)
	}
	b.ops.Copy(hole, src)
}

// take moves src into a hole opened by shift and leaves src zeroed.
func (b *Buffer[T]) take(hole, src []T) {
	if b.kind == elem.KindObject {
		b.ops.Move(hole, src)
		b.ops.Destroy(src)
		return
	}
	copy(hole, src)
	clear(src)
}

// replace copy-assigns src over the live elements dst.
func (b *Buffer[T]) replace(dst, src []T) {
	if b.kind != elem.KindObject {
		b.destroy(dst)
		b.ops.Initialize(dst)
	}
	b.ops.Copy(dst, src)
}

// replaceMove moves src over the live elements dst and leaves src zeroed.
func (b *Buffer[T]) replaceMove(dst, src []T) {
	if b.kind == elem.KindObject {
		b.ops.Move(dst, src)
		b.ops.Destroy(src)
		return
	}
	b.destroy(dst)
	copy(dst, src)
	clear(src)
}

func (b *Buffer[T]) destroy(s []T) {
	b.ops.Destroy(s)
	if b.kind == elem.KindRaw {
		clear(s)
	}
}
