package ordered

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/hupe1980/slotkit/alloc"
	"github.com/hupe1980/slotkit/buffer"
	"github.com/hupe1980/slotkit/internal/conv"
)

// Insert copies v into the set. If the key exists, c decides whether the
// existing element is replaced.
func (s *Set[T, K]) Insert(v T, c Conflict, hints ...int) (Result, error) {
	r := s.Locate(s.key(&v), hints...)
	if r.Found {
		if c == Replace {
			if err := s.buf.Set(r.Pos, v); err != nil {
				return r, err
			}
		}
		return r, nil
	}
	if _, err := s.buf.Insert(r.Pos, v); err != nil {
		return r, err
	}
	return r, nil
}

// Inject moves *v into the set. On success *v has been consumed: moved in,
// moved over the existing element, or destroyed as a kept duplicate.
func (s *Set[T, K]) Inject(v *T, c Conflict, hints ...int) (Result, error) {
	src := unsafe.Slice(v, 1)
	if s.buf.Overlaps(src) {
		return Result{}, s.rangeError("inject", 0, 1)
	}
	r := s.Locate(s.key(v), hints...)
	if r.Found {
		return r, s.resolve(r.Pos, src, c, true)
	}
	if _, err := s.buf.Inject(r.Pos, src); err != nil {
		return r, err
	}
	return r, nil
}

// InsertAll copies unsorted vs into the set and returns the result for the
// last element. A failed reservation leaves the set unchanged.
// Room for Len+len(vs) elements is reserved before any key is looked up, so
// a nearly full Static set may refuse input that is mostly duplicates.
func (s *Set[T, K]) InsertAll(vs []T, c Conflict, hints ...int) (Result, error) {
	return s.add("insert", vs, c, false, hints)
}

// InjectAll moves unsorted vs into the set. On success every element of vs
// has been consumed.
// Room for Len+len(vs) elements is reserved before any key is looked up, so
// a nearly full Static set may refuse input that is mostly duplicates.
func (s *Set[T, K]) InjectAll(vs []T, c Conflict, hints ...int) (Result, error) {
	return s.add("inject", vs, c, true, hints)
}

// InsertSorted merges vs, which must be in strictly ascending key order,
// into the set by copying. The order is not verified; see CheckSorted.
// Room for Len+len(vs) elements is reserved before any key is looked up, so
// a nearly full Static set may refuse input that is mostly duplicates.
func (s *Set[T, K]) InsertSorted(vs []T, c Conflict, hints ...int) error {
	return s.merge("insert", vs, c, false, hints)
}

// InjectSorted merges vs, which must be in strictly ascending key order,
// into the set by moving. On success every element of vs has been consumed.
// Room for Len+len(vs) elements is reserved before any key is looked up, so
// a nearly full Static set may refuse input that is mostly duplicates.
func (s *Set[T, K]) InjectSorted(vs []T, c Conflict, hints ...int) error {
	return s.merge("inject", vs, c, true, hints)
}

// InjectFrom moves count unsorted elements starting at from out of src and
// into the set, then removes them from src.
func (s *Set[T, K]) InjectFrom(src *buffer.Buffer[T], from, count int, c Conflict, hints ...int) (Result, error) {
	vs, err := s.sourceRange(src, from, count)
	if err != nil {
		return Result{}, err
	}
	r, err := s.InjectAll(vs, c, hints...)
	if err != nil {
		return r, err
	}
	src.Discard(src.Clamp(from, count))
	return r, nil
}

// InjectSortedFrom moves count sorted elements starting at from out of src
// and into the set, then removes them from src.
func (s *Set[T, K]) InjectSortedFrom(src *buffer.Buffer[T], from, count int, c Conflict, hints ...int) error {
	vs, err := s.sourceRange(src, from, count)
	if err != nil {
		return err
	}
	if err := s.InjectSorted(vs, c, hints...); err != nil {
		return err
	}
	src.Discard(src.Clamp(from, count))
	return nil
}

func (s *Set[T, K]) sourceRange(src *buffer.Buffer[T], from, count int) ([]T, error) {
	if src == s.buf {
		return nil, s.rangeError("inject", from, count)
	}
	from, count = src.Clamp(from, count)
	return src.Data()[from : from+count], nil
}

// prepare rejects sources aliasing the set and reserves room for vs.
func (s *Set[T, K]) prepare(op string, vs []T) error {
	if s.buf.Overlaps(vs) {
		return s.rangeError(op, 0, len(vs))
	}
	n, ok := conv.AddInt(s.buf.Len(), len(vs))
	if !ok {
		return fmt.Errorf("ordered: %s %d elements: %w", op, len(vs), alloc.ErrOverflow)
	}
	return s.buf.Reserve(n)
}

func (s *Set[T, K]) add(op string, vs []T, c Conflict, move bool, hints []int) (Result, error) {
	if len(vs) == 0 {
		return Result{}, nil
	}
	if err := s.prepare(op, vs); err != nil {
		return Result{}, err
	}

	var r Result
	h := make([]int, 0, len(hints)+1)
	for i := range vs {
		h = h[:0]
		if i > 0 {
			h = append(h, r.Pos)
		}
		h = append(h, hints...)

		r = s.locate(s.key(&vs[i]), 0, s.buf.Len(), h)
		if r.Found {
			if err := s.resolve(r.Pos, vs[i:i+1], c, move); err != nil {
				return r, err
			}
			continue
		}
		if err := s.put(r.Pos, vs[i:i+1], move); err != nil {
			return r, err
		}
	}
	return r, nil
}

// merge inserts sorted vs in one pass. Elements destined for the same gap of
// the set are collected into a run and inserted together. A duplicate or a
// new gap flushes the run; later searches start at the last confirmed
// position.
func (s *Set[T, K]) merge(op string, vs []T, c Conflict, move bool, hints []int) error {
	if len(vs) == 0 {
		return nil
	}
	if err := s.prepare(op, vs); err != nil {
		s.logger.LogMerge(context.Background(), len(vs), 0, 0, err)
		return err
	}

	var (
		a, anchor, lo int
		runs, dups    int
		h             = make([]int, 0, len(hints)+1)
	)
	flush := func(end int) error {
		if end == a {
			return nil
		}
		runs++
		return s.put(anchor, vs[a:end], move)
	}

scan:
	for t := 0; t < len(vs); t++ {
		h = h[:0]
		if t > 0 {
			h = append(h, anchor)
		}
		h = append(h, hints...)

		r := s.locate(s.key(&vs[t]), lo, s.buf.Len(), h)
		switch {
		case r.Found:
			if err := flush(t); err != nil {
				return err
			}
			pos := r.Pos + (t - a)
			if err := s.resolve(pos, vs[t:t+1], c, move); err != nil {
				return err
			}
			dups++
			a = t + 1
			anchor, lo = pos+1, pos+1
		case r.Pos == s.buf.Len():
			// Everything left sorts after the current last element.
			if err := flush(t); err != nil {
				return err
			}
			anchor, a = s.buf.Len(), t
			break scan
		case r.Pos != anchor:
			if err := flush(t); err != nil {
				return err
			}
			anchor = r.Pos + (t - a)
			a, lo = t, anchor
		}
	}
	if err := flush(len(vs)); err != nil {
		return err
	}
	s.logger.LogMerge(context.Background(), len(vs), runs, dups, nil)
	return nil
}

// put copies or moves vs into the set at pos.
func (s *Set[T, K]) put(pos int, vs []T, move bool) error {
	var err error
	if move {
		_, err = s.buf.Inject(pos, vs)
	} else {
		_, err = s.buf.Insert(pos, vs...)
	}
	return err
}

// resolve handles a duplicate of the element at pos.
func (s *Set[T, K]) resolve(pos int, v []T, c Conflict, move bool) error {
	switch {
	case c == Replace && move:
		return s.buf.SetMove(pos, &v[0])
	case c == Replace:
		return s.buf.Set(pos, v[0])
	case move:
		s.buf.Dispose(v)
	}
	return nil
}

func (s *Set[T, K]) rangeError(op string, pos, count int) error {
	return buffer.NewRangeError(op, pos, count, s.buf.Len())
}
