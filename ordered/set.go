package ordered

import (
	"cmp"
	"iter"

	"github.com/hupe1980/slotkit/buffer"
	"github.com/hupe1980/slotkit/elem"
	"github.com/hupe1980/slotkit/internal/logging"
)

// Conflict decides what happens when an inserted key already exists.
type Conflict uint8

const (
	// Keep leaves the existing element in place.
	Keep Conflict = iota
	// Replace overwrites the existing element.
	Replace
)

func (c Conflict) String() string {
	if c == Replace {
		return "replace"
	}
	return "keep"
}

// Result is the outcome of a lookup or insertion.
//
// Pos is the position of the matching element when Found, otherwise the
// position where the key would be inserted.
type Result struct {
	Pos   int
	Found bool
}

// Inserted reports whether an insertion added a new element.
func (r Result) Inserted() bool { return !r.Found }

// Set is a sorted collection of T with unique keys of type K.
type Set[T any, K any] struct {
	buf    *buffer.Buffer[T]
	key    func(*T) K
	less   func(a, b K) bool
	logger *logging.Logger
}

// New creates a Set whose keys are extracted by key and ordered by less,
// which must be a strict weak ordering.
func New[T, K any](key func(*T) K, less func(a, b K) bool, strategy buffer.Strategy, ops elem.Ops[T], opts ...buffer.Option) (*Set[T, K], error) {
	buf, err := buffer.New(strategy, ops, opts...)
	if err != nil {
		return nil, err
	}
	return &Set[T, K]{
		buf:    buf,
		key:    key,
		less:   less,
		logger: logging.Wrap(buf.Logger()),
	}, nil
}

func identity[T any](v *T) T { return *v }

// NewSet creates a Set of ordered values keyed by themselves.
func NewSet[T cmp.Ordered](strategy buffer.Strategy, ops elem.Ops[T], opts ...buffer.Option) (*Set[T, T], error) {
	return New(identity[T], cmp.Less[T], strategy, ops, opts...)
}

// NewSetFunc creates a Set of values keyed by themselves and ordered by less.
func NewSetFunc[T any](less func(a, b T) bool, strategy buffer.Strategy, ops elem.Ops[T], opts ...buffer.Option) (*Set[T, T], error) {
	return New(identity[T], less, strategy, ops, opts...)
}

// Len returns the number of elements.
func (s *Set[T, K]) Len() int { return s.buf.Len() }

// IsEmpty reports whether the set has no elements.
func (s *Set[T, K]) IsEmpty() bool { return s.buf.IsEmpty() }

// At returns the element at position i. It panics if i is out of range.
func (s *Set[T, K]) At(i int) T { return s.buf.At(i) }

// Data returns the elements in key order. The slice aliases the set and must
// not be modified in ways that change key order.
func (s *Set[T, K]) Data() []T { return s.buf.Data() }

// All returns an iterator over position/element pairs in key order.
func (s *Set[T, K]) All() iter.Seq2[int, T] { return s.buf.All() }

// Keys returns an iterator over the keys in ascending order.
func (s *Set[T, K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < s.buf.Len(); i++ {
			if !yield(s.key(s.buf.Ptr(i))) {
				return
			}
		}
	}
}

// Buffer returns the underlying buffer.
func (s *Set[T, K]) Buffer() *buffer.Buffer[T] { return s.buf }

// Reserve ensures room for n elements.
func (s *Set[T, K]) Reserve(n int) error { return s.buf.Reserve(n) }

// Clear removes every element and keeps capacity.
func (s *Set[T, K]) Clear() { s.buf.Clear() }

// Free removes every element and releases heap storage.
func (s *Set[T, K]) Free() { s.buf.Free() }

// Recycle shrinks storage to the current length.
func (s *Set[T, K]) Recycle() error { return s.buf.Recycle() }

// Delete removes the elements of [pos, pos+count) that exist and returns the
// position of the first one.
func (s *Set[T, K]) Delete(pos, count int) int { return s.buf.Delete(pos, count) }

// Remove deletes the element with key k and reports whether it existed.
func (s *Set[T, K]) Remove(k K, hints ...int) bool {
	r := s.Locate(k, hints...)
	if !r.Found {
		return false
	}
	s.buf.Delete(r.Pos, 1)
	return true
}

// Clone returns a copy of the set sharing its key function, ordering,
// strategy and allocator.
func (s *Set[T, K]) Clone() (*Set[T, K], error) {
	buf, err := s.buf.Clone()
	if err != nil {
		return nil, err
	}
	return &Set[T, K]{buf: buf, key: s.key, less: s.less, logger: s.logger}, nil
}

// Move replaces the contents of s with those of other and leaves other empty.
// Both sets must use the same ordering.
func (s *Set[T, K]) Move(other *Set[T, K]) error {
	if other == nil || other == s {
		return nil
	}
	return s.buf.Move(other.buf)
}
