package ordered

import (
	"cmp"

	"github.com/hupe1980/slotkit/buffer"
	"github.com/hupe1980/slotkit/elem"
)

// Pair is a Map entry.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// Map is a Set of key/value pairs ordered by key.
type Map[K, V any] = Set[Pair[K, V], K]

func pairKey[K, V any](p *Pair[K, V]) K { return p.Key }

// NewMap creates a Map with ordered keys.
func NewMap[K cmp.Ordered, V any](strategy buffer.Strategy, ops elem.Ops[Pair[K, V]], opts ...buffer.Option) (*Map[K, V], error) {
	return New(pairKey[K, V], cmp.Less[K], strategy, ops, opts...)
}

// NewMapFunc creates a Map whose keys are ordered by less.
func NewMapFunc[K, V any](less func(a, b K) bool, strategy buffer.Strategy, ops elem.Ops[Pair[K, V]], opts ...buffer.Option) (*Map[K, V], error) {
	return New(pairKey[K, V], less, strategy, ops, opts...)
}

// Get returns the value stored under k.
func Get[K, V any](m *Map[K, V], k K, hints ...int) (V, bool) {
	p, ok := m.Find(k, hints...)
	if !ok {
		var zero V
		return zero, false
	}
	return p.Value, true
}

// Put stores v under k, replacing any existing value.
func Put[K, V any](m *Map[K, V], k K, v V, hints ...int) (Result, error) {
	return m.Insert(Pair[K, V]{Key: k, Value: v}, Replace, hints...)
}

// PutIfAbsent stores v under k unless k already exists.
func PutIfAbsent[K, V any](m *Map[K, V], k K, v V, hints ...int) (Result, error) {
	return m.Insert(Pair[K, V]{Key: k, Value: v}, Keep, hints...)
}
