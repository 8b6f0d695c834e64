package elem

import (
	"unsafe"
)

// Raw returns the plain-memory policy.
func Raw[T any]() Ops[T] {
	return raw[T]{}
}

// Object returns the full lifecycle policy.
func Object[T any]() Ops[T] {
	return object[T]{}
}

// Relocatable returns the lifecycle policy for bitwise-movable elements.
func Relocatable[T any]() Ops[T] {
	return relocatable[T]{}
}

type raw[T any] struct{}

func (raw[T]) Kind() Kind        { return KindRaw }
func (raw[T]) Initialize([]T)    {}
func (raw[T]) Destroy([]T)       {}
func (raw[T]) Copy(dst, src []T) { copy(dst, src) }
func (raw[T]) Move(dst, src []T) { copy(dst, src) }

type object[T any] struct{}

func (object[T]) Kind() Kind { return KindObject }

func (object[T]) Initialize(s []T) { initialize(s) }

func (object[T]) Destroy(s []T) { destroy(s) }

// Copy assigns through Assign when *T has it. Otherwise the old value of
// each destination is destroyed before it is overwritten.
func (object[T]) Copy(dst, src []T) {
	var zero T
	if _, ok := any(&zero).(Assigner[T]); ok {
		walk(dst, src, func(d, s *T) {
			any(d).(Assigner[T]).Assign(s)
		})
		return
	}
	if _, ok := any(&zero).(Destroyer); !ok {
		copy(dst, src)
		return
	}
	walk(dst, src, func(d, s *T) {
		any(d).(Destroyer).Destroy()
		*d = *s
	})
}

// Move assigns through MoveFrom when *T has it. Otherwise the old value of
// each destination is destroyed, then overwritten, and the source is zeroed.
func (object[T]) Move(dst, src []T) {
	var zero T
	if _, ok := any(&zero).(Mover[T]); ok {
		walk(dst, src, func(d, s *T) {
			any(d).(Mover[T]).MoveFrom(s)
		})
		return
	}
	_, destroys := any(&zero).(Destroyer)
	walk(dst, src, func(d, s *T) {
		if destroys {
			any(d).(Destroyer).Destroy()
		}
		*d = *s
		*s = zero
	})
}

type relocatable[T any] struct{}

func (relocatable[T]) Kind() Kind        { return KindRelocatable }
func (relocatable[T]) Initialize(s []T)  { initialize(s) }
func (relocatable[T]) Destroy(s []T)     { destroy(s) }
func (relocatable[T]) Copy(dst, src []T) { copy(dst, src) }
func (relocatable[T]) Move(dst, src []T) { copy(dst, src) }

func initialize[T any](s []T) {
	clear(s)
	var zero T
	if _, ok := any(&zero).(Initializer); !ok {
		return
	}
	for i := range s {
		any(&s[i]).(Initializer).Init()
	}
}

func destroy[T any](s []T) {
	var zero T
	if _, ok := any(&zero).(Destroyer); ok {
		for i := range s {
			any(&s[i]).(Destroyer).Destroy()
		}
	}
	clear(s)
}

// walk visits dst/src pairs in an order that never reads a source element
// after it has been overwritten.
func walk[T any](dst, src []T, fn func(d, s *T)) {
	n := min(len(dst), len(src))
	if n == 0 {
		return
	}
	d := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	s := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	switch {
	case d == s:
		return
	case s > d:
		for i := 0; i < n; i++ {
			fn(&dst[i], &src[i])
		}
	default:
		for i := n - 1; i >= 0; i-- {
			fn(&dst[i], &src[i])
		}
	}
}
