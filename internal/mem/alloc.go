package mem

import (
	"errors"
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/hupe1980/slotkit/internal/conv"
)

var (
	// ErrTooLarge is returned when a request exceeds the addressable heap.
	ErrTooLarge = errors.New("mem: allocation too large")
	// ErrUnalignable is returned when no element boundary in an allocation
	// satisfies the requested alignment.
	ErrUnalignable = errors.New("mem: alignment not reachable for element size")
)

// maxAlloc mirrors the runtime limit for a single heap object.
var maxAlloc = func() uintptr {
	shift := 31
	if bits.UintSize == 64 {
		shift = 47
	}
	return uintptr(1)<<shift - 1
}()

// MaxAlloc returns the largest single allocation the Go heap path accepts.
func MaxAlloc() uintptr {
	return maxAlloc
}

// AlignedSlice allocates n elements of T whose first element starts at an
// address divisible by align.
//
// Note: This function allocates slightly more memory than requested when align
// exceeds the natural alignment of T. The underlying array is kept alive by the
// returned slice.
func AlignedSlice[T any](n int, align uintptr) (s []T, err error) {
	if n < 0 {
		return nil, fmt.Errorf("mem: negative length %d", n)
	}
	if n == 0 {
		return nil, nil
	}

	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return make([]T, n), nil
	}
	if align != 0 && !conv.IsPow2(align) {
		return nil, fmt.Errorf("mem: alignment %d is not a power of two", align)
	}

	// Extra elements give every reachable aligned start a chance to land
	// inside the allocation: starts repeat every align/gcd(size, align) steps.
	extra := 0
	if align > unsafe.Alignof(zero) {
		extra = int(align/gcd(size, align)) - 1
	}

	total, ok := conv.AddInt(n, extra)
	if !ok {
		return nil, ErrTooLarge
	}
	bytes, ok := conv.MulUintptr(uintptr(total), size)
	if !ok || bytes > maxAlloc {
		return nil, ErrTooLarge
	}

	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrTooLarge, r)
		}
	}()

	raw := make([]T, total)
	if extra == 0 {
		return raw[:n:n], nil
	}

	base := Addr(raw)
	for k := 0; k <= extra; k++ {
		if (base+uintptr(k)*size)&(align-1) == 0 {
			return raw[k : k+n : k+n], nil
		}
	}
	return nil, ErrUnalignable
}

// HasPointers reports whether values of T contain pointers the garbage
// collector must trace.
func HasPointers[T any]() bool {
	return typeHasPointers(typeOf[T]())
}

// Addr returns the address of the first element of the backing array of s.
// It returns 0 for a slice without a backing array.
func Addr[T any](s []T) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s))) //nolint:gosec // address comparison only
}

// Overlaps reports whether x and y share any element of memory.
func Overlaps[T any](x, y []T) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return false
	}
	xs, ys := Addr(x), Addr(y)
	xe := xs + uintptr(len(x))*size
	ye := ys + uintptr(len(y))*size
	return xs < ye && ys < xe
}

func gcd(a, b uintptr) uintptr {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
