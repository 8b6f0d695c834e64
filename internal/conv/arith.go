package conv

import (
	"math"
	"math/bits"
)

// AddUintptr adds a and b, returning ok = false when the sum wraps.
func AddUintptr(a, b uintptr) (uintptr, bool) {
	sum := a + b
	return sum, sum >= a
}

// MulUintptr multiplies a and b, returning ok = false when the product wraps.
func MulUintptr(a, b uintptr) (uintptr, bool) {
	hi, lo := bits.Mul(uint(a), uint(b))
	return uintptr(lo), hi == 0
}

// RoundUp rounds n up to the next multiple of m.
// A zero m leaves n unchanged. ok is false when the result does not fit.
func RoundUp(n, m uintptr) (uintptr, bool) {
	if m <= 1 {
		return n, true
	}
	r := n % m
	if r == 0 {
		return n, true
	}
	return AddUintptr(n, m-r)
}

// AlignUp returns the first multiple of align at or after addr.
// align must be a power of two.
func AlignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// IsPow2 reports whether v is a power of two. Zero is not.
func IsPow2(v uintptr) bool {
	return v != 0 && v&(v-1) == 0
}

// AddInt adds a and b, returning ok = false when the result would overflow int.
func AddInt(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}
