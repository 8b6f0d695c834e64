package buffer

import (
	"fmt"
)

// StrategyKind identifies a storage strategy.
type StrategyKind uint8

const (
	// KindStatic buffers have fixed inline capacity.
	KindStatic StrategyKind = iota
	// KindDynamic buffers keep their slots in an allocator block.
	KindDynamic
	// KindHybrid buffers start inline and promote to an allocator block.
	KindHybrid
)

func (k StrategyKind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	case KindHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Strategy describes where a buffer keeps its slots.
type Strategy struct {
	kind   StrategyKind
	inline int
	round  uintptr
	align  uintptr
}

// Static returns a strategy with n inline slots.
func Static(n int) Strategy {
	return Strategy{kind: KindStatic, inline: n}
}

// Dynamic returns a heap strategy. Block sizes are rounded up to a multiple
// of round bytes (0 disables rounding) and aligned to align (0 means the
// element's natural alignment).
func Dynamic(round, align uintptr) Strategy {
	return Strategy{kind: KindDynamic, round: round, align: align}
}

// Hybrid returns a strategy with n inline slots that promotes to a Dynamic
// block with the given rounding and alignment.
func Hybrid(n int, round, align uintptr) Strategy {
	return Strategy{kind: KindHybrid, inline: n, round: round, align: align}
}

// Kind returns the strategy kind.
func (s Strategy) Kind() StrategyKind { return s.kind }

// Inline returns the number of inline slots.
func (s Strategy) Inline() int { return s.inline }

// Round returns the heap rounding in bytes.
func (s Strategy) Round() uintptr { return s.round }

// Align returns the heap alignment in bytes.
func (s Strategy) Align() uintptr { return s.align }

func (s Strategy) String() string {
	switch s.kind {
	case KindStatic:
		return fmt.Sprintf("static(%d)", s.inline)
	case KindDynamic:
		return fmt.Sprintf("dynamic(round=%d, align=%d)", s.round, s.align)
	default:
		return fmt.Sprintf("hybrid(%d, round=%d, align=%d)", s.inline, s.round, s.align)
	}
}
