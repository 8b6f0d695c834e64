package elem

// Kind identifies an element policy.
type Kind uint8

const (
	// KindRaw elements are plain memory.
	KindRaw Kind = iota
	// KindObject elements have full lifecycle semantics.
	KindObject
	// KindRelocatable elements have lifecycle hooks but move bitwise.
	KindRelocatable
)

// String returns the policy name.
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindObject:
		return "object"
	case KindRelocatable:
		return "relocatable"
	default:
		return "unknown"
	}
}

// Ops is the element policy used by containers.
//
// Copy and Move require len(dst) == len(src) and tolerate overlapping
// slices. All operations accept empty slices.
type Ops[T any] interface {
	Kind() Kind
	// Initialize turns raw slots into live elements.
	Initialize(s []T)
	// Destroy turns live elements back into raw slots.
	Destroy(s []T)
	// Copy assigns src into the live elements of dst, releasing what dst
	// held before.
	Copy(dst, src []T)
	// Move transfers src into the live elements of dst, releasing what dst
	// held before. src stays live.
	Move(dst, src []T)
}

// Initializer is implemented by *T to run setup after zeroing.
type Initializer interface {
	Init()
}

// Destroyer is implemented by *T to release resources before zeroing.
// Destroy must be safe on the zero value, which is what a moved-from element
// holds.
type Destroyer interface {
	Destroy()
}

// Assigner is implemented by *T to customize copy assignment.
type Assigner[T any] interface {
	Assign(src *T)
}

// Mover is implemented by *T to customize move assignment.
// After MoveFrom, src must still be safe to destroy.
type Mover[T any] interface {
	MoveFrom(src *T)
}
