// Package buffer provides Buffer, a growable contiguous sequence of elements
// whose storage strategy and element policy are fixed at construction.
//
// Strategies:
//
//   - Static(n) owns n inline slots and never allocates again.
//   - Dynamic(round, align) keeps all slots in an allocator block whose byte
//     size is rounded up to a multiple of round and whose address is a
//     multiple of align.
//   - Hybrid(n, round, align) starts with n inline slots and moves to a
//     Dynamic block the first time it needs more. The move is one way.
//
// Element types that hold no Go pointers live in memory obtained from the
// configured alloc.Allocator. Element types with pointers live in typed Go
// memory so that the garbage collector can see them; rounding, alignment and
// overflow rules are the same on both paths.
//
// Every operation that reports an error leaves the buffer exactly as it was.
// A Buffer is not safe for concurrent use.
package buffer
