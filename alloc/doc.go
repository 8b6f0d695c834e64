// Package alloc provides alignment-aware memory allocators.
//
// An Allocator hands out blocks whose address is a multiple of a requested
// power-of-two alignment. Two implementations are provided:
//
//   - Direct maps anonymous pages from the operating system. Blocks live
//     outside the Go heap and are never scanned by the garbage collector.
//   - SelfEncoding over-allocates from a RawAllocator and stores the distance
//     to the raw block in a header word just before the aligned address, so
//     Free needs nothing but the pointer.
//
// Blocks returned by any allocator in this package must only hold
// pointer-free data. Containers that store Go pointers use typed Go-heap
// memory instead.
//
// Tracking and Budget wrap another Allocator to record statistics or to cap
// the number of outstanding bytes. Both are safe for concurrent use.
package alloc
