// Package mem provides memory layout utilities.
//
// # Aligned Allocation
//
// AlignedSlice returns garbage-collected, typed memory whose first element
// starts at a requested power-of-two boundary. It is the storage path for
// element types the collector has to scan.
//
// # Layout Queries
//
// HasPointers, Addr and Overlaps answer the questions buffers ask before
// they decide where elements may live and whether a source range aliases
// their own storage.
package mem
