// Package mmap provides anonymous off-heap memory mappings.
//
// # Overview
//
// Anonymous mappings hand out page-aligned memory directly from the operating
// system, outside the Go garbage collector's control. The Direct allocator
// builds on them: a mapping is the host's native aligned allocation primitive.
//
// # Usage
//
//	m, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//
// # Thread Safety
//
// Close is idempotent and protected by atomic operations. Callers must
// ensure no goroutines access Bytes() after Close() returns.
//
// Memory in a mapping is never scanned by the garbage collector. Only store
// pointer-free data in it.
package mmap
