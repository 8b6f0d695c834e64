// Package slotkit provides containers that know how they allocate.
//
// The toolkit is split into small packages:
//
//   - alloc: the Allocator contract with Direct and SelfEncoding allocators,
//     raw memory providers, and Tracking and Budget wrappers.
//   - elem: element lifecycle policies (Raw, Object, Relocatable).
//   - buffer: Buffer[T], a growable array with Static, Dynamic and Hybrid
//     storage strategies.
//   - ordered: Set[T, K] and Map[K, V], sorted array-backed containers with
//     hinted search and a single-pass sorted merge.
//
// # Quick Start
//
//	b, _ := buffer.New(buffer.Hybrid(16, 0, 0), elem.Raw[int]())
//	_ = b.Append(3, 1, 2)
//	b.DeleteFlip(0, 1) // [2 1]
//
//	m, _ := ordered.NewMap[string, int](buffer.Dynamic(64, 0), elem.Object[ordered.Pair[string, int]]())
//	_, _ = ordered.Put(m, "a", 1)
//	v, ok := ordered.Get(m, "a")
//
// # Storage Strategies
//
// Static keeps a fixed number of slots inline and reports
// buffer.ErrCapacityExceeded beyond that. Dynamic always lives in
// allocator memory. Hybrid starts inline and moves to allocator memory the
// first time it outgrows the inline slots. Dynamic and Hybrid round every
// allocation up to a multiple of their round size and align it to at least
// their alignment.
//
// # Errors
//
// Failing operations return an error and leave the container unchanged.
// Classify maps any error from the toolkit onto a small taxonomy:
//
//	if err := set.InsertSorted(batch, ordered.Replace); err != nil {
//	    switch slotkit.Classify(err) {
//	    case slotkit.KindCapacityExceeded:
//	        // fall back to a bigger container
//	    }
//	}
//
// # Concurrency
//
// Containers are not safe for concurrent use. Allocators are: Direct,
// Tracking, Budget and the Go heap provider may be shared by buffers on
// different goroutines.
package slotkit
