// Package ordered provides Set and Map, sorted associative containers stored
// contiguously in a buffer.Buffer.
//
// Elements are kept in ascending key order and keys are unique. Lookups are
// binary searches that can be narrowed by caller-supplied position hints,
// which makes runs of nearby insertions cheap. Bulk insertion of already
// sorted input is a single linear merge.
//
// Operations that copy their input (Insert*) leave the caller's values alone.
// Operations that move their input (Inject*) consume every value on success:
// each one is either moved into the set, moved over an existing element, or
// destroyed as a rejected duplicate.
//
// A Set is not safe for concurrent use.
package ordered
