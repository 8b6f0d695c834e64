// Package conv provides checked integer conversions and arithmetic.
//
// Allocation sizes are derived from caller-controlled counts, so every
// multiplication, addition and rounding step on the way to an allocator call
// goes through this package. Conversions return an error; arithmetic helpers
// return an ok flag so call sites can pick the failure they report.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
