// Package testutil provides testing utilities for slotkit.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Input
//
//	rng := testutil.NewRNG(seed)
//	keys := rng.Ints(1000, 500)       // values in [0, 500), duplicates allowed
//	sorted := rng.SortedUnique(64, 1000)
//
// # Lifecycle Accounting
//
// Tracked is an element type whose lifecycle hooks report to the active
// Census. A container that honors its element policy keeps
// Inits - Destroys equal to the number of live elements it holds.
//
//	c := testutil.NewCensus(t)
//	... exercise a container of testutil.Tracked ...
//	require.Equal(t, buf.Len(), c.Live())
//	require.Zero(t, c.DoubleDestroys())
package testutil
