// Package elem defines how containers create, destroy, copy and relocate
// their elements.
//
// A container is parameterized by an Ops policy chosen once at construction:
//
//   - Raw treats elements as plain bytes. Initialization and destruction are
//     no-ops and copies are memmoves.
//   - Object runs the optional lifecycle hooks on every element: Init after
//     zeroing, Destroy before zeroing, Assign for copies and MoveFrom for
//     moves.
//   - Relocatable runs Init and Destroy like Object but declares that an
//     element may be moved to a new address bitwise. Containers relocate such
//     elements without running any hook.
package elem
