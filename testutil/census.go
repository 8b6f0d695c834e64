package testutil

import (
	"sync"
	"testing"
)

// Census counts lifecycle events of Tracked values.
type Census struct {
	mu             sync.Mutex
	inits          int
	destroys       int
	doubleDestroys int
	deadWrites     int
	assigns        int
	moves          int
	released       []int
}

var (
	activeMu sync.Mutex
	active   *Census
)

// NewCensus installs a fresh Census as the target of all Tracked hooks for
// the duration of t. Tests using it must not run in parallel.
func NewCensus(t testing.TB) *Census {
	t.Helper()
	c := &Census{}
	activeMu.Lock()
	prev := active
	active = c
	activeMu.Unlock()
	t.Cleanup(func() {
		activeMu.Lock()
		active = prev
		activeMu.Unlock()
	})
	return c
}

func current() *Census {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}

func (c *Census) record(fn func(c *Census)) {
	if c == nil {
		return
	}
	c.mu.Lock()
	fn(c)
	c.mu.Unlock()
}

// Inits returns the number of Init calls.
func (c *Census) Inits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inits
}

// Destroys returns the number of effective Destroy calls.
func (c *Census) Destroys() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroys
}

// Live returns Inits - Destroys.
func (c *Census) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inits - c.destroys
}

// DoubleDestroys returns the number of Destroy calls on values that were not live.
func (c *Census) DoubleDestroys() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doubleDestroys
}

// DeadWrites returns the number of Assign or MoveFrom calls whose target was
// not live.
func (c *Census) DeadWrites() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadWrites
}

// Assigns returns the number of Assign calls.
func (c *Census) Assigns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assigns
}

// Moves returns the number of MoveFrom calls.
func (c *Census) Moves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moves
}

// Released returns the IDs of destroyed Handles in destruction order.
func (c *Census) Released() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.released...)
}

// Tracked is a pointer-free element whose lifecycle hooks report to the
// active Census.
type Tracked struct {
	Key  int
	Val  int
	live bool
}

// Make returns live Tracked values with the given keys, each counted as one Init.
func Make(keys ...int) []Tracked {
	out := make([]Tracked, len(keys))
	for i, k := range keys {
		out[i].Init()
		out[i].Key = k
		out[i].Val = k
	}
	return out
}

// DestroyAll destroys every value in s.
func DestroyAll(s []Tracked) {
	for i := range s {
		s[i].Destroy()
	}
}

// Keys returns the keys of s.
func Keys(s []Tracked) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = s[i].Key
	}
	return out
}

// Live reports whether t has been initialized and not yet destroyed.
func (t *Tracked) Live() bool {
	return t.live
}

// Init implements elem.Initializer.
func (t *Tracked) Init() {
	t.live = true
	current().record(func(c *Census) { c.inits++ })
}

// Destroy implements elem.Destroyer.
func (t *Tracked) Destroy() {
	if !t.live {
		current().record(func(c *Census) { c.doubleDestroys++ })
		return
	}
	t.live = false
	current().record(func(c *Census) { c.destroys++ })
}

// Assign implements elem.Assigner.
func (t *Tracked) Assign(src *Tracked) {
	if !t.live {
		current().record(func(c *Census) { c.deadWrites++ })
	}
	t.Key, t.Val = src.Key, src.Val
	current().record(func(c *Census) { c.assigns++ })
}

// MoveFrom implements elem.Mover. The source stays live with a zero payload.
func (t *Tracked) MoveFrom(src *Tracked) {
	if !t.live {
		current().record(func(c *Census) { c.deadWrites++ })
	}
	t.Key, t.Val = src.Key, src.Val
	src.Key, src.Val = 0, 0
	current().record(func(c *Census) { c.moves++ })
}

// Handle is a pointer-free element with a Destroy hook and nothing else, so
// containers fall back to plain assignment for it. ID 0 is the empty handle.
type Handle struct {
	Key int
	ID  int
}

// Destroy implements elem.Destroyer. Destroying a non-empty handle records
// its ID with the active Census.
func (h *Handle) Destroy() {
	if h.ID == 0 {
		return
	}
	id := h.ID
	h.ID = 0
	current().record(func(c *Census) { c.released = append(c.released, id) })
}

// IDs returns the IDs of s.
func IDs(s []Handle) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = s[i].ID
	}
	return out
}
