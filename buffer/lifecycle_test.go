package buffer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slotkit/elem"
	"github.com/hupe1980/slotkit/testutil"
)

type policyCase struct {
	name string
	ops  elem.Ops[testutil.Tracked]
}

func lifecyclePolicies() []policyCase {
	return []policyCase{
		{"object", elem.Object[testutil.Tracked]()},
		{"relocatable", elem.Relocatable[testutil.Tracked]()},
	}
}

func lifecycleStrategies() map[string]Strategy {
	return map[string]Strategy{
		"static":  Static(4096),
		"dynamic": Dynamic(64, 0),
		"hybrid":  Hybrid(8, 0, 32),
	}
}

// flip mirrors DeleteFlip on a plain slice.
func flip(s []int, pos, count int) []int {
	m := min(count, len(s)-pos-count)
	copy(s[pos:pos+m], s[len(s)-m:])
	return s[:len(s)-count]
}

func TestCensus_RandomOperations(t *testing.T) {
	for _, p := range lifecyclePolicies() {
		for sname, s := range lifecycleStrategies() {
			t.Run(fmt.Sprintf("%s/%s", p.name, sname), func(t *testing.T) {
				c := testutil.NewCensus(t)
				rng := testutil.NewRNG(4711)
				b := newBuffer(t, s, p.ops)

				var model []int
				for step := 0; step < 400; step++ {
					pos := rng.Intn(b.Len() + 1)
					k := rng.Intn(5) + 1

					switch rng.Intn(7) {
					case 0:
						vs := testutil.Make(rng.Ints(k, 1000)...)
						_, err := b.Insert(pos, vs...)
						require.NoError(t, err)
						model = append(model[:pos], append(testutil.Keys(vs), model[pos:]...)...)
						testutil.DestroyAll(vs)
					case 1:
						vs := testutil.Make(rng.Ints(k, 1000)...)
						keys := testutil.Keys(vs)
						_, err := b.Inject(pos, vs)
						require.NoError(t, err)
						model = append(model[:pos], append(keys, model[pos:]...)...)
						assert.Equal(t, make([]int, k), testutil.Keys(vs))
					case 2:
						v := testutil.Make(7)
						_, err := b.InsertN(pos, v[0], k)
						require.NoError(t, err)
						testutil.DestroyAll(v)
						ins := []int{7, 7, 7, 7, 7}[:k]
						model = append(model[:pos], append(ins, model[pos:]...)...)
					case 3:
						_, err := b.Expand(pos, k)
						require.NoError(t, err)
						model = append(model[:pos], append(make([]int, k), model[pos:]...)...)
					case 4:
						p, n := b.Clamp(pos, k)
						b.Delete(pos, k)
						model = append(model[:p], model[p+n:]...)
					case 5:
						p, n := b.Clamp(pos, k)
						b.DeleteFlip(pos, k)
						model = flip(model, p, n)
					case 6:
						if pos < b.Len() {
							v := testutil.Make(rng.Intn(1000))
							require.NoError(t, b.Set(pos, v[0]))
							model[pos] = v[0].Key
							testutil.DestroyAll(v)
						}
					}

					require.Equal(t, b.Len(), c.Live(), "step %d", step)
					require.Equal(t, model, testutil.Keys(b.Data()), "step %d", step)
				}

				require.NoError(t, b.Recycle())
				require.Equal(t, b.Len(), c.Live())

				b.Free()
				assert.Zero(t, c.Live())
				assert.Zero(t, c.DoubleDestroys())
				assert.Zero(t, c.DeadWrites())
			})
		}
	}
}

func TestCensus_DoubleClear(t *testing.T) {
	for _, p := range lifecyclePolicies() {
		t.Run(p.name, func(t *testing.T) {
			c := testutil.NewCensus(t)
			b := newBuffer(t, Hybrid(2, 0, 0), p.ops)

			_, err := b.Inject(0, testutil.Make(1, 2, 3, 4))
			require.NoError(t, err)
			assert.Equal(t, 4, c.Live())

			b.Clear()
			destroys := c.Destroys()
			b.Clear()
			assert.Equal(t, destroys, c.Destroys())
			assert.Zero(t, c.Live())
			assert.Zero(t, c.DoubleDestroys())
			assert.True(t, b.IsPromoted())
		})
	}
}

func TestCensus_GrowthRelocation(t *testing.T) {
	c := testutil.NewCensus(t)
	b := newBuffer(t, Dynamic(0, 0), elem.Object[testutil.Tracked]())

	_, err := b.Inject(0, testutil.Make(1, 2, 3))
	require.NoError(t, err)
	moves := c.Moves()

	require.NoError(t, b.Reserve(64))
	assert.Equal(t, moves+3, c.Moves())
	assert.Equal(t, 3, c.Live())
	assert.Equal(t, []int{1, 2, 3}, testutil.Keys(b.Data()))

	r := newBuffer(t, Dynamic(0, 0), elem.Relocatable[testutil.Tracked]())
	_, err = r.Inject(0, testutil.Make(4, 5))
	require.NoError(t, err)
	moves = c.Moves()
	require.NoError(t, r.Reserve(64))
	assert.Equal(t, moves, c.Moves())
	assert.Equal(t, 5, c.Live())

	b.Free()
	r.Free()
	assert.Zero(t, c.Live())
}

func TestCensus_InjectFrom(t *testing.T) {
	for _, p := range lifecyclePolicies() {
		t.Run(p.name, func(t *testing.T) {
			c := testutil.NewCensus(t)
			src := newBuffer(t, Dynamic(0, 0), p.ops)
			dst := newBuffer(t, Static(16), p.ops)

			_, err := src.Inject(0, testutil.Make(1, 2, 3, 4, 5))
			require.NoError(t, err)
			_, err = dst.Inject(0, testutil.Make(10, 20))
			require.NoError(t, err)

			pos, err := dst.InjectFrom(1, src, 1, 3)
			require.NoError(t, err)
			assert.Equal(t, 1, pos)
			assert.Equal(t, []int{10, 2, 3, 4, 20}, testutil.Keys(dst.Data()))
			assert.Equal(t, []int{1, 5}, testutil.Keys(src.Data()))
			assert.Equal(t, 7, c.Live())

			_, err = dst.InjectFrom(0, dst, 0, 1)
			require.ErrorIs(t, err, ErrInvalidRange)

			_, err = dst.InjectFrom(0, src, 1, 100)
			require.NoError(t, err)
			assert.Equal(t, []int{5, 10, 2, 3, 4, 20}, testutil.Keys(dst.Data()))
			assert.Equal(t, []int{1}, testutil.Keys(src.Data()))

			src.Free()
			dst.Free()
			assert.Zero(t, c.Live())
			assert.Zero(t, c.DoubleDestroys())
			assert.Zero(t, c.DeadWrites())
		})
	}
}

func TestCensus_Move(t *testing.T) {
	for _, p := range lifecyclePolicies() {
		t.Run(p.name, func(t *testing.T) {
			c := testutil.NewCensus(t)
			src := newBuffer(t, Hybrid(1, 0, 0), p.ops)
			_, err := src.Inject(0, testutil.Make(1, 2, 3))
			require.NoError(t, err)

			dst := newBuffer(t, Static(8), p.ops)
			_, err = dst.Inject(0, testutil.Make(9))
			require.NoError(t, err)

			require.NoError(t, dst.Move(src))
			assert.Equal(t, []int{1, 2, 3}, testutil.Keys(dst.Data()))
			assert.Zero(t, src.Len())
			assert.True(t, src.IsInline())
			assert.Equal(t, 3, c.Live())

			clone, err := dst.Clone()
			require.NoError(t, err)
			assert.Equal(t, 6, c.Live())

			clone.Free()
			dst.Free()
			assert.Zero(t, c.Live())
			assert.Zero(t, c.DoubleDestroys())
		})
	}
}

func TestCensus_SetMoveAndDispose(t *testing.T) {
	for _, p := range lifecyclePolicies() {
		t.Run(p.name, func(t *testing.T) {
			c := testutil.NewCensus(t)
			b := newBuffer(t, Dynamic(0, 0), p.ops)
			_, err := b.Inject(0, testutil.Make(1, 2))
			require.NoError(t, err)

			v := testutil.Make(7)
			require.NoError(t, b.SetMove(0, &v[0]))
			assert.Equal(t, []int{7, 2}, testutil.Keys(b.Data()))
			assert.Equal(t, 2, c.Live())

			extra := testutil.Make(8, 9)
			b.Dispose(extra)
			assert.Equal(t, 2, c.Live())

			b.Free()
			assert.Zero(t, c.Live())
			assert.Zero(t, c.DoubleDestroys())
		})
	}
}

func TestObject_DestroyerOnly(t *testing.T) {
	for name, s := range lifecycleStrategies() {
		t.Run(name, func(t *testing.T) {
			c := testutil.NewCensus(t)
			b := newBuffer(t, s, elem.Object[testutil.Handle]())

			require.NoError(t, b.Append(
				testutil.Handle{ID: 1}, testutil.Handle{ID: 2}, testutil.Handle{ID: 3},
				testutil.Handle{ID: 4}, testutil.Handle{ID: 5},
			))
			require.NoError(t, b.Reserve(64))
			assert.Empty(t, c.Released())

			assert.Equal(t, 1, b.Delete(1, 1))
			assert.Equal(t, []int{1, 3, 4, 5}, testutil.IDs(b.Data()))
			assert.Equal(t, []int{2}, c.Released())

			assert.Equal(t, 0, b.DeleteFlip(0, 1))
			assert.Equal(t, []int{5, 3, 4}, testutil.IDs(b.Data()))
			assert.Equal(t, []int{2, 1}, c.Released())

			require.NoError(t, b.Set(1, testutil.Handle{ID: 7}))
			assert.Equal(t, []int{5, 7, 4}, testutil.IDs(b.Data()))
			assert.Equal(t, []int{2, 1, 3}, c.Released())

			v := testutil.Handle{ID: 8}
			require.NoError(t, b.SetMove(2, &v))
			assert.Zero(t, v.ID)
			assert.Equal(t, []int{5, 7, 8}, testutil.IDs(b.Data()))
			assert.Equal(t, []int{2, 1, 3, 4}, c.Released())

			_, err := b.Insert(0, testutil.Handle{ID: 6})
			require.NoError(t, err)
			assert.Equal(t, []int{6, 5, 7, 8}, testutil.IDs(b.Data()))
			assert.Equal(t, []int{2, 1, 3, 4}, c.Released())

			b.Free()
			assert.Equal(t, []int{2, 1, 3, 4, 6, 5, 7, 8}, c.Released())
		})
	}
}
