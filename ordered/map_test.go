package ordered

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slotkit/buffer"
	"github.com/hupe1980/slotkit/elem"
)

type entry = Pair[string, string]

func newStringMap(t *testing.T) *Map[string, string] {
	t.Helper()
	m, err := NewMap[string, string](buffer.Hybrid(2, 0, 8), elem.Object[entry]())
	require.NoError(t, err)
	return m
}

func prepend(t *testing.T, b *buffer.Buffer[entry], kvs ...string) {
	t.Helper()
	for i := 0; i < len(kvs); i += 2 {
		_, err := b.Insert(0, entry{Key: kvs[i], Value: kvs[i+1]})
		require.NoError(t, err)
	}
}

func assertEntry(t *testing.T, m *Map[string, string], i int, k, v string) {
	t.Helper()
	assert.Equal(t, entry{Key: k, Value: v}, m.At(i))
}

func TestMap_InjectSequence(t *testing.T) {
	a, err := buffer.New(buffer.Hybrid(2, 0, 8), elem.Object[entry]())
	require.NoError(t, err)
	m1 := newStringMap(t)
	m2 := newStringMap(t)

	prepend(t, a, "888", "888", "333", "333")
	_, err = m1.InjectFrom(a, 0, a.Len(), Keep)
	require.NoError(t, err)
	assert.True(t, a.IsEmpty())

	prepend(t, a, "222", "222", "333", "aaa", "444", "444")
	_, err = m1.InjectFrom(a, 0, a.Len(), Replace, 1, m1.Len())
	require.NoError(t, err)
	require.Equal(t, 4, m1.Len())
	assertEntry(t, m1, 0, "222", "222")
	assertEntry(t, m1, 1, "333", "aaa")
	assertEntry(t, m1, 2, "444", "444")
	assertEntry(t, m1, 3, "888", "888")

	prepend(t, a, "777", "777", "444", "ccc", "555", "555", "999", "999", "111", "111")
	_, err = m2.InjectFrom(a, 0, a.Len(), Keep)
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "444", "555", "777", "999"}, slices.Collect(m2.Keys()))

	require.NoError(t, m1.InjectSortedFrom(m2.Buffer(), 0, 3, Replace, 0, m1.Len()))
	assert.Equal(t, 6, m1.Len())
	assert.Equal(t, 2, m2.Len())
	assertEntry(t, m1, 0, "111", "111")
	assertEntry(t, m1, 3, "444", "ccc")
	assertEntry(t, m1, 4, "555", "555")

	require.NoError(t, m1.InjectSortedFrom(m2.Buffer(), 0, m2.Len(), Keep))
	assert.Equal(t, 8, m1.Len())
	assert.True(t, m2.IsEmpty())
	assertEntry(t, m1, 7, "999", "999")
	assertEntry(t, m1, 5, "777", "777")

	assert.Equal(t, Result{Pos: 0}, m1.Locate("000"))
	assert.Equal(t, Result{Pos: 2}, m1.Locate("234"))
	assert.Equal(t, Result{Pos: 3, Found: true}, m1.Locate("444"))

	want := map[string]string{
		"111": "111", "222": "222", "333": "aaa", "444": "ccc",
		"555": "555", "777": "777", "888": "888", "999": "999",
	}
	for k, v := range want {
		got, ok := Get(m1, k)
		require.True(t, ok, k)
		assert.Equal(t, v, got, k)
	}
	_, ok := Get(m1, "123")
	assert.False(t, ok)

	m1.Delete(m1.Len()-2, 100)
	assert.Equal(t, 6, m1.Len())
	m1.Delete(-2, 4)
	require.Equal(t, 4, m1.Len())
	assertEntry(t, m1, 0, "333", "aaa")
	assertEntry(t, m1, 1, "444", "ccc")
	assertEntry(t, m1, 2, "555", "555")
	assertEntry(t, m1, 3, "777", "777")

	m1.Free()
	assert.True(t, m1.IsEmpty())
}

func TestMap_InjectFromSelf(t *testing.T) {
	m := newStringMap(t)
	_, err := Put(m, "a", "1")
	require.NoError(t, err)

	_, err = m.InjectFrom(m.Buffer(), 0, 1, Keep)
	require.ErrorIs(t, err, buffer.ErrInvalidRange)
	err = m.InjectSortedFrom(m.Buffer(), 0, 1, Keep)
	require.ErrorIs(t, err, buffer.ErrInvalidRange)
	assert.Equal(t, 1, m.Len())
}

func TestMap_PutGet(t *testing.T) {
	m, err := NewMapFunc[string, int](func(a, b string) bool { return a > b }, buffer.Dynamic(0, 0), elem.Raw[Pair[string, int]]())
	require.NoError(t, err)

	r, err := Put(m, "b", 1)
	require.NoError(t, err)
	assert.True(t, r.Inserted())
	_, err = Put(m, "a", 2)
	require.NoError(t, err)
	_, err = Put(m, "c", 3)
	require.NoError(t, err)

	r, err = PutIfAbsent(m, "b", 10)
	require.NoError(t, err)
	assert.True(t, r.Found)
	v, _ := Get(m, "b")
	assert.Equal(t, 1, v)

	r, err = Put(m, "b", 20)
	require.NoError(t, err)
	assert.Equal(t, Result{Pos: 1, Found: true}, r)
	v, _ = Get(m, "b", r.Pos)
	assert.Equal(t, 20, v)

	assert.Equal(t, []string{"c", "b", "a"}, slices.Collect(m.Keys()))
}
