package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_Direct(t *testing.T) {
	mm := NewDirect()
	var r Block

	require.NoError(t, r.Malloc(mm, 0, 0))
	assert.False(t, r.Valid())

	require.Error(t, r.Malloc(mm, 3, 100))

	require.NoError(t, r.Malloc(mm, 0, 100))
	assert.True(t, r.Valid())
	assert.True(t, r.IsAligned(8))

	require.NoError(t, r.Malloc(mm, 128, 100))
	assert.True(t, r.IsAligned(128))
	assert.Equal(t, 1, mm.Live())

	r.Free()
	assert.Equal(t, 0, mm.Live())
}

func TestBlock_SelfEncoding(t *testing.T) {
	mm := NewTracking(NewSelfEncoding(GoHeap()))
	var r Block

	require.NoError(t, r.Malloc(mm, 0, 0))
	assert.False(t, r.Valid())
	require.Error(t, r.Malloc(mm, 3, 100))
	require.NoError(t, r.Malloc(mm, 0, 100))
	assert.True(t, r.Valid())
	assert.True(t, r.IsAligned(8))
	r.Free()

	require.NoError(t, r.Realloc(mm, 128, 100))
	assert.True(t, r.Valid())
	assert.True(t, r.IsAligned(128))
	ptr := r.Ptr
	copy(r.Bytes(), "TestCustom")

	require.NoError(t, r.Realloc(mm, 256, 200))
	assert.Equal(t, "TestCustom", string(r.Bytes()[:10]))
	assert.NotEqual(t, ptr, r.Ptr)
	assert.True(t, r.IsAligned(256))

	ptr = r.Ptr
	require.NoError(t, r.Realloc(mm, 256, 100))
	assert.Equal(t, ptr, r.Ptr)

	require.NoError(t, r.Realloc(mm, 256, 0))
	assert.False(t, r.Valid())
	assert.Nil(t, r.Bytes())

	assert.Equal(t, int64(0), mm.Stats().Live())
}
