package alloc

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracking(t *testing.T) {
	tr := NewTracking(NewSelfEncoding(GoHeap()))

	p1, err := tr.Malloc(8, 100)
	require.NoError(t, err)
	p2, err := tr.Malloc(8, 50)
	require.NoError(t, err)

	size, ok := tr.SizeOf(p2)
	require.True(t, ok)
	assert.Equal(t, uintptr(50), size)

	tr.Free(p1)
	_, err = tr.Malloc(3, 10)
	require.Error(t, err)

	s := tr.Stats()
	assert.Equal(t, int64(2), s.Mallocs)
	assert.Equal(t, int64(1), s.Frees)
	assert.Equal(t, int64(1), s.Failures)
	assert.Equal(t, int64(50), s.BytesInUse)
	assert.Equal(t, int64(150), s.PeakBytes)
	assert.Equal(t, int64(1), s.Live())

	tr.Free(p2)
	tr.Free(nil)
	assert.Equal(t, int64(0), tr.Stats().BytesInUse)
}

func TestTracking_Concurrent(t *testing.T) {
	tr := NewTracking(nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				p, err := tr.Malloc(16, 24)
				if err != nil {
					return
				}
				tr.Free(p)
			}
		}()
	}
	wg.Wait()

	s := tr.Stats()
	assert.Equal(t, int64(800), s.Mallocs)
	assert.Equal(t, int64(800), s.Frees)
	assert.Equal(t, int64(0), s.BytesInUse)
	assert.LessOrEqual(t, s.PeakBytes, int64(8*24))
}

func TestBudget(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	b := NewBudget(NewSelfEncoding(GoHeap()), 100, WithBudgetLogger(logger))
	assert.Equal(t, int64(100), b.Limit())

	p1, err := b.Malloc(8, 60)
	require.NoError(t, err)
	assert.Equal(t, int64(40), b.Remaining())

	_, err = b.Malloc(8, 60)
	require.ErrorIs(t, err, ErrBudgetExceeded)
	require.ErrorIs(t, err, ErrAllocation)
	assert.Contains(t, logs.String(), "allocation refused")

	_, err = b.Malloc(8, 1000)
	require.ErrorIs(t, err, ErrBudgetExceeded)

	p2, err := b.Malloc(8, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(100), b.Used())

	b.Free(p1)
	b.Free(p2)
	assert.Equal(t, int64(0), b.Used())

	p3, err := b.Malloc(8, 100)
	require.NoError(t, err)
	b.Free(p3)
}

type failingAllocator struct{}

func (failingAllocator) Malloc(align, size uintptr) (unsafe.Pointer, error) {
	return nil, newError("malloc", align, size, ErrOutOfMemory)
}

func (failingAllocator) Free(unsafe.Pointer) {}

func TestBudget_InnerFailureRefundsBudget(t *testing.T) {
	b := NewBudget(failingAllocator{}, 100)
	_, err := b.Malloc(8, 50)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, int64(0), b.Used())
	assert.Equal(t, int64(100), b.Remaining())
}
