package alloc

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slotkit/internal/mmap"
)

func allocators() map[string]func() Allocator {
	return map[string]func() Allocator{
		"direct":       func() Allocator { return NewDirect() },
		"selfencoding": func() Allocator { return NewSelfEncoding(GoHeap()) },
		"arena":        func() Allocator { return NewSelfEncoding(NewArena(1 << 16)) },
	}
}

func TestNormalizeAlign(t *testing.T) {
	tests := []struct {
		in      uintptr
		want    uintptr
		wantErr bool
	}{
		{0, PointerSize, false},
		{1, PointerSize, false},
		{2, PointerSize, false},
		{16, 16, false},
		{4096, 4096, false},
		{3, 0, true},
		{24, 0, true},
	}
	for _, tt := range tests {
		got, err := NormalizeAlign(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAlignment)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestAllocator_Alignment(t *testing.T) {
	for name, mk := range allocators() {
		t.Run(name, func(t *testing.T) {
			a := mk()
			for _, align := range []uintptr{0, 1, 8, 16, 64, 128, 256} {
				p, err := a.Malloc(align, 100)
				require.NoError(t, err)
				require.NotNil(t, p)

				want := align
				if want < PointerSize {
					want = PointerSize
				}
				assert.Zero(t, uintptr(p)%want, "align %d", align)

				buf := unsafe.Slice((*byte)(p), 100)
				for i := range buf {
					buf[i] = byte(i)
				}
				assert.Equal(t, byte(99), buf[99])
				a.Free(p)
			}
		})
	}
}

func TestAllocator_InvalidRequests(t *testing.T) {
	for name, mk := range allocators() {
		t.Run(name, func(t *testing.T) {
			a := mk()

			_, err := a.Malloc(3, 100)
			require.ErrorIs(t, err, ErrInvalidAlignment)
			require.ErrorIs(t, err, ErrAllocation)

			var ae *Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, "malloc", ae.Op)
			assert.Equal(t, uintptr(3), ae.Align)

			_, err = a.Malloc(0, 0)
			require.ErrorIs(t, err, ErrInvalidSize)

			a.Free(nil)
		})
	}
}

func TestSelfEncoding_Overflow(t *testing.T) {
	a := NewSelfEncoding(GoHeap())
	_, err := a.Malloc(64, ^uintptr(0)-8)
	require.ErrorIs(t, err, ErrOverflow)
	require.ErrorIs(t, err, ErrAllocation)
}

type recordingRaw struct {
	inner    RawAllocator
	allocs   map[unsafe.Pointer]uintptr
	released []unsafe.Pointer
}

func (r *recordingRaw) Alloc(size uintptr) (unsafe.Pointer, error) {
	p, err := r.inner.Alloc(size)
	if err == nil {
		r.allocs[p] = size
	}
	return p, err
}

func (r *recordingRaw) Release(p unsafe.Pointer) {
	r.released = append(r.released, p)
	r.inner.Release(p)
}

func TestSelfEncoding_HeaderRecovery(t *testing.T) {
	raw := &recordingRaw{inner: GoHeap(), allocs: map[unsafe.Pointer]uintptr{}}
	a := NewSelfEncoding(raw)

	for _, align := range []uintptr{8, 32, 512} {
		p, err := a.Malloc(align, 40)
		require.NoError(t, err)

		off := (*header)(unsafe.Add(p, -int(headerSize))).offset
		rawPtr := unsafe.Add(p, -int(off))
		size, ok := raw.allocs[rawPtr]
		require.True(t, ok)
		assert.Equal(t, align+headerSize+40, size)
		assert.GreaterOrEqual(t, off, headerSize)
		assert.Less(t, off, align+headerSize)

		a.Free(p)
		assert.Equal(t, rawPtr, raw.released[len(raw.released)-1])
	}
}

func TestSelfEncoding_ProviderFailure(t *testing.T) {
	a := NewSelfEncoding(GoHeapLimit(64))
	_, err := a.Malloc(8, 128)
	require.ErrorIs(t, err, ErrOutOfMemory)

	p, err := a.Malloc(8, 16)
	require.NoError(t, err)
	a.Free(p)
}

func TestDirect_LargeAlignment(t *testing.T) {
	d := NewDirect()
	align := uintptr(1 << 16)
	p, err := d.Malloc(align, 10)
	require.NoError(t, err)
	assert.Zero(t, uintptr(p)%align)
	assert.Equal(t, 1, d.Live())

	d.Free(p)
	assert.Equal(t, 0, d.Live())

	// Unknown pointers are ignored.
	var x int
	d.Free(unsafe.Pointer(&x))
}

func TestDirect_UnmapFailure(t *testing.T) {
	var logs bytes.Buffer
	d := NewDirect(WithDirectLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	p, err := d.Malloc(8, 64)
	require.NoError(t, err)
	d.Free(p)
	assert.Zero(t, d.UnmapFailures())
	assert.Empty(t, logs.String())

	unmap := d.unmap
	d.unmap = func(m *mmap.Mapping) error {
		require.NoError(t, unmap(m))
		return errors.New("munmap: invalid argument")
	}
	p, err = d.Malloc(8, 64)
	require.NoError(t, err)
	d.Free(p)

	assert.Equal(t, int64(1), d.UnmapFailures())
	assert.Equal(t, 0, d.Live())
	assert.Contains(t, logs.String(), "unmap failed")
	assert.Contains(t, logs.String(), "munmap: invalid argument")
}

func TestDefault(t *testing.T) {
	a := Default()
	assert.Same(t, a, Default())

	p, err := a.Malloc(16, 32)
	require.NoError(t, err)
	assert.Zero(t, uintptr(p)%16)
	a.Free(p)
}
