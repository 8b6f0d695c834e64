package alloc

import (
	"unsafe"

	"github.com/hupe1980/slotkit/internal/conv"
)

// header sits immediately before every aligned block.
type header struct {
	offset uintptr // aligned - raw
}

const headerSize = unsafe.Sizeof(header{})

// SelfEncoding adds arbitrary power-of-two alignment to a RawAllocator.
//
// Each request over-allocates align + headerSize bytes. The aligned address is
// the first multiple of align at or after raw + headerSize, and the distance
// back to raw is written into the header word that precedes it.
type SelfEncoding struct {
	raw RawAllocator
}

// NewSelfEncoding wraps raw.
func NewSelfEncoding(raw RawAllocator) *SelfEncoding {
	return &SelfEncoding{raw: raw}
}

// Malloc returns an aligned block of at least size bytes.
func (s *SelfEncoding) Malloc(align, size uintptr) (unsafe.Pointer, error) {
	a, err := checkRequest("malloc", align, size)
	if err != nil {
		return nil, err
	}

	total, ok := conv.AddUintptr(a, headerSize)
	if ok {
		total, ok = conv.AddUintptr(total, size)
	}
	if !ok {
		return nil, newError("malloc", align, size, ErrOverflow)
	}

	raw, err := s.raw.Alloc(total)
	if err != nil {
		return nil, newError("malloc", align, size, err)
	}

	base := uintptr(raw)
	off := conv.AlignUp(base+headerSize, a) - base
	p := unsafe.Add(raw, off)
	(*header)(unsafe.Add(p, -int(headerSize))).offset = off

	return p, nil
}

// Free reads the header preceding ptr and releases the raw block.
func (s *SelfEncoding) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	off := (*header)(unsafe.Add(ptr, -int(headerSize))).offset
	s.raw.Release(unsafe.Add(ptr, -int(off))) //nolint:gosec // offset was written by Malloc
}
