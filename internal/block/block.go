package block

import (
	"math"
	"unsafe"

	"github.com/joshuapare/immixkit/internal/format"
)

// Block is a self-aligned region of raw memory.
type Block struct {
	base    unsafe.Pointer
	size    uintptr
	release func() error
}

// New acquires size bytes aligned to size from the platform source.
func New(size uintptr) (*Block, error) {
	if !format.IsPowerOfTwo(size) {
		return nil, ErrBadRequest
	}
	base, release, err := acquire(size)
	if err != nil {
		return nil, err
	}
	return &Block{base: base, size: size, release: release}, nil
}

// NewHeapBacked acquires size bytes aligned to size from the Go heap.
// The backing slice is over-allocated by size-1 bytes and stays referenced
// until Release.
func NewHeapBacked(size uintptr) (*Block, error) {
	if !format.IsPowerOfTwo(size) {
		return nil, ErrBadRequest
	}
	base, release, err := acquireHeap(size)
	if err != nil {
		return nil, err
	}
	return &Block{base: base, size: size, release: release}, nil
}

func acquireHeap(size uintptr) (unsafe.Pointer, func() error, error) {
	if size > uintptr(math.MaxInt)/2 {
		return nil, nil, ErrBadRequest
	}
	mem := make([]byte, int(size)+int(size)-1)
	start := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	off := (size - start&(size-1)) & (size - 1)
	base := unsafe.Pointer(&mem[off])
	return base, func() error {
		mem = nil
		return nil
	}, nil
}

// Base returns the aligned start of the region, or nil once released.
func (b *Block) Base() unsafe.Pointer {
	return b.base
}

// Size returns the region size in bytes.
func (b *Block) Size() uintptr {
	return b.size
}

// Bytes returns a view of the whole region, or nil once released.
func (b *Block) Bytes() []byte {
	if b.base == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.base), b.size)
}

// Released reports whether Release has been called.
func (b *Block) Released() bool {
	return b.base == nil
}

// Release returns the region to its source. Calling it again is a no-op.
func (b *Block) Release() error {
	if b.base == nil {
		return nil
	}
	release := b.release
	b.base = nil
	b.release = nil
	return release()
}
