package immix

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/immixkit/internal/block"
	"github.com/joshuapare/immixkit/internal/format"
)

// Heap dispatches allocation requests to its blocks by size class.
//
// A Heap is an exclusive handle: it is not safe for concurrent use. Use
// SyncHeap to share one between goroutines.
type Heap struct {
	blocks  *BlockList
	classes SizeClassConfig
	log     *slog.Logger

	acquire   func(uintptr) (*block.Block, error)
	maxBlocks int

	// index maps block base addresses to blocks for BlockOf.
	index map[uintptr]*BumpBlock

	closed bool

	allocs           uint64
	bytes            uint64
	created          int
	headReplacements int
	overflowAllocs   int
}

// New creates an empty heap. No memory is acquired until the first Alloc.
func New(opts Options) (*Heap, error) {
	classes := opts.SizeClasses
	if classes == (SizeClassConfig{}) {
		classes = DefaultSizeClasses
	}
	if !classes.valid() {
		return nil, fmt.Errorf("%w: size classes %q: small=%d medium=%d",
			ErrBadRequest, classes.Name, classes.SmallMax, classes.MediumMax)
	}
	if opts.MaxBlocks < 0 {
		return nil, fmt.Errorf("%w: negative MaxBlocks %d", ErrBadRequest, opts.MaxBlocks)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &Heap{
		classes:   classes,
		log:       logger,
		acquire:   block.New,
		maxBlocks: opts.MaxBlocks,
		index:     make(map[uintptr]*BumpBlock),
	}
	if opts.HeapBacked {
		h.acquire = block.NewHeapBacked
	}
	h.blocks = NewBlockList(func() (*BumpBlock, error) { return h.newBlock("overflow") }, logger)
	return h, nil
}

// newBlock creates a block for role, enforcing MaxBlocks.
func (h *Heap) newBlock(role string) (*BumpBlock, error) {
	if h.maxBlocks > 0 && h.created >= h.maxBlocks {
		return nil, fmt.Errorf("%w: block limit %d reached", ErrOOM, h.maxBlocks)
	}
	b, err := newBumpBlock(h.acquire)
	if err != nil {
		h.log.Debug("block acquisition failed", "role", role, "err", err)
		return nil, err
	}
	h.created++
	h.index[uintptr(b.Base())] = b
	h.log.Debug("created block", "role", role, "base", fmt.Sprintf("%#x", uintptr(b.Base())), "blocks", h.created)
	return b, nil
}

// Alloc returns the start address of size bytes of raw memory for an object
// of the given class. The memory is word aligned and is not zeroed.
//
// Large requests, zero sizes and sizes above CursorStartOffset fail with
// ErrBadRequest. ErrOOM is returned when a new block is needed and cannot be
// acquired; the heap is unchanged in that case.
func (h *Heap) Alloc(size uintptr, class SizeClass) (unsafe.Pointer, error) {
	if h.closed {
		return nil, ErrClosed
	}
	if class == Large {
		return nil, fmt.Errorf("%w: no large object space (size %d)", ErrBadRequest, size)
	}
	if size == 0 || size > format.CursorStartOffset {
		return nil, fmt.Errorf("%w: size %d does not fit in a block", ErrBadRequest, size)
	}

	p, err := h.findSpace(size, class)
	if err != nil {
		return nil, err
	}
	h.allocs++
	h.bytes += uint64(size)
	return p, nil
}

// AllocAuto classifies size with the heap's SizeClassConfig and allocates.
func (h *Heap) AllocAuto(size uintptr) (unsafe.Pointer, error) {
	return h.Alloc(size, h.classes.ClassFor(size))
}

func (h *Heap) findSpace(size uintptr, class SizeClass) (unsafe.Pointer, error) {
	head := h.blocks.Head()
	if head == nil {
		fresh, err := h.newBlock("head")
		if err != nil {
			return nil, err
		}
		p, ok := fresh.Alloc(size)
		if !ok {
			panic(fmt.Sprintf("immix: fresh head block cannot hold %d bytes", size))
		}
		h.blocks.SetHead(fresh)
		return p, nil
	}

	// Medium objects that miss the current hole skip hole search on the head.
	if class == Medium && head.HoleSize() < size {
		p, err := h.blocks.OverflowAlloc(size)
		if err != nil {
			return nil, err
		}
		h.overflowAllocs++
		return p, nil
	}

	if p, ok := head.Alloc(size); ok {
		return p, nil
	}

	fresh, err := h.newBlock("head")
	if err != nil {
		return nil, err
	}
	h.blocks.PushToRest(head)
	h.blocks.SetHead(fresh)
	h.headReplacements++
	h.log.Debug("retired head block", "rest", len(h.blocks.Rest()))

	p, ok := fresh.Alloc(size)
	if !ok {
		panic(fmt.Sprintf("immix: replacement head block cannot hold %d bytes", size))
	}
	return p, nil
}

// BlockOf returns the block containing p. Blocks are aligned to their size,
// so the lookup masks the address down to a block base.
func (h *Heap) BlockOf(p unsafe.Pointer) (*BumpBlock, bool) {
	b, ok := h.index[uintptr(p)&^format.BlockMask]
	if !ok || !b.Contains(p) {
		return nil, false
	}
	return b, true
}

// MarkObject marks the lines of the object of size bytes at p.
// Returns false when p does not belong to this heap.
func (h *Heap) MarkObject(p unsafe.Pointer, size uintptr) bool {
	b, ok := h.BlockOf(p)
	if !ok {
		return false
	}
	return b.MarkObject(p, size)
}

// Blocks yields every block the heap owns: head, overflow, then retired.
func (h *Heap) Blocks() iter.Seq[*BumpBlock] {
	return h.blocks.All()
}

// SizeClasses returns the configuration AllocAuto uses.
func (h *Heap) SizeClasses() SizeClassConfig {
	return h.classes
}

// Stats returns a snapshot of allocation counters and block occupancy.
func (h *Heap) Stats() Stats {
	s := Stats{
		Allocations:          h.allocs,
		BytesRequested:       h.bytes,
		BlocksCreated:        h.created,
		LiveBlocks:           h.blocks.Len(),
		RetiredBlocks:        len(h.blocks.Rest()),
		HeadReplacements:     h.headReplacements,
		OverflowReplacements: h.blocks.overflowReplacements,
		OverflowAllocations:  h.overflowAllocs,
	}
	for b := range h.blocks.All() {
		s.FreeLines += b.meta.FreeLines()
		s.HolesFound += b.holes
	}
	if head := h.blocks.Head(); head != nil {
		s.HeadHoleSize = head.HoleSize()
	}
	return s
}

// Close releases every block. Pointers returned by Alloc become invalid.
// Subsequent allocations fail with ErrClosed.
func (h *Heap) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	clear(h.index)
	return h.blocks.Release()
}
