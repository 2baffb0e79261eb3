package immix

import (
	"unsafe"

	"github.com/joshuapare/immixkit/internal/block"
	"github.com/joshuapare/immixkit/internal/format"
)

// BumpBlock allocates downward from a cursor inside one aligned block.
//
// cursor and limit are offsets from the block base. The range [limit, cursor)
// is the current hole, and limit <= cursor <= CursorStartOffset always holds.
// A fresh block's hole is the whole data region.
type BumpBlock struct {
	cursor uintptr
	limit  uintptr
	block  *block.Block
	meta   LineMarks

	// holes counts holes installed by FindNextHole.
	holes int
}

// NewBumpBlock creates a block backed by the platform memory source.
func NewBumpBlock() (*BumpBlock, error) {
	return newBumpBlock(block.New)
}

func newBumpBlock(acquire func(uintptr) (*block.Block, error)) (*BumpBlock, error) {
	blk, err := acquire(format.BlockSize)
	if err != nil {
		return nil, mapBlockErr(err)
	}

	b := &BumpBlock{
		cursor: format.CursorStartOffset,
		limit:  0,
		block:  blk,
		meta:   newLineMarks(blk.Base()),
	}
	b.meta.MarkBlockStatus(TrueMarked)
	return b, nil
}

// Alloc carves size bytes out of the block and returns their start address.
// The address is word aligned and lies below the previous cursor.
//
// When the current hole is too small, the mark table is searched for the
// next hole below the limit and the allocation is retried there. Returns
// false when no hole below the current position can hold the request; the
// caller must move on to another block.
func (b *BumpBlock) Alloc(size uintptr) (unsafe.Pointer, bool) {
	for {
		if size <= b.cursor {
			next := format.AlignDownWord(b.cursor - size)
			if next >= b.limit {
				b.cursor = next
				return unsafe.Add(b.block.Base(), next), true
			}
		}

		if b.limit == 0 {
			return nil, false
		}
		cursor, limit, ok := b.meta.FindNextHole(b.limit, size)
		// Every hole must lie strictly below the previous limit.
		if !ok || limit >= b.limit {
			return nil, false
		}
		b.cursor, b.limit = cursor, limit
		b.holes++
	}
}

// HoleSize returns the number of bytes left in the current hole.
func (b *BumpBlock) HoleSize() uintptr {
	return b.cursor - b.limit
}

// Cursor returns the block-relative bump cursor.
func (b *BumpBlock) Cursor() uintptr { return b.cursor }

// Limit returns the block-relative lower bound of the current hole.
func (b *BumpBlock) Limit() uintptr { return b.limit }

// Holes returns how many holes the block has found in its mark table.
func (b *BumpBlock) Holes() int { return b.holes }

// IsLive reads the block status byte.
func (b *BumpBlock) IsLive() bool {
	return b.meta.IsMarked(format.BlockStatusIndex)
}

// Meta returns the block's line-mark table.
func (b *BumpBlock) Meta() *LineMarks {
	return &b.meta
}

// Base returns the start address of the block.
func (b *BumpBlock) Base() unsafe.Pointer {
	return b.block.Base()
}

// Contains reports whether p points into the block's data region.
func (b *BumpBlock) Contains(p unsafe.Pointer) bool {
	base := b.block.Base()
	if base == nil {
		return false
	}
	off := uintptr(p) - uintptr(base)
	return uintptr(p) >= uintptr(base) && off < format.CursorStartOffset
}

// MarkObject marks the lines covered by the object of size bytes at p.
// Objects that fit in a line only mark the line they start in, as
// ConservMarked; hole search leaves the following line alone. Larger
// objects mark every line they span.
func (b *BumpBlock) MarkObject(p unsafe.Pointer, size uintptr) bool {
	if size == 0 || !b.Contains(p) {
		return false
	}
	off := uintptr(p) - uintptr(b.block.Base())
	if size > format.CursorStartOffset-off {
		return false
	}

	first := int(format.LineOf(off))
	if size <= format.LineSize {
		return b.meta.MarkLine(first, ConservMarked)
	}
	last := int(format.LineOf(off + size - 1))
	for line := first; line <= last; line++ {
		b.meta.MarkLine(line, TrueMarked)
	}
	return true
}

// Release returns the block's memory. The block must not be used afterwards.
func (b *BumpBlock) Release() error {
	b.meta.lines = nil
	return b.block.Release()
}
