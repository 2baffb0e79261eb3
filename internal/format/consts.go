// Package format holds the fixed block and line geometry shared by the
// allocator packages, together with the alignment arithmetic built on it.
// Everything here is a compile-time constant or a pure function so the hot
// allocation paths can inline it.
package format

import "unsafe"

const (
	// BlockSizeBits is log2 of the block size.
	BlockSizeBits = 15

	// BlockSize is the size of one block in bytes. Blocks are acquired from
	// the system aligned to their own size, so the owning block of any
	// interior address is found by masking off the low BlockSizeBits bits.
	BlockSize = 1 << BlockSizeBits

	// BlockMask clears the in-block offset of an address.
	BlockMask = BlockSize - 1

	// LineSizeBits is log2 of the line size.
	LineSizeBits = 7

	// LineSize is the number of bytes covered by one line mark.
	LineSize = 1 << LineSizeBits

	// LineCount is the number of entries in a block's line-mark table.
	LineCount = BlockSize / LineSize

	// BlockCapacity is the offset of the line-mark table inside a block.
	// One mark byte per line is reserved at the block tail.
	BlockCapacity = BlockSize - LineCount

	// CursorStartOffset is where the bump cursor of a fresh block starts:
	// the largest multiple of LineSize that does not exceed BlockCapacity.
	CursorStartOffset = (BlockCapacity / LineSize) * LineSize

	// BlockStatusIndex is the mark-table index overloaded as the
	// whole-block live flag.
	BlockStatusIndex = LineCount - 1

	// WordSize is the machine word size; every allocation is aligned to it.
	WordSize = unsafe.Sizeof(uintptr(0))

	// WordMask is the bitmask used for word alignment (WordSize - 1).
	WordMask = WordSize - 1
)

// Compile-time checks on the geometry:
// CursorStartOffset <= BlockCapacity < BlockSize and LineCount >= 1.
var (
	_ [BlockCapacity - CursorStartOffset]struct{}
	_ [BlockSize - BlockCapacity - 1]struct{}
	_ [LineCount - 1]struct{}
)
