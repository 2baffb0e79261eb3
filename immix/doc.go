// Package immix implements an Immix-style block/line bump allocator.
//
// # Overview
//
// Memory is handed out from fixed-size blocks (32 KiB) that are aligned to
// their own size. Each block is divided into 128-byte lines. The last
// LineCount bytes of a block hold the line-mark table: one byte per line
// recording whether a collector found live data there. The final byte of the
// table doubles as the block status (live) flag.
//
//	0                                   CursorStartOffset  BlockCapacity  BlockSize
//	| data lines ......................... |                |  line marks  |
//	                       <-- cursor moves down
//
// # Allocation
//
// A BumpBlock keeps a cursor and a limit. The range [limit, cursor) is the
// current hole; allocation moves the cursor down by the request size, rounded
// down to a word boundary. When the hole is too small the block searches its
// mark table, from the current limit downward, for the next run of unmarked
// lines large enough for the request. A run that ends at a marked line gives
// up one extra line next to it, since a small object attributed to the
// marked line may spill into its neighbour.
//
// # Heap
//
// Heap is the entry point. Requests carry a SizeClass:
//
//   - Small: bump into the head block; when it is exhausted, retire it and
//     start a fresh head.
//   - Medium: as Small when the head's current hole fits, otherwise bump
//     into the overflow block without searching the head for holes.
//   - Large: always ErrBadRequest; there is no large object space.
//
// Retired blocks are kept in the block list for a future collector and are
// never allocated into again.
//
// # Usage Example
//
//	h, err := immix.New(immix.Options{})
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	p, err := h.Alloc(64, immix.Small)
//	if err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Heap is not safe for concurrent use; it must be confined to one goroutine
// or guarded by the caller. SyncHeap wraps a Heap with a mutex held for the
// duration of every call.
//
// # Related Packages
//
//   - github.com/joshuapare/immixkit/immix/object: typed objects with host-defined headers
//   - github.com/joshuapare/immixkit/internal/block: aligned raw memory
//   - github.com/joshuapare/immixkit/internal/format: block and line geometry
package immix
