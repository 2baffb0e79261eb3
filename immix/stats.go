package immix

// Stats is a snapshot of heap activity.
type Stats struct {
	Allocations    uint64 // successful Alloc calls
	BytesRequested uint64 // sum of requested sizes

	BlocksCreated int // blocks ever created
	LiveBlocks    int // blocks currently owned (head + overflow + rest)
	RetiredBlocks int // blocks in rest

	HeadReplacements     int // heads retired because they were exhausted
	OverflowReplacements int // overflow blocks retired because they were full
	OverflowAllocations  int // medium requests routed to the overflow block
	HolesFound           int // holes installed from line marks

	FreeLines    int     // unmarked data lines across owned blocks
	HeadHoleSize uintptr // bytes left in the head block's current hole
}
