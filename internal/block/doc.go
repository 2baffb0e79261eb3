// Package block acquires and releases self-aligned regions of raw memory.
//
// A Block is a power-of-two sized region whose base address is a multiple of
// its size. On Linux the memory comes from an anonymous private mapping and
// lives outside the Go heap; elsewhere it is carved out of an over-allocated
// byte slice. NewHeapBacked selects the byte-slice source on every platform.
//
// A Block has exactly one owner. Release returns the memory and clears the
// block, so releasing twice is a no-op rather than a double free.
package block
