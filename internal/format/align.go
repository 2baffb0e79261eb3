package format

// Alignment utilities for addresses and sizes inside a block.

// AlignDownWord returns n rounded down to the previous word boundary.
// The bump cursor moves downward, so allocations round toward zero.
//
// Example (64-bit):
//
//	AlignDownWord(7)  = 0
//	AlignDownWord(8)  = 8
//	AlignDownWord(15) = 8
func AlignDownWord(n uintptr) uintptr {
	return n &^ WordMask
}

// AlignUpWord returns n rounded up to the next word boundary.
//
// Example (64-bit):
//
//	AlignUpWord(1) = 8
//	AlignUpWord(8) = 8
//	AlignUpWord(9) = 16
func AlignUpWord(n uintptr) uintptr {
	return (n + WordMask) &^ WordMask
}

// LinesFor returns the number of lines needed to hold n bytes.
func LinesFor(n uintptr) uintptr {
	return (n + LineSize - 1) / LineSize
}

// LineOf returns the index of the line containing block-relative offset off.
func LineOf(off uintptr) uintptr {
	return off >> LineSizeBits
}

// IsPowerOfTwo reports whether n is a power of two. Zero is not.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}
