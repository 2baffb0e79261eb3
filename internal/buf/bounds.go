// Package buf holds overflow-checked size arithmetic for allocation requests.
package buf

import (
	"fmt"
	"math"
)

// AddSize adds a and b, returning ok = false when the result would overflow uintptr.
func AddSize(a, b uintptr) (uintptr, bool) {
	if a > math.MaxUint-b {
		return 0, false
	}
	return a + b, true
}

// MulSize multiplies a and b, returning ok = false when the result would overflow uintptr.
// This is what count * elementSize calculations for arrays go through.
func MulSize(a, b uintptr) (uintptr, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint/b {
		return 0, false
	}
	return a * b, true
}

// ArraySize returns header + count*elemSize, or an error naming the step that
// overflowed.
//
//	total, err := buf.ArraySize(hdr, n, 8)
//	if err != nil {
//	    return nil, fmt.Errorf("array: %w", err)
//	}
func ArraySize(header, count, elemSize uintptr) (uintptr, error) {
	payload, ok := MulSize(count, elemSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	total, ok := AddSize(header, payload)
	if !ok {
		return 0, fmt.Errorf("overflow: header=%d + payload=%d", header, payload)
	}
	return total, nil
}

// FitsUint32 reports whether n can be stored in a 32-bit size field.
func FitsUint32(n uintptr) bool {
	return uint64(n) <= math.MaxUint32
}
