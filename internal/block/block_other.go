//go:build !linux

package block

import "unsafe"

// acquire falls back to the Go heap where anonymous mappings are not wired up.
func acquire(size uintptr) (unsafe.Pointer, func() error, error) {
	return acquireHeap(size)
}
