//go:build linux

package block

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	mapProt  = unix.PROT_READ | unix.PROT_WRITE
	mapFlags = unix.MAP_PRIVATE | unix.MAP_ANONYMOUS
)

// acquire maps an anonymous region aligned to size. Sizes up to a page are
// mapped directly since page alignment covers them. Larger sizes map twice
// the size and unmap the misaligned head and tail.
func acquire(size uintptr) (unsafe.Pointer, func() error, error) {
	page := uintptr(unix.Getpagesize())
	if size <= page {
		p, err := unix.MmapPtr(-1, 0, nil, size, mapProt, mapFlags)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrOOM, size, err)
		}
		return p, func() error { return unix.MunmapPtr(p, size) }, nil
	}

	if size > math.MaxUint/2 {
		return nil, nil, ErrBadRequest
	}
	span := 2 * size
	raw, err := unix.MmapPtr(-1, 0, nil, span, mapProt, mapFlags)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrOOM, span, err)
	}

	start := uintptr(raw)
	head := ((start + size - 1) &^ (size - 1)) - start
	base := unsafe.Add(raw, head)
	tail := span - head - size

	if head > 0 {
		if err := unix.MunmapPtr(raw, head); err != nil {
			_ = unix.MunmapPtr(raw, span)
			return nil, nil, fmt.Errorf("%w: trim head: %w", ErrOOM, err)
		}
	}
	if tail > 0 {
		if err := unix.MunmapPtr(unsafe.Add(base, size), tail); err != nil {
			_ = unix.MunmapPtr(base, size+tail)
			return nil, nil, fmt.Errorf("%w: trim tail: %w", ErrOOM, err)
		}
	}
	return base, func() error { return unix.MunmapPtr(base, size) }, nil
}
