package immix

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/immixkit/internal/format"
)

const ls = format.LineSize

// newTestBlock creates a bump block released at test cleanup.
func newTestBlock(t testing.TB) *BumpBlock {
	t.Helper()
	b, err := NewBumpBlock()
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Release() })
	return b
}

// newMarkedBlock creates a block with the given lines TrueMarked.
func newMarkedBlock(t testing.TB, lines ...int) *BumpBlock {
	t.Helper()
	b := newTestBlock(t)
	for _, l := range lines {
		require.True(t, b.Meta().MarkLine(l, TrueMarked), "mark line %d", l)
	}
	return b
}

// newTestHeap creates a heap closed at test cleanup.
func newTestHeap(t testing.TB, opts Options) *Heap {
	t.Helper()
	h, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

// offsetIn returns p relative to the base of b.
func offsetIn(b *BumpBlock, p unsafe.Pointer) uintptr {
	return uintptr(p) - uintptr(b.Base())
}

// fill writes a per-allocation pattern so aliasing shows up on readback.
func fill(p unsafe.Pointer, size uintptr, v byte) {
	s := unsafe.Slice((*byte)(p), size)
	for i := range s {
		s[i] = v
	}
}

func holds(p unsafe.Pointer, size uintptr, v byte) bool {
	return bytes.Count(unsafe.Slice((*byte)(p), size), []byte{v}) == int(size)
}

// debugLogger returns a logger writing debug output into buf.
func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

var errNoBlocks = errors.New("test: no blocks")

// unsafeAt returns the address off bytes into b.
func unsafeAt(b *BumpBlock, off uintptr) unsafe.Pointer {
	return unsafe.Add(b.Base(), off)
}
