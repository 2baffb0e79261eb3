package object

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/immixkit/immix"
	"github.com/joshuapare/immixkit/internal/format"
)

type kind uint16

const (
	kindArray kind = iota
	kindPair
	kindString
)

// testHeader is an 8-byte header: type, class, mark, payload size.
type testHeader struct {
	kind  kind
	class uint8
	mark  uint8
	size  uint32
}

func (h *testHeader) Mark()                      { h.mark = uint8(immix.TrueMarked) }
func (h *testHeader) IsMarked() bool             { return h.mark != uint8(immix.Unmarked) }
func (h *testHeader) SizeClass() immix.SizeClass { return immix.SizeClass(h.class) }
func (h *testHeader) Size() uint32               { return h.size }
func (h *testHeader) TypeID() kind               { return h.kind }

type testProvider struct{}

func (testProvider) HeaderSize() uintptr { return unsafe.Sizeof(testHeader{}) }

func (testProvider) InitObject(at unsafe.Pointer, id kind, size uint32, class immix.SizeClass, mark immix.MarkState) {
	*(*testHeader)(at) = testHeader{kind: id, class: uint8(class), mark: uint8(mark), size: size}
}

func (p testProvider) InitArray(at unsafe.Pointer, size uint32, class immix.SizeClass, mark immix.MarkState) {
	p.InitObject(at, kindArray, size, class, mark)
}

func (testProvider) Header(at unsafe.Pointer) Header[kind] {
	return (*testHeader)(at)
}

func newTestAllocator(t *testing.T) (*Allocator[kind], *immix.Heap) {
	t.Helper()
	h, err := immix.New(immix.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return New[kind](h, testProvider{}, immix.SizeClassConfig{}), h
}

func TestAllocator_Alloc(t *testing.T) {
	a, h := newTestAllocator(t)

	obj, err := a.Alloc(kindPair, 16)
	require.NoError(t, err)
	assert.Zero(t, uintptr(obj)%format.WordSize)

	hdr := a.HeaderOf(obj)
	assert.Equal(t, kindPair, hdr.TypeID())
	assert.Equal(t, uint32(16), hdr.Size())
	assert.Equal(t, immix.Small, hdr.SizeClass())
	assert.False(t, hdr.IsMarked())

	_, ok := h.BlockOf(a.HeaderAddr(obj))
	assert.True(t, ok)
}

func TestAllocator_RoundTrip(t *testing.T) {
	a, _ := newTestAllocator(t)

	for _, size := range []uintptr{0, 1, 7, 64, 500, 4000} {
		obj, err := a.Alloc(kindString, size)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, obj, a.ObjectOf(a.HeaderAddr(obj)))
		assert.Equal(t, uintptr(8), uintptr(obj)-uintptr(a.HeaderAddr(obj)))
	}
}

func TestAllocator_SizeClassFromTotal(t *testing.T) {
	a, _ := newTestAllocator(t)

	// 120 payload + 8 header fits a line.
	obj, err := a.Alloc(kindString, 120)
	require.NoError(t, err)
	assert.Equal(t, immix.Small, a.HeaderOf(obj).SizeClass())

	obj, err = a.Alloc(kindString, 121)
	require.NoError(t, err)
	assert.Equal(t, immix.Medium, a.HeaderOf(obj).SizeClass())
}

func TestAllocator_AllocArray(t *testing.T) {
	a, _ := newTestAllocator(t)

	obj, err := a.AllocArray(32, 8)
	require.NoError(t, err)
	hdr := a.HeaderOf(obj)
	assert.Equal(t, kindArray, hdr.TypeID())
	assert.Equal(t, uint32(256), hdr.Size())
	assert.Equal(t, immix.Medium, hdr.SizeClass())

	payload := unsafe.Slice((*uint64)(obj), 32)
	for i := range payload {
		payload[i] = uint64(i)
	}
	assert.Equal(t, uint32(256), a.HeaderOf(obj).Size(), "payload writes must not reach the header")
}

func TestAllocator_Errors(t *testing.T) {
	a, _ := newTestAllocator(t)

	_, err := a.AllocArray(math.MaxUint, 2)
	require.ErrorIs(t, err, ErrTooLarge)

	if unsafe.Sizeof(uintptr(0)) == 8 {
		big := uint64(math.MaxUint32) + 1
		_, err = a.Alloc(kindString, uintptr(big))
		require.ErrorIs(t, err, ErrTooLarge)
	}

	// Fits the header field but no block: the default classes call it Large.
	_, err = a.Alloc(kindString, format.BlockSize)
	require.ErrorIs(t, err, immix.ErrBadRequest)
}

func TestAllocator_Mark(t *testing.T) {
	a, h := newTestAllocator(t)

	obj, err := a.Alloc(kindPair, 400)
	require.NoError(t, err)
	before := h.Stats().FreeLines

	a.Mark(obj)
	assert.True(t, a.HeaderOf(obj).IsMarked())
	assert.Less(t, h.Stats().FreeLines, before)
}

func TestAllocator_SyncHeap(t *testing.T) {
	s, err := immix.NewSync(immix.Options{HeapBacked: true})
	require.NoError(t, err)
	defer s.Close()

	a := New[kind](s, testProvider{}, immix.ConfigQuarterBlock)
	obj, err := a.Alloc(kindPair, 32)
	require.NoError(t, err)
	a.Mark(obj)
	assert.True(t, a.HeaderOf(obj).IsMarked())
}
