// Package object lays typed objects out in an immix heap.
//
// The allocator core knows nothing about object headers. The host runtime
// supplies a Provider that knows its header encoding (type identifier, size,
// size class, mark), and this package calls through it: every object is
// allocated as a word-aligned header followed by the payload, and the
// pointer handed back to the host is the payload start.
//
//	| header (HeaderSize, word aligned) | payload ... |
//	^ HeaderAddr(obj)                   ^ obj
package object

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/joshuapare/immixkit/immix"
	"github.com/joshuapare/immixkit/internal/buf"
	"github.com/joshuapare/immixkit/internal/format"
)

// TypeID is the host's per-type tag. Any comparable value will do.
type TypeID interface {
	comparable
}

// Header is a view of one object header.
type Header[T TypeID] interface {
	// Mark sets the header's mark state to marked.
	Mark()
	IsMarked() bool
	SizeClass() immix.SizeClass
	// Size is the payload size in bytes, header excluded.
	Size() uint32
	TypeID() T
}

// Provider encodes and decodes headers for the host runtime.
type Provider[T TypeID] interface {
	// HeaderSize is the encoded header size in bytes.
	HeaderSize() uintptr
	// InitObject writes the header of a typed object at the given address.
	InitObject(at unsafe.Pointer, id T, size uint32, class immix.SizeClass, mark immix.MarkState)
	// InitArray writes the header of an untyped byte array.
	InitArray(at unsafe.Pointer, size uint32, class immix.SizeClass, mark immix.MarkState)
	// Header returns a view of the header at the given address.
	Header(at unsafe.Pointer) Header[T]
}

// Allocer is the raw allocation entry point; *immix.Heap and
// *immix.SyncHeap both satisfy it.
type Allocer interface {
	Alloc(size uintptr, class immix.SizeClass) (unsafe.Pointer, error)
}

// marker is implemented by heaps that expose line marking.
type marker interface {
	MarkObject(p unsafe.Pointer, size uintptr) bool
}

// ErrTooLarge indicates a payload whose size does not fit a 32-bit header field.
var ErrTooLarge = errors.New("object: payload too large")

// Allocator allocates header-prefixed objects from a heap.
type Allocator[T TypeID] struct {
	heap     Allocer
	provider Provider[T]
	classes  immix.SizeClassConfig
	hdr      uintptr
}

// New returns an allocator that classifies objects by their total size with
// classes. A zero classes uses immix.DefaultSizeClasses.
func New[T TypeID](heap Allocer, provider Provider[T], classes immix.SizeClassConfig) *Allocator[T] {
	if classes == (immix.SizeClassConfig{}) {
		classes = immix.DefaultSizeClasses
	}
	return &Allocator[T]{
		heap:     heap,
		provider: provider,
		classes:  classes,
		hdr:      format.AlignUpWord(provider.HeaderSize()),
	}
}

// Alloc allocates an object of type id with a payload of size bytes and
// returns the payload address. The header starts out unmarked.
func (a *Allocator[T]) Alloc(id T, size uintptr) (unsafe.Pointer, error) {
	total, class, err := a.layout(size)
	if err != nil {
		return nil, err
	}
	p, err := a.heap.Alloc(total, class)
	if err != nil {
		return nil, err
	}
	a.provider.InitObject(p, id, uint32(size), class, immix.Unmarked)
	return unsafe.Add(p, a.hdr), nil
}

// AllocArray allocates an array of count elements of elemSize bytes.
func (a *Allocator[T]) AllocArray(count, elemSize uintptr) (unsafe.Pointer, error) {
	if _, err := buf.ArraySize(a.hdr, count, elemSize); err != nil {
		return nil, fmt.Errorf("%w: array: %w", ErrTooLarge, err)
	}
	size := count * elemSize
	total, class, err := a.layout(size)
	if err != nil {
		return nil, err
	}
	p, err := a.heap.Alloc(total, class)
	if err != nil {
		return nil, err
	}
	a.provider.InitArray(p, uint32(size), class, immix.Unmarked)
	return unsafe.Add(p, a.hdr), nil
}

func (a *Allocator[T]) layout(size uintptr) (uintptr, immix.SizeClass, error) {
	if !buf.FitsUint32(size) {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	total, ok := buf.AddSize(a.hdr, size)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d bytes plus header", ErrTooLarge, size)
	}
	return total, a.classes.ClassFor(total), nil
}

// HeaderAddr returns the header address of the object at obj.
func (a *Allocator[T]) HeaderAddr(obj unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(obj, -int(a.hdr))
}

// HeaderOf returns the header of the object at obj.
func (a *Allocator[T]) HeaderOf(obj unsafe.Pointer) Header[T] {
	return a.provider.Header(a.HeaderAddr(obj))
}

// ObjectOf returns the payload address for the header at hdr.
func (a *Allocator[T]) ObjectOf(hdr unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(hdr, a.hdr)
}

// Mark marks the object's header and, when the heap supports it, the lines
// the object occupies.
func (a *Allocator[T]) Mark(obj unsafe.Pointer) {
	h := a.HeaderOf(obj)
	h.Mark()
	if m, ok := a.heap.(marker); ok {
		m.MarkObject(a.HeaderAddr(obj), a.hdr+uintptr(h.Size()))
	}
}
