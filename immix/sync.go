package immix

import (
	"iter"
	"slices"
	"sync"
	"unsafe"
)

// SyncHeap is a Heap guarded by a mutex. Every method holds the lock for
// the whole call, so concurrent allocators are serialised and never see a
// block in the middle of a cursor update.
type SyncHeap struct {
	mu   sync.Mutex
	heap *Heap
}

// NewSync creates a heap that is safe for concurrent use.
func NewSync(opts Options) (*SyncHeap, error) {
	h, err := New(opts)
	if err != nil {
		return nil, err
	}
	return &SyncHeap{heap: h}, nil
}

// Alloc is Heap.Alloc under the lock.
func (s *SyncHeap) Alloc(size uintptr, class SizeClass) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Alloc(size, class)
}

// AllocAuto is Heap.AllocAuto under the lock.
func (s *SyncHeap) AllocAuto(size uintptr) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.AllocAuto(size)
}

// MarkObject is Heap.MarkObject under the lock.
func (s *SyncHeap) MarkObject(p unsafe.Pointer, size uintptr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.MarkObject(p, size)
}

// Blocks returns the blocks owned at the time of the call.
func (s *SyncHeap) Blocks() iter.Seq[*BumpBlock] {
	s.mu.Lock()
	blocks := slices.Collect(s.heap.Blocks())
	s.mu.Unlock()
	return slices.Values(blocks)
}

// Stats is Heap.Stats under the lock.
func (s *SyncHeap) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Stats()
}

// With runs fn with exclusive access to the underlying heap, for callers
// that want to batch several operations under one lock acquisition.
func (s *SyncHeap) With(fn func(h *Heap) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.heap)
}

// Close is Heap.Close under the lock.
func (s *SyncHeap) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Close()
}
