package immix

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"unsafe"
)

// BlockList owns every block a heap has created. A block is in exactly one
// of three roles: the head (primary allocation target), the overflow
// (target for medium objects that do not fit the head's hole) or rest
// (retired, kept for a future collection).
type BlockList struct {
	head     *BumpBlock
	overflow *BumpBlock
	rest     []*BumpBlock

	newBlock func() (*BumpBlock, error)
	log      *slog.Logger

	overflowReplacements int
}

// NewBlockList returns an empty list that creates blocks with newBlock.
// A nil newBlock uses NewBumpBlock; a nil logger discards output.
func NewBlockList(newBlock func() (*BumpBlock, error), logger *slog.Logger) *BlockList {
	if newBlock == nil {
		newBlock = NewBumpBlock
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BlockList{newBlock: newBlock, log: logger}
}

// OverflowAlloc bump-allocates size bytes into the overflow block. A full
// overflow block is retired and replaced; a missing one is created. The
// only error is a failure to create the replacement block, in which case the
// list is unchanged.
func (l *BlockList) OverflowAlloc(size uintptr) (unsafe.Pointer, error) {
	if l.overflow != nil {
		if p, ok := l.overflow.Alloc(size); ok {
			return p, nil
		}
	}

	fresh, err := l.newBlock()
	if err != nil {
		return nil, err
	}
	if l.overflow != nil {
		l.PushToRest(l.overflow)
		l.overflowReplacements++
		l.log.Debug("retired overflow block", "rest", len(l.rest))
	}
	l.overflow = fresh

	p, ok := fresh.Alloc(size)
	if !ok {
		panic(fmt.Sprintf("immix: fresh overflow block cannot hold %d bytes", size))
	}
	return p, nil
}

// PushToRest retires b. It is never used as an allocation target again.
func (l *BlockList) PushToRest(b *BumpBlock) {
	l.rest = append(l.rest, b)
}

// Head returns the head block, or nil before the first allocation.
func (l *BlockList) Head() *BumpBlock {
	return l.head
}

// SetHead installs b as the head block. The previous head, if any, must
// already have been retired.
func (l *BlockList) SetHead(b *BumpBlock) {
	l.head = b
}

// Overflow returns the overflow block, or nil if none has been needed.
func (l *BlockList) Overflow() *BumpBlock {
	return l.overflow
}

// Rest returns the retired blocks, oldest first.
func (l *BlockList) Rest() []*BumpBlock {
	return l.rest
}

// Len returns the number of blocks owned by the list.
func (l *BlockList) Len() int {
	n := len(l.rest)
	if l.head != nil {
		n++
	}
	if l.overflow != nil {
		n++
	}
	return n
}

// All yields the head, the overflow block and then the retired blocks.
func (l *BlockList) All() iter.Seq[*BumpBlock] {
	return func(yield func(*BumpBlock) bool) {
		if l.head != nil && !yield(l.head) {
			return
		}
		if l.overflow != nil && !yield(l.overflow) {
			return
		}
		for _, b := range l.rest {
			if !yield(b) {
				return
			}
		}
	}
}

// Release releases every block once and empties the list.
func (l *BlockList) Release() error {
	var errs []error
	for b := range l.All() {
		if err := b.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	l.head = nil
	l.overflow = nil
	l.rest = nil
	return errors.Join(errs...)
}
