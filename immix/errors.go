package immix

import (
	"errors"
	"fmt"

	"github.com/joshuapare/immixkit/internal/block"
)

var (
	// ErrBadRequest indicates a malformed request: a Large object, a size no
	// block can hold, or an invalid configuration.
	ErrBadRequest = errors.New("immix: bad request")

	// ErrOOM indicates that a new block could not be acquired.
	ErrOOM = errors.New("immix: out of memory")

	// ErrClosed indicates use of a heap after Close.
	ErrClosed = errors.New("immix: heap closed")
)

// mapBlockErr translates block acquisition failures into allocator errors,
// keeping the underlying cause in the chain.
func mapBlockErr(err error) error {
	switch {
	case errors.Is(err, block.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	default:
		return fmt.Errorf("%w: %w", ErrOOM, err)
	}
}
