package block

import "errors"

var (
	// ErrBadRequest indicates a size that is not a power of two or cannot be represented.
	ErrBadRequest = errors.New("block: bad request")

	// ErrOOM indicates the system could not supply the requested region.
	ErrOOM = errors.New("block: out of memory")
)
