package immix

import "log/slog"

// Options configures a Heap. The zero value is ready to use.
type Options struct {
	// Logger receives debug events for block creation and retirement.
	// Default: discard.
	Logger *slog.Logger

	// SizeClasses drives AllocAuto. Default: DefaultSizeClasses.
	SizeClasses SizeClassConfig

	// MaxBlocks caps the number of blocks the heap may create. Requests
	// that need a block beyond the cap fail with ErrOOM. 0 means unlimited.
	MaxBlocks int

	// HeapBacked takes block memory from the Go heap instead of the
	// platform's anonymous mappings.
	HeapBacked bool
}
