package immix

import "github.com/joshuapare/immixkit/internal/format"

// SizeClassConfig defines the size thresholds used by Heap.AllocAuto.
type SizeClassConfig struct {
	// Name for this configuration (for benchmarking)
	Name string

	// SmallMax is the largest size classified as Small.
	SmallMax uintptr

	// MediumMax is the largest size classified as Medium. Anything larger
	// is Large.
	MediumMax uintptr
}

// Predefined configurations.
var (
	// ConfigLine: objects up to one line are small, anything a block can
	// hold is medium.
	ConfigLine = SizeClassConfig{
		Name:      "Line",
		SmallMax:  format.LineSize,
		MediumMax: format.CursorStartOffset,
	}

	// ConfigQuarterBlock caps medium objects at a quarter block, so larger
	// requests are rejected as Large instead of fragmenting the overflow block.
	ConfigQuarterBlock = SizeClassConfig{
		Name:      "QuarterBlock",
		SmallMax:  format.LineSize,
		MediumMax: format.BlockSize / 4,
	}

	// DefaultSizeClasses is used when Options.SizeClasses is zero.
	DefaultSizeClasses = ConfigLine
)

// ClassFor returns the size class for a request of size bytes.
func (c SizeClassConfig) ClassFor(size uintptr) SizeClass {
	switch {
	case size <= c.SmallMax:
		return Small
	case size <= c.MediumMax:
		return Medium
	default:
		return Large
	}
}

// String returns the configuration name.
func (c SizeClassConfig) String() string {
	return c.Name
}

func (c SizeClassConfig) valid() bool {
	return c.SmallMax > 0 && c.SmallMax <= c.MediumMax && c.MediumMax <= format.CursorStartOffset
}
