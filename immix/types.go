package immix

import "fmt"

// SizeClass routes an allocation request to an allocation strategy.
type SizeClass uint8

const (
	// Small objects fit within a line and always go to the head block.
	Small SizeClass = iota
	// Medium objects span lines and may be routed to the overflow block.
	Medium
	// Large objects would need a large object space and are rejected.
	Large
)

func (c SizeClass) String() string {
	switch c {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return fmt.Sprintf("SizeClass(%d)", uint8(c))
	}
}

// MarkState is the value of one byte in a block's line-mark table.
type MarkState uint8

const (
	// Unmarked lines are free for allocation.
	Unmarked MarkState = 0
	// TrueMarked lines hold live data.
	TrueMarked MarkState = 1
	// ConservMarked lines hold the start of a small live object that may
	// extend into the following line.
	ConservMarked MarkState = 2
)

func (s MarkState) String() string {
	switch s {
	case Unmarked:
		return "unmarked"
	case TrueMarked:
		return "marked"
	case ConservMarked:
		return "conservative"
	default:
		return fmt.Sprintf("MarkState(%d)", uint8(s))
	}
}
