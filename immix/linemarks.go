package immix

import (
	"unsafe"

	"github.com/joshuapare/immixkit/internal/format"
)

// dataLines is the number of lines below CursorStartOffset, i.e. the lines
// that can actually hold objects. The mark table has entries past this point
// that cover the table itself and the block status byte.
const dataLines = format.CursorStartOffset / format.LineSize

// LineMarks is the line-mark table stored at the tail of a block.
// It is a view into the block's own memory, not a separate allocation.
type LineMarks struct {
	lines []byte
}

// newLineMarks builds the table for the block starting at base and resets it.
func newLineMarks(base unsafe.Pointer) LineMarks {
	m := LineMarks{
		lines: unsafe.Slice((*byte)(unsafe.Add(base, format.BlockCapacity)), format.LineCount),
	}
	m.Reset()
	return m
}

// MarkLine records state for a line. Valid lines are 0 through
// LineCount-2; the final entry is the block status byte and is only written
// through MarkBlockStatus. Returns false for an out-of-range line.
func (m *LineMarks) MarkLine(line int, state MarkState) bool {
	if line < 0 || line >= format.BlockStatusIndex {
		return false
	}
	m.lines[line] = byte(state)
	return true
}

// MarkBlockStatus records state in the block status byte.
func (m *LineMarks) MarkBlockStatus(state MarkState) bool {
	m.lines[format.BlockStatusIndex] = byte(state)
	return true
}

// Marked returns the raw mark byte of line. The line must be in range.
func (m *LineMarks) Marked(line int) byte {
	return m.lines[line]
}

// IsMarked reports whether line carries any mark.
func (m *LineMarks) IsMarked(line int) bool {
	return m.lines[line] != byte(Unmarked)
}

// Reset sets every entry, the block status byte included, to Unmarked.
func (m *LineMarks) Reset() {
	clear(m.lines)
}

// FreeLines counts the unmarked data lines.
func (m *LineMarks) FreeLines() int {
	n := 0
	for _, v := range m.lines[:dataLines] {
		if v == byte(Unmarked) {
			n++
		}
	}
	return n
}

// FindNextHole searches downward from startOffset for a run of unmarked
// lines that can hold allocSize bytes. It returns the hole as block-relative
// offsets, cursor first and limit second.
//
// A run that reaches line 0 qualifies when it has at least the required
// number of lines. A run that ends at a marked line must be strictly longer
// than required, and its limit is placed one line above the marked line:
// the line adjacent to a mark may still hold the tail of a small object.
func (m *LineMarks) FindNextHole(startOffset, allocSize uintptr) (cursor, limit uintptr, ok bool) {
	startLine := int(format.LineOf(startOffset))
	if startLine > format.BlockStatusIndex {
		startLine = format.BlockStatusIndex
	}
	required := int(format.LinesFor(allocSize))

	count := 0
	end := startLine
	for i := startLine - 1; i >= 0; i-- {
		if m.lines[i] == byte(Unmarked) {
			count++
			if i == 0 && count >= required {
				return uintptr(end) * format.LineSize, 0, true
			}
			continue
		}

		if count > required {
			return uintptr(end) * format.LineSize, uintptr(i+2) * format.LineSize, true
		}
		count = 0
		end = i
	}
	return 0, 0, false
}
