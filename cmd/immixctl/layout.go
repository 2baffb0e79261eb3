package main

import (
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/immixkit/internal/format"
)

func init() {
	rootCmd.AddCommand(newLayoutCmd())
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Show block and line geometry",
		Long: `The layout command prints the compile-time block geometry: block and
line sizes, the number of line marks, and where the mark table and the
initial bump cursor sit inside a block.

Example:
  immixctl layout
  immixctl layout --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.OutOrStdout())
		},
	}
}

// Layout describes the block geometry.
type Layout struct {
	BlockSize         int `json:"block_size"`
	LineSize          int `json:"line_size"`
	LineCount         int `json:"line_count"`
	BlockCapacity     int `json:"block_capacity"`
	CursorStartOffset int `json:"cursor_start_offset"`
	DataLines         int `json:"data_lines"`
	WordSize          int `json:"word_size"`
}

func currentLayout() Layout {
	return Layout{
		BlockSize:         format.BlockSize,
		LineSize:          format.LineSize,
		LineCount:         format.LineCount,
		BlockCapacity:     format.BlockCapacity,
		CursorStartOffset: format.CursorStartOffset,
		DataLines:         format.CursorStartOffset / format.LineSize,
		WordSize:          int(format.WordSize),
	}
}

func runLayout(w io.Writer) error {
	l := currentLayout()
	if jsonOut {
		return printJSON(w, l)
	}
	if quiet {
		return nil
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Block size:          %d bytes\n", l.BlockSize)
	p.Fprintf(w, "Line size:           %d bytes\n", l.LineSize)
	p.Fprintf(w, "Line marks:          %d (last one is the block status)\n", l.LineCount)
	p.Fprintf(w, "Mark table offset:   %d\n", l.BlockCapacity)
	p.Fprintf(w, "Cursor start offset: %d\n", l.CursorStartOffset)
	p.Fprintf(w, "Data lines:          %d\n", l.DataLines)
	p.Fprintf(w, "Word size:           %d bytes\n", l.WordSize)
	return nil
}
