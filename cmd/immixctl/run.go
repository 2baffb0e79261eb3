package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/immixkit/immix"
)

// workload configures a synthetic allocation run.
type workload struct {
	Count      int
	MinSize    int
	MaxSize    int
	Seed       uint64
	MarkEvery  int
	MaxBlocks  int
	HeapBacked bool
	Classes    string
}

var runFlags = workload{
	Count:   100000,
	MinSize: 8,
	MaxSize: 256,
	Seed:    1,
	Classes: "line",
}

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVarP(&runFlags.Count, "count", "n", runFlags.Count, "Number of allocations")
	cmd.Flags().IntVar(&runFlags.MinSize, "min", runFlags.MinSize, "Minimum allocation size in bytes")
	cmd.Flags().IntVar(&runFlags.MaxSize, "max", runFlags.MaxSize, "Maximum allocation size in bytes")
	cmd.Flags().Uint64Var(&runFlags.Seed, "seed", runFlags.Seed, "Random seed")
	cmd.Flags().IntVar(&runFlags.MarkEvery, "mark-every", 0, "Mark every Nth object's lines (0 = never)")
	cmd.Flags().IntVar(&runFlags.MaxBlocks, "max-blocks", 0, "Cap on blocks created (0 = unlimited)")
	cmd.Flags().BoolVar(&runFlags.HeapBacked, "heap-backed", false, "Take block memory from the Go heap")
	cmd.Flags().StringVar(&runFlags.Classes, "classes", runFlags.Classes, "Size class config: line or quarter")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a synthetic allocation workload",
		Long: `The run command allocates --count objects with sizes drawn uniformly from
[--min, --max], classifying each request by size, and prints heap statistics.

Example:
  immixctl run
  immixctl run --count 1000000 --min 16 --max 4096 --mark-every 10
  immixctl run --max-blocks 4 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runWorkload(runFlags)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}
}

// result is the outcome of a workload run.
type result struct {
	Config   string      `json:"config"`
	Failed   int         `json:"failed"`
	LastErr  string      `json:"last_error,omitempty"`
	Stats    immix.Stats `json:"stats"`
	Marked   int         `json:"marked"`
	Requests int         `json:"requests"`
}

func sizeClasses(name string) (immix.SizeClassConfig, error) {
	switch strings.ToLower(name) {
	case "line", "":
		return immix.ConfigLine, nil
	case "quarter":
		return immix.ConfigQuarterBlock, nil
	default:
		return immix.SizeClassConfig{}, fmt.Errorf("unknown size class config %q (want line or quarter)", name)
	}
}

func runWorkload(w workload) (result, error) {
	if w.Count < 0 || w.MinSize <= 0 || w.MaxSize < w.MinSize {
		return result{}, fmt.Errorf("invalid workload: count=%d min=%d max=%d", w.Count, w.MinSize, w.MaxSize)
	}
	classes, err := sizeClasses(w.Classes)
	if err != nil {
		return result{}, err
	}

	h, err := immix.NewSync(immix.Options{
		Logger:      logger,
		SizeClasses: classes,
		MaxBlocks:   w.MaxBlocks,
		HeapBacked:  w.HeapBacked,
	})
	if err != nil {
		return result{}, err
	}
	defer h.Close()

	res := result{Config: classes.Name, Requests: w.Count}
	rng := rand.New(rand.NewPCG(w.Seed, w.Seed^0x9e3779b97f4a7c15))
	for i := range w.Count {
		size := uintptr(w.MinSize + rng.IntN(w.MaxSize-w.MinSize+1))
		p, err := h.AllocAuto(size)
		if err != nil {
			res.Failed++
			res.LastErr = err.Error()
			logger.Debug("allocation failed", "size", size, "err", err)
			continue
		}
		if w.MarkEvery > 0 && i%w.MarkEvery == 0 && h.MarkObject(p, size) {
			res.Marked++
		}
	}
	res.Stats = h.Stats()
	return res, nil
}

func printResult(w io.Writer, res result) error {
	if jsonOut {
		return printJSON(w, res)
	}
	if quiet {
		return nil
	}
	s := res.Stats
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Size classes:          %s\n", res.Config)
	p.Fprintf(w, "Requests:              %d\n", res.Requests)
	p.Fprintf(w, "Allocations:           %d\n", s.Allocations)
	p.Fprintf(w, "Failed:                %d\n", res.Failed)
	p.Fprintf(w, "Bytes requested:       %d\n", s.BytesRequested)
	p.Fprintf(w, "Blocks created:        %d\n", s.BlocksCreated)
	p.Fprintf(w, "Blocks retired:        %d\n", s.RetiredBlocks)
	p.Fprintf(w, "Head replacements:     %d\n", s.HeadReplacements)
	p.Fprintf(w, "Overflow allocations:  %d\n", s.OverflowAllocations)
	p.Fprintf(w, "Overflow replacements: %d\n", s.OverflowReplacements)
	p.Fprintf(w, "Holes found:           %d\n", s.HolesFound)
	p.Fprintf(w, "Objects marked:        %d\n", res.Marked)
	p.Fprintf(w, "Free lines:            %d\n", s.FreeLines)
	if res.LastErr != "" {
		p.Fprintf(w, "Last error:            %s\n", res.LastErr)
	}
	return nil
}
