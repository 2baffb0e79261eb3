package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores global flag state after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	saved := runFlags
	t.Cleanup(func() {
		runFlags = saved
		jsonOut, quiet, verbose = false, false, false
	})
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunWorkload(t *testing.T) {
	res, err := runWorkload(workload{Count: 5000, MinSize: 8, MaxSize: 512, Seed: 3, MarkEvery: 7, Classes: "line"})
	require.NoError(t, err)

	assert.Equal(t, "Line", res.Config)
	assert.Zero(t, res.Failed)
	assert.Equal(t, uint64(5000), res.Stats.Allocations)
	assert.Positive(t, res.Stats.BlocksCreated)
	assert.Positive(t, res.Marked)
	assert.Equal(t, res.Stats.BlocksCreated, res.Stats.LiveBlocks)
}

func TestRunWorkload_MaxBlocks(t *testing.T) {
	res, err := runWorkload(workload{Count: 2000, MinSize: 64, MaxSize: 64, Seed: 1, MaxBlocks: 1, Classes: "line"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.BlocksCreated)
	assert.Equal(t, uint64(508), res.Stats.Allocations, "one block holds 508 objects of 64 bytes")
	assert.Equal(t, 2000-508, res.Failed)
	assert.Contains(t, res.LastErr, "out of memory")
}

func TestRunWorkload_Invalid(t *testing.T) {
	_, err := runWorkload(workload{Count: 1, MinSize: 0, MaxSize: 8})
	require.Error(t, err)
	_, err = runWorkload(workload{Count: 1, MinSize: 16, MaxSize: 8})
	require.Error(t, err)
	_, err = runWorkload(workload{Count: 1, MinSize: 8, MaxSize: 8, Classes: "huge"})
	require.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	out, err := runCLI(t, "run", "--count", "3000", "--min", "16", "--max", "2048")
	require.NoError(t, err)
	assert.Contains(t, out, "Allocations:           3,000")
	assert.Contains(t, out, "Blocks created:")
}

func TestRunCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "run", "--count", "100", "--json", "--classes", "quarter")
	require.NoError(t, err)

	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "QuarterBlock", res.Config)
	assert.Equal(t, uint64(100), res.Stats.Allocations)
}

func TestLayoutCommand(t *testing.T) {
	out, err := runCLI(t, "layout")
	require.NoError(t, err)
	assert.Contains(t, out, "Block size:          32,768 bytes")
	assert.Contains(t, out, "Cursor start offset: 32,512")
	assert.Contains(t, out, "Data lines:          254")
}

func TestLayoutCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "layout", "--json")
	require.NoError(t, err)

	var l Layout
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.Equal(t, currentLayout(), l)
}
