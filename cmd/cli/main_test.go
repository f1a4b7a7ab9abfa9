package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/recordrt/internal/testutil"
)

func TestRun_PrintsRecords(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	content := `
record "pair" {
  positional = [1, "hi"]
}

record "labeled" {
  positional = [1]
  named = { b = 2 }
}
`
	filePath := testutil.WriteFile(t, "main.hcl", content)
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{"--check-keys", filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, "pair = (1, hi)\nlabeled = (1, b: 2)\n", out.String())
	require.Contains(t, logs.String(), "Records built.")
}

func TestRun_SafeMode(t *testing.T) {
	t.Parallel()

	filePath := testutil.WriteFile(t, "main.hcl", `record "p" { positional = [1] }`)
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, []string{"--mode", "safe", filePath})

	require.NoError(t, err)
	require.Equal(t, "p = Record (1)\n", out.String())
}

func TestRun_InvalidHCL(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		record "broken" {
			positional = [1,
	`
	filePath := testutil.WriteFile(t, "main.hcl", invalidHCL)

	// --- Act ---
	runErr := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filePath})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to parse HCL file")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
