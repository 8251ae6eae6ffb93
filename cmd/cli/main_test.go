package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A catalogue with a syntax error makes app.NewApp panic while loading.
	dir := t.TempDir()
	catalogue := writeFile(t, dir, "broken.hcl", `
		node "Mach" {
			dependencies = ["Airspeed"
	`)
	rec := writeFile(t, dir, "rec.yaml", "parameters: [Airspeed]\n")
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, io.Discard, []string{"-c", catalogue, rec})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_Plans(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	catalogue := writeFile(t, dir, "flight.hcl", `
		node "Mach" {
			dependencies = ["Airspeed", "Altitude STD"]
		}
	`)
	rec := writeFile(t, dir, "flight-7.yaml", "parameters: [Airspeed, Altitude STD]\n")
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, io.Discard, []string{"-c", catalogue, "-format", "text", rec})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Recording flight-7")
	require.Contains(t, out.String(), "order: Airspeed -> Altitude STD -> Mach")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, io.Discard, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, io.Discard, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
