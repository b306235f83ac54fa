package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildReasonerDefaults(t *testing.T) {
	r, err := buildReasoner(context.Background(), "", "", "")
	require.NoError(t, err)
	defer r.Close()
	assert.Zero(t, r.Pending())
}

func TestBuildReasonerBadSeed(t *testing.T) {
	dir := t.TempDir()
	seed := writeFile(t, dir, "seed.nal", "(a-->b).\n(a-->\n")
	_, err := buildReasoner(context.Background(), "", seed, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestBuildReasonerBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "nars.yaml", "buffer_capacity: 0\n")
	_, err := buildReasoner(context.Background(), cfg, "", "")
	assert.Error(t, err)
}

func TestRunAndJournal(t *testing.T) {
	dir := t.TempDir()
	seed := writeFile(t, dir, "seed.nal", "(a-->b). %1;0.9%\n(b-->c). %1;0.9%\n")
	db := filepath.Join(dir, "journal.db")

	out, err := execRoot(t, "", "run", "--seed", seed, "--db", db, "-n", "4", "--ask", "(a-->c)")
	require.NoError(t, err)
	assert.Contains(t, out, "4 cycles")
	assert.Contains(t, out, "(a-->c). %1;0.81")
	assert.Contains(t, out, "[deduction]")

	runID := strings.TrimSuffix(strings.Fields(out)[1], ":")
	require.Len(t, runID, 26)

	out, err = execRoot(t, "", "journal", runID, "--db", db, "--rule", "deduction")
	require.NoError(t, err)
	assert.Contains(t, out, "(a-->c).")
	assert.NotContains(t, out, "input")

	out, err = execRoot(t, "", "journal", "01NOSUCHRUN0000000000000000", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")
}

func TestJournalRequiresDB(t *testing.T) {
	_, err := execRoot(t, "", "journal", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db required")
}

func TestShell(t *testing.T) {
	input := strings.Join([]string{
		"# comment",
		"(SELF-->^go)! %1;0.9%",
		":act (SELF-->^go)",
		":c",
		":act (SELF-->^go)",
		":ask (x-->y)",
		"(broken",
		":c zero",
		":nope",
		"exit",
		"(never-->read).",
	}, "\n")

	out, err := execRoot(t, input, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "(SELF-->^go): 0.000")
	assert.Contains(t, out, "cycle 1, 0 pending")
	assert.Contains(t, out, "(SELF-->^go): 0.900")
	assert.Contains(t, out, "(x-->y): no belief")
	assert.Contains(t, out, "Error: malformed sentence")
	assert.Contains(t, out, `bad cycle count "zero"`)
	assert.Contains(t, out, "unknown command :nope")
}
