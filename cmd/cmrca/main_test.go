package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRunPrintsFinalGeneration(t *testing.T) {
	out, _, err := execute(t, "run", "shifter", "--steps", "2", "--set", "cols=8")
	require.NoError(t, err)
	assert.Equal(t, "gen 2\n00110100\n", out)
}

func TestRunTrace(t *testing.T) {
	out, _, err := execute(t, "run", "sierpinski", "-n", "2", "--trace", "--set", "cols=5")
	require.NoError(t, err)
	assert.Equal(t, "gen 0\n00100\ngen 1\n01010\ngen 2\n10001\n", out)
}

func TestRunLogsDroppedRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"rows": 1, "cols": 3, "states": 2, "rules": ["12", "1200001"]}`), 0o644))

	out, logs, err := execute(t, "run", path, "-n", "1", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, "gen 1\n001\n", out)
	assert.Contains(t, logs, `"msg":"template entry replaced"`)
	assert.Contains(t, logs, "rules[0]")
}

func TestRunUnknownSource(t *testing.T) {
	_, _, err := execute(t, "run", "nowhere.yaml")
	assert.Error(t, err)
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := execute(t, "presets", "--log-level", "shout")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	frame := filepath.Join(dir, "frame.png")
	_, _, err := execute(t, "export", "diamond", "-n", "3", "-o", frame, "--set", "rows=9,cols=9", "--scale", "2")
	require.NoError(t, err)
	info, err := os.Stat(frame)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	diagram := filepath.Join(dir, "tri.png")
	_, _, err = execute(t, "export", "sierpinski", "-n", "8", "-o", diagram, "--spacetime")
	require.NoError(t, err)

	_, _, err = execute(t, "export", "diamond", "-n", "1", "-o", filepath.Join(dir, "x.png"), "--spacetime")
	assert.Error(t, err)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "batch", "shifter", "diamond", "--steps", "3", "--workers", "2", "--out-dir", dir, "--set", "rows=1,cols=12")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "shifter"))
	assert.True(t, strings.HasPrefix(lines[2], "diamond"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, _, err = execute(t, "batch", "shifter", "missing.yaml")
	assert.ErrorContains(t, err, "1 of 2 jobs failed")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("rows: 3\ncols: 3\nstates: 2\nrules: [\"00001200000\", \"0\"]\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("rows: 0\ncols: 3\nstates: 2\n"), 0o644))

	out, _, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "good 3x3, 2 states, 2 rules, 1 warnings")
	assert.Contains(t, out, "rules[1]")

	out, _, err = execute(t, "validate", good, bad)
	assert.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "invalid template")
}

func TestPresetsList(t *testing.T) {
	out, _, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range []string{"brain", "diamond", "shifter", "sierpinski"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "1x48")
}
