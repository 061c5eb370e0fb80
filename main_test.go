package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connroute/core"
	"connroute/export"
	"connroute/scene"
	"connroute/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stackedScene = `{
  "shapes": [
    {"id": "a", "x": 0, "y": 0, "width": 100, "height": 40},
    {"id": "b", "x": 0, "y": 120, "width": 100, "height": 40}
  ],
  "connectors": [
    {"id": "ab", "fromId": "a", "toId": "b", "lineType": "straight"}
  ]
}`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunTextToStdout(t *testing.T) {
	out, _, err := runCLI(t, writeScene(t, stackedScene))
	require.NoError(t, err)
	assert.Contains(t, out, "└────┬────┘")
	assert.Contains(t, out, "▼")
	assert.Contains(t, out, "┌────┴────┐")
}

func TestRunASCIIVerified(t *testing.T) {
	out, _, err := runCLI(t, "-ascii", "-verify", writeScene(t, stackedScene))
	require.NoError(t, err)
	assert.Contains(t, out, "+----+----+")
	assert.NotContains(t, out, "│")
}

func TestRunWritesFileByExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.svg")

	_, stderr, err := runCLI(t, "-o", target, writeScene(t, stackedScene))
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
	assert.Contains(t, stderr, "wrote "+target)
	assert.Contains(t, stderr, "1 straight")
}

func TestRunExplicitFormatWins(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.svg")
	_, _, err := runCLI(t, "-format", "json", "-o", target, writeScene(t, stackedScene))
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))
}

func TestRunBinaryNeedsOutputFile(t *testing.T) {
	_, _, err := runCLI(t, "-format", "png", writeScene(t, stackedScene))
	assert.ErrorContains(t, err, "use -o")
}

func TestRunValidate(t *testing.T) {
	_, stderr, err := runCLI(t, "-validate", writeScene(t, stackedScene))
	require.NoError(t, err)
	assert.Contains(t, stderr, "valid")

	broken := strings.Replace(stackedScene, `"toId": "b"`, `"toId": "zz"`, 1)
	_, stderr, err = runCLI(t, "-validate", writeScene(t, broken))
	assert.ErrorIs(t, err, validation.ErrInvalidScene)
	assert.Contains(t, stderr, "connectors[0].toId")
}

func TestRunCopy(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	_, _, err := runCLI(t, "-copy", writeScene(t, stackedScene))
	require.NoError(t, err)
	assert.Equal(t, "M 50 40 L 50 120", copied)
}

func TestRunPin(t *testing.T) {
	noIDs := strings.Replace(stackedScene, `"id": "ab", `, "", 1)
	path := writeScene(t, noIDs)

	_, _, err := runCLI(t, "-pin", "-o", filepath.Join(t.TempDir(), "out.txt"), path)
	require.NoError(t, err)

	s, err := scene.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, s.Connectors, 1)
	c := s.Connectors[0]
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, core.PortBottom, c.FromPort)
	assert.Equal(t, core.PortTop, c.ToPort)
}

func TestRunSnapshotInput(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "scene.snap")
	_, _, err := runCLI(t, "-o", snap, writeScene(t, stackedScene))
	require.NoError(t, err)

	out, _, err := runCLI(t, snap)
	require.NoError(t, err)
	assert.Contains(t, out, "┌────┴────┐")

	_, _, err = runCLI(t, "-pin", snap)
	assert.ErrorContains(t, err, "-pin")
}

func TestRunFlagOverrides(t *testing.T) {
	_, _, err := runCLI(t, "-radius", "-4", writeScene(t, stackedScene))
	assert.ErrorContains(t, err, "BaseRadius")
}

func TestRunNoSnap(t *testing.T) {
	path := writeScene(t, `{"connectors": [
	  {"id": "c", "x": 0, "y": 0, "endX": 200, "endY": 200, "lineType": "step", "offsetY": 95}
	]}`)
	points := func(args ...string) int {
		out, _, err := runCLI(t, append(args, "-format", "json", path)...)
		require.NoError(t, err)
		var doc export.Document
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		require.Len(t, doc.Paths, 1)
		return len(doc.Paths[0].Points)
	}

	assert.Equal(t, 3, points())
	assert.Equal(t, 5, points("-no-snap"))
}

func TestRunUsage(t *testing.T) {
	_, stderr, err := runCLI(t)
	assert.Error(t, err)
	assert.Contains(t, stderr, "Usage: connroute")
}
