package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hotreload/internal/core/hotreload"
	"github.com/zeusync/hotreload/internal/core/project"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func layerManifest(renderingType string) string {
	return `{"projectData": {"properties": {"name": "Demo"}, "layouts": [{"name": "Main",
  "layers": [{"name": "UI", "visibility": true, "renderingType": "` + renderingType + `"}]}]}}`
}

func TestDiffPrintsLogEntries(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.json")
	newPath := filepath.Join(dir, "new.json")
	require.NoError(t, os.WriteFile(oldPath, []byte(layerManifest("2d")), 0o600))
	require.NoError(t, os.WriteFile(newPath, []byte(layerManifest("3d")), 0o600))

	out, err := execute(t, "diff", "--log-level", "silent", oldPath, newPath)
	require.NoError(t, err)
	var entries []hotreload.LogEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, hotreload.KindError, entries[0].Kind)
	assert.Contains(t, entries[0].Message, "UI")

	_, err = execute(t, "diff", "--log-level", "silent", "--fail-on-error", oldPath, newPath)
	assert.ErrorIs(t, err, errReloadFailed)
	flagFailOnError = false
}

func TestManifestCommand(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "export")
	require.NoError(t, os.MkdirAll(export, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(export, "game.js"), []byte("game"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(export, "code0.js"), []byte("events"), 0o600))
	projectPath := filepath.Join(dir, "project.json")
	require.NoError(t, os.WriteFile(projectPath, []byte(`{"properties": {"name": "Demo"},
  "layouts": [{"name": "Main", "instances": [{"name": "Hero"}]}]}`), 0o600))

	out := filepath.Join(dir, "manifest.yaml")
	_, err := execute(t, "manifest", "--out", out, projectPath, export)
	require.NoError(t, err)
	flagOut = ""

	m, err := project.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"code0.js"}, m.EventsCodeFiles)
	require.Len(t, m.ScriptFiles, 1)
	assert.Equal(t, "game.js", m.ScriptFiles[0].Path)
	assert.NotEmpty(t, m.ProjectData.Layouts[0].Instances[0].PersistentUUID)
	assert.False(t, strings.Contains(m.ScriptFiles[0].Hash, " "))
}
