package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hotreload/internal/core/observability/log"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.Equal(t, log.LevelInfo, Default().Level())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "hotreload.yaml", `
listenAddr: ":4000"
manifestPath: build/manifest.yaml
scriptBaseURL: http://localhost:8080
excludedScripts: [".h.js", "physics.js"]
logLevel: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.ListenAddr)
	assert.Equal(t, "build/manifest.yaml", cfg.ManifestPath)
	assert.Equal(t, "http://localhost:8080", cfg.ScriptBaseURL)
	assert.Equal(t, []string{".h.js", "physics.js"}, cfg.ExcludedScripts)
	assert.Equal(t, 60, cfg.FPS, "defaults are kept")
	assert.Equal(t, log.LevelDebug, cfg.Level())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "hotreload.toml", `
listen_addr = ":4001"
manifest_path = "out/manifest.json"
script_root = "out"
start_scene = "Menu"
fps = 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":4001", cfg.ListenAddr)
	assert.Equal(t, "out", cfg.ScriptRoot)
	assert.Equal(t, "Menu", cfg.StartScene)
	assert.Equal(t, 30, cfg.FPS)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"unknown yaml key", "c.yaml", "listenAdr: x\n", ErrInvalidConfig},
		{"unknown toml key", "c.toml", "listen_adr = \"x\"\n", ErrInvalidConfig},
		{"bad fps", "c.yaml", "fps: 0\n", ErrInvalidConfig},
		{"bad level", "c.toml", "log_level = \"loud\"\n", ErrInvalidConfig},
		{"no scripts", "c.yaml", "scriptRoot: \"\"\n", ErrInvalidConfig},
		{"format", "c.ini", "", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
