// Package config holds the settings of the hot reload host.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/hotreload/internal/core/observability/log"
)

var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

type Config struct {
	// Debugger
	ListenAddr string `yaml:"listenAddr" toml:"listen_addr"`

	// Exported game
	ManifestPath  string `yaml:"manifestPath" toml:"manifest_path"`
	ScriptRoot    string `yaml:"scriptRoot" toml:"script_root"`
	ScriptBaseURL string `yaml:"scriptBaseURL" toml:"script_base_url"`
	StartScene    string `yaml:"startScene" toml:"start_scene"`

	// Scripts never re-executed, matched by path suffix. Empty means the defaults.
	ExcludedScripts []string `yaml:"excludedScripts" toml:"excluded_scripts"`

	FPS      int    `yaml:"fps" toml:"fps"`
	LogLevel string `yaml:"logLevel" toml:"log_level"`
}

func Default() Config {
	return Config{
		ListenAddr:   "127.0.0.1:3030",
		ManifestPath: "export/manifest.json",
		ScriptRoot:   "export",
		FPS:          60,
		LogLevel:     "info",
	}
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelInfo
	}
	return level
}

func (c Config) Validate() error {
	var problems []string
	if c.ManifestPath == "" {
		problems = append(problems, "manifest path is empty")
	}
	if c.ScriptRoot == "" && c.ScriptBaseURL == "" {
		problems = append(problems, "one of script root or script base URL is required")
	}
	if c.FPS <= 0 {
		problems = append(problems, fmt.Sprintf("fps must be positive, got %d", c.FPS))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Load reads a YAML or TOML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("%w: %s: unknown keys %v", ErrInvalidConfig, path, undecoded)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return cfg, cfg.Validate()
}
