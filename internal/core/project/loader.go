package project

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadJSON loads a manifest from a JSON reader.
func LoadJSON(r io.Reader) (*Manifest, error) {
	return decodeJSON[Manifest](r)
}

// LoadYAML loads a manifest from a YAML reader.
func LoadYAML(r io.Reader) (*Manifest, error) {
	return decodeYAML[Manifest](r)
}

// LoadFile loads a manifest, choosing the format from the file extension.
func LoadFile(path string) (*Manifest, error) {
	return decodeFile[Manifest](path)
}

// LoadProjectFile loads bare project data as saved by the editor.
func LoadProjectFile(path string) (*ProjectData, error) {
	return decodeFile[ProjectData](path)
}

func decodeJSON[T any](r io.Reader) (*T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return &v, nil
}

func decodeYAML[T any](r io.Reader) (*T, error) {
	var v T
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return &v, nil
}

func decodeFile[T any](path string) (*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestNotFound, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML[T](f)
	case ".json", "":
		return decodeJSON[T](f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ManifestSource gives access to the latest exported manifest.
type ManifestSource interface {
	Fetch(ctx context.Context) (*Manifest, error)
}

// FileSource re-reads a manifest file on every fetch.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(s.Path)
}

// StaticSource always returns the same manifest.
type StaticSource struct {
	Manifest *Manifest
}

func (s StaticSource) Fetch(_ context.Context) (*Manifest, error) {
	if s.Manifest == nil {
		return nil, ErrManifestNotFound
	}
	return s.Manifest, nil
}
