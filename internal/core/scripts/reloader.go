package scripts

import (
	"context"
	"strings"
	"sync"

	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/observability/log"
)

// DefaultExclusions are path suffixes never re-executed: header files leaking
// from the native bridge, and libraries that corrupt global state when run twice.
var DefaultExclusions = []string{
	".h.js",
	"box2d.js",
	"crc32.js",
	"shifty.js",
}

// Executor runs the content of a code module.
type Executor interface {
	Execute(ctx context.Context, path string, src []byte) error
}

// Module re-registers the constructors a code module defines.
type Module func(reg *engine.Registry) error

// ModuleTable executes modules by running the registration function known for
// their path against a registry, which is what re-executing their code does.
type ModuleTable struct {
	mu       sync.RWMutex
	registry *engine.Registry
	modules  map[string]Module
	fallback Module
}

func NewModuleTable(reg *engine.Registry) *ModuleTable {
	return &ModuleTable{registry: reg, modules: make(map[string]Module)}
}

func (t *ModuleTable) Define(path string, m Module) {
	t.mu.Lock()
	t.modules[path] = m
	t.mu.Unlock()
}

// SetFallback sets the module run for paths without their own definition.
func (t *ModuleTable) SetFallback(m Module) {
	t.mu.Lock()
	t.fallback = m
	t.mu.Unlock()
}

// NoopModule registers nothing.
func NoopModule(*engine.Registry) error { return nil }

func (t *ModuleTable) Execute(ctx context.Context, path string, _ []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.RLock()
	m, ok := t.modules[path]
	if !ok {
		m = t.fallback
	}
	t.mu.RUnlock()
	if m == nil {
		return ErrModuleNotFound
	}
	return m(t.registry)
}

// Reloader fetches and re-executes code modules.
type Reloader struct {
	fetcher    Fetcher
	executor   Executor
	exclusions []string
	logger     log.Log
}

type Option func(*Reloader)

func WithExclusions(suffixes []string) Option {
	return func(r *Reloader) { r.exclusions = suffixes }
}

func WithLogger(l log.Log) Option {
	return func(r *Reloader) { r.logger = l }
}

func NewReloader(fetcher Fetcher, executor Executor, opts ...Option) *Reloader {
	r := &Reloader{
		fetcher:    fetcher,
		executor:   executor,
		exclusions: DefaultExclusions,
		logger:     log.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ready fails when modules cannot be injected at all.
func (r *Reloader) Ready() error {
	if r == nil || r.fetcher == nil || r.executor == nil {
		return ErrNoAttachmentPoint
	}
	return nil
}

// CanReload reports whether path may be re-executed.
func (r *Reloader) CanReload(path string) bool {
	for _, suffix := range r.exclusions {
		if strings.HasSuffix(path, suffix) {
			return false
		}
	}
	return true
}

// Reload fetches and executes path. Excluded paths are skipped without error.
func (r *Reloader) Reload(ctx context.Context, path string) error {
	if !r.CanReload(path) {
		r.logger.Info("not reloading excluded script", log.String("path", path))
		return nil
	}
	src, err := r.fetcher.Fetch(ctx, path)
	if err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	if err = r.executor.Execute(ctx, path, src); err != nil {
		return &ScriptError{Path: path, Err: err}
	}
	r.logger.Debug("script reloaded", log.String("path", path), log.Int("bytes", len(src)))
	return nil
}
