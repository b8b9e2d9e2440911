package hotreload

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/events/bus"
	"github.com/zeusync/hotreload/internal/core/observability/log"
	"github.com/zeusync/hotreload/internal/core/project"
)

const (
	EventStarted  = "hotreload.started"
	EventFinished = "hotreload.finished"

	eventSource = "hotreload"
)

// Report is the payload of the lifecycle events. Logs is only set when finished.
type Report struct {
	RunID string     `json:"runId"`
	Logs  []LogEntry `json:"logs,omitempty"`
}

// ScriptLoader re-executes code modules of the running game.
type ScriptLoader interface {
	// Ready fails when no module can be injected at all.
	Ready() error
	CanReload(path string) bool
	Reload(ctx context.Context, path string) error
}

// HotReloader patches a running game to match a freshly exported project
// without restarting it.
type HotReloader struct {
	mu      sync.Mutex
	game    *engine.Game
	source  project.ManifestSource
	scripts ScriptLoader
	loaded  []project.ScriptFile
	logger  log.Log
	events  bus.EventBus
}

type Option func(*HotReloader)

func WithLogger(l log.Log) Option {
	return func(h *HotReloader) { h.logger = l }
}

func WithEventBus(b bus.EventBus) Option {
	return func(h *HotReloader) { h.events = b }
}

// WithLoadedScripts sets the script files the game was started with.
func WithLoadedScripts(files []project.ScriptFile) Option {
	return func(h *HotReloader) { h.loaded = append([]project.ScriptFile(nil), files...) }
}

func New(game *engine.Game, source project.ManifestSource, scripts ScriptLoader, opts ...Option) *HotReloader {
	h := &HotReloader{
		game:    game,
		source:  source,
		scripts: scripts,
		logger:  log.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// LoadedScripts returns the script files considered loaded in the game.
func (h *HotReloader) LoadedScripts() []project.ScriptFile {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]project.ScriptFile(nil), h.loaded...)
}

// HotReload re-fetches the manifest, reloads changed scripts and patches the live
// game. Problems are reported in the returned entries; an error is only returned
// when nothing could be attempted, in which case the game was never paused.
// Only one reload runs at a time.
func (h *HotReloader) HotReload(ctx context.Context) (entries []LogEntry, err error) {
	if h.game == nil {
		return nil, ErrNoGame
	}
	if h.scripts == nil {
		return nil, ErrNoScriptLoader
	}
	if err = h.scripts.Ready(); err != nil {
		return nil, fmt.Errorf("hot reload: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	runID := uuid.NewString()
	logs := newRunLog(h.logger.With(log.String("run_id", runID)))
	h.publish(EventStarted, Report{RunID: runID})

	h.game.Pause(true)
	defer func() {
		if r := recover(); r != nil {
			logs.fatal("Unexpected error during hot reload: %v", r)
		}
		h.game.Pause(false)
		entries = logs.snapshot()
		h.publish(EventFinished, Report{RunID: runID, Logs: entries})
	}()

	oldData := h.game.Data()
	oldScripts := append([]project.ScriptFile(nil), h.loaded...)
	registrySnapshot := h.game.Registry().Snapshot()

	manifest, fetchErr := h.source.Fetch(ctx)
	if fetchErr != nil {
		logs.fatal("Unable to fetch the project data: %v", fetchErr)
		return nil, nil
	}

	if !h.reloadScripts(ctx, logs, oldScripts, manifest) {
		return nil, nil
	}
	h.loaded = nextLoadedScripts(oldScripts, manifest)

	changes := h.game.Registry().Diff(registrySnapshot)
	for _, name := range changes.Removed {
		logs.warning("Behavior type %s was removed by the reloaded scripts. Existing behaviors keep running with their previous implementation.", name)
	}
	for _, name := range changes.Changed {
		logs.info("Behavior type %s changed, its behaviors will be re-created.", name)
	}

	newData := manifest.ProjectData
	p := &patcher{game: h.game, logs: logs, changes: changes}
	p.apply(ctx, oldData, &newData)
	return nil, nil
}

func (h *HotReloader) publish(eventType string, report Report) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(bus.NewEvent(eventType, eventSource, report)); err != nil {
		h.logger.Warn("hot reload event handler failed", log.String("event", eventType), log.Error(err))
	}
}
