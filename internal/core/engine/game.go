package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/hotreload/internal/core/observability/log"
	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/variables"
)

// Game is the running game: project data, registry, global variables and the
// scene stack. Frames and patches are serialized by the frame lock.
type Game struct {
	frame  sync.Mutex
	paused bool

	data        *project.ProjectData
	registry    *Registry
	variables   *variables.Container
	stack       *SceneStack
	assets      AssetLoader
	windowTitle string
	logger      log.Log
	lastID      atomic.Uint64
}

type GameOption func(*Game)

func WithAssets(a AssetLoader) GameOption {
	return func(g *Game) { g.assets = a }
}

func WithLogger(l log.Log) GameOption {
	return func(g *Game) { g.logger = l }
}

// NewGame creates a game for project data. No scene is running until one is pushed.
func NewGame(data *project.ProjectData, registry *Registry, opts ...GameOption) *Game {
	g := &Game{
		data:        data,
		registry:    registry,
		variables:   variables.NewContainerFromData(data.Variables),
		assets:      NopAssets{},
		windowTitle: data.Properties.WindowTitle,
		logger:      log.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.stack = &SceneStack{game: g}
	return g
}

func (g *Game) Data() *project.ProjectData        { return g.data }
func (g *Game) SetData(data *project.ProjectData) { g.data = data }
func (g *Game) Registry() *Registry               { return g.registry }
func (g *Game) Variables() *variables.Container   { return g.variables }
func (g *Game) SceneStack() *SceneStack           { return g.stack }
func (g *Game) Assets() AssetLoader               { return g.assets }
func (g *Game) Logger() log.Log                   { return g.logger }
func (g *Game) WindowTitle() string               { return g.windowTitle }
func (g *Game) SetWindowTitle(title string)       { g.windowTitle = title }

func (g *Game) nextID() uint64 { return g.lastID.Add(1) }

// Pause suspends or resumes frames. Pausing waits for a frame in progress.
func (g *Game) Pause(paused bool) {
	g.frame.Lock()
	g.paused = paused
	g.frame.Unlock()
}

func (g *Game) IsPaused() bool {
	g.frame.Lock()
	defer g.frame.Unlock()
	return g.paused
}

// Exclusive runs fn with no frame in progress.
func (g *Game) Exclusive(fn func()) {
	g.frame.Lock()
	defer g.frame.Unlock()
	fn()
}

// Step runs one frame of the top scene. It reports false when paused or when no
// scene is running.
func (g *Game) Step(dt float64) bool {
	g.frame.Lock()
	defer g.frame.Unlock()
	if g.paused {
		return false
	}
	s, ok := g.stack.Current()
	if !ok {
		return false
	}
	s.Step(dt)
	return true
}

// Run steps frames at fps until ctx is done.
func (g *Game) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.Step(interval.Seconds())
		}
	}
}
