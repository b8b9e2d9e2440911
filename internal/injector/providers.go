package injector

import (
	"fmt"

	"github.com/google/wire"

	"github.com/zeusync/hotreload/internal/config"
	"github.com/zeusync/hotreload/internal/core/builtin"
	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/events/bus"
	"github.com/zeusync/hotreload/internal/core/hotreload"
	"github.com/zeusync/hotreload/internal/core/observability/log"
	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/scripts"
	"github.com/zeusync/hotreload/internal/debugger"
)

// App is a running game with its hot reloader and debugger.
type App struct {
	Config   config.Config
	Logger   *log.Logger
	Game     *engine.Game
	Modules  *scripts.ModuleTable
	Reloader *hotreload.HotReloader
	Debugger *debugger.Server
	Events   bus.EventBus
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideManifest,
	ProvideRegistry,
	ProvideGame,
	ProvideModules,
	ProvideFetcher,
	ProvideScriptLoader,
	ProvideSource,
	ProvideEventBus,
	ProvideHotReloader,
	ProvideDebugger,
)

func ProvideLogger(cfg config.Config) *log.Logger {
	return log.New(cfg.Level())
}

func ProvideManifest(cfg config.Config) (*project.Manifest, error) {
	return project.LoadFile(cfg.ManifestPath)
}

func ProvideRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	builtin.Register(reg)
	return reg
}

// ProvideGame starts the configured scene, or the first one of the project.
func ProvideGame(cfg config.Config, manifest *project.Manifest, reg *engine.Registry, logger *log.Logger) (*engine.Game, error) {
	data := manifest.ProjectData
	game := engine.NewGame(&data, reg, engine.WithLogger(logger))
	start := cfg.StartScene
	if start == "" {
		if len(data.Layouts) == 0 {
			return nil, fmt.Errorf("%w: no scene to start", project.ErrInvalidManifest)
		}
		start = data.Layouts[0].Name
	}
	if _, err := game.SceneStack().Push(start); err != nil {
		return nil, err
	}
	return game, nil
}

// ProvideModules runs no code for unknown modules: the host only checks that
// they can be fetched. Games embedding the host define their own modules.
func ProvideModules(reg *engine.Registry) *scripts.ModuleTable {
	modules := scripts.NewModuleTable(reg)
	modules.SetFallback(scripts.NoopModule)
	return modules
}

func ProvideFetcher(cfg config.Config) scripts.Fetcher {
	if cfg.ScriptBaseURL != "" {
		return scripts.HTTPFetcher{BaseURL: cfg.ScriptBaseURL}
	}
	return scripts.FileFetcher{Root: cfg.ScriptRoot}
}

func ProvideScriptLoader(cfg config.Config, fetcher scripts.Fetcher, modules *scripts.ModuleTable, logger *log.Logger) *scripts.Reloader {
	opts := []scripts.Option{scripts.WithLogger(logger)}
	if len(cfg.ExcludedScripts) > 0 {
		opts = append(opts, scripts.WithExclusions(cfg.ExcludedScripts))
	}
	return scripts.NewReloader(fetcher, modules, opts...)
}

func ProvideSource(cfg config.Config) project.ManifestSource {
	return project.FileSource{Path: cfg.ManifestPath}
}

func ProvideEventBus(logger *log.Logger) bus.EventBus {
	events := bus.New()
	events.AddObserver(bus.NewLogObserver(logger))
	return events
}

func ProvideHotReloader(game *engine.Game, source project.ManifestSource, loader *scripts.Reloader, manifest *project.Manifest, events bus.EventBus, logger *log.Logger) *hotreload.HotReloader {
	return hotreload.New(game, source, loader,
		hotreload.WithLogger(logger),
		hotreload.WithEventBus(events),
		hotreload.WithLoadedScripts(manifest.ScriptFiles),
	)
}

func ProvideDebugger(cfg config.Config, reloader *hotreload.HotReloader, game *engine.Game, events bus.EventBus, logger *log.Logger) *debugger.Server {
	dc := debugger.DefaultConfig()
	dc.ListenAddr = cfg.ListenAddr
	return debugger.NewServer(dc, reloader, game,
		debugger.WithLogger(logger),
		debugger.WithEventBus(events),
	)
}
