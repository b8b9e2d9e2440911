package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeusync/hotreload/internal/core/builtin"
	"github.com/zeusync/hotreload/internal/core/engine"
	"github.com/zeusync/hotreload/internal/core/hotreload"
	"github.com/zeusync/hotreload/internal/core/observability/log"
	"github.com/zeusync/hotreload/internal/core/project"
	"github.com/zeusync/hotreload/internal/core/scripts"
)

var (
	flagDiffScene   string
	flagFailOnError bool
)

var errReloadFailed = errors.New("hot reload reported errors")

var diffCmd = &cobra.Command{
	Use:   "diff <old-manifest> <new-manifest>",
	Short: "Print the hot reload log between two exports",
	Long: `Start a game from the old export, hot-reload it to the new one and print the
log entries as JSON. Scripts are not executed, only the data side of the reload
is simulated.

Examples:
  hotreload diff v1/manifest.json v2/manifest.json
  hotreload diff --scene Menu --fail-on-error v1/manifest.yaml v2/manifest.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&flagDiffScene, "scene", "", "Scene to start, the first one by default")
	diffCmd.Flags().BoolVar(&flagFailOnError, "fail-on-error", false, "Exit with an error when the log has errors")
}

// emptyFetcher returns no content: modules are not executed by a dry run.
type emptyFetcher struct{}

func (emptyFetcher) Fetch(ctx context.Context, _ string) ([]byte, error) {
	return nil, ctx.Err()
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	oldManifest, err := project.LoadFile(args[0])
	if err != nil {
		return err
	}
	newManifest, err := project.LoadFile(args[1])
	if err != nil {
		return err
	}

	logger := log.New(cfg.Level())
	defer func() { _ = logger.Sync() }()

	reg := engine.NewRegistry()
	builtin.Register(reg)
	data := oldManifest.ProjectData
	game := engine.NewGame(&data, reg, engine.WithLogger(logger))
	scene := flagDiffScene
	if scene == "" && len(data.Layouts) > 0 {
		scene = data.Layouts[0].Name
	}
	if _, err = game.SceneStack().Push(scene); err != nil {
		return err
	}

	modules := scripts.NewModuleTable(reg)
	modules.SetFallback(scripts.NoopModule)
	loader := scripts.NewReloader(emptyFetcher{}, modules, scripts.WithLogger(logger))
	reloader := hotreload.New(game, project.StaticSource{Manifest: newManifest}, loader,
		hotreload.WithLogger(logger),
		hotreload.WithLoadedScripts(oldManifest.ScriptFiles),
	)

	entries, err := reloader.HotReload(cmd.Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []hotreload.LogEntry{}
	}
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if flagFailOnError && hotreload.HasErrors(entries) {
		return errReloadFailed
	}
	return nil
}
