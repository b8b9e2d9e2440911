package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/hotreload/internal/core/observability/log"
	"github.com/zeusync/hotreload/internal/injector"
)

var (
	flagListen   string
	flagManifest string
	flagScene    string
	flagFPS      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game and the debugger server",
	Long: `Run the exported game and listen for debugger clients. A client triggers a
hot reload with {"command":"hotReload"} on /ws, or with POST /hot-reload.

Examples:
  hotreload serve --manifest export/manifest.json
  hotreload serve --config hotreload.toml --listen :4000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Debugger address (host:port)")
	serveCmd.Flags().StringVar(&flagManifest, "manifest", "", "Path to the export manifest")
	serveCmd.Flags().StringVar(&flagScene, "scene", "", "Scene to start, the first one by default")
	serveCmd.Flags().IntVar(&flagFPS, "fps", 0, "Frames per second")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagListen != "" {
		cfg.ListenAddr = flagListen
	}
	if flagManifest != "" {
		cfg.ManifestPath = flagManifest
	}
	if flagScene != "" {
		cfg.StartScene = flagScene
	}
	if flagFPS > 0 {
		cfg.FPS = flagFPS
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Logger.Info("game started",
		log.String("project", app.Game.Data().Properties.Name),
		log.String("manifest", cfg.ManifestPath),
		log.Int("fps", cfg.FPS),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.Game.Run(ctx, cfg.FPS) })
	g.Go(func() error { return app.Debugger.ListenAndServe(ctx) })
	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
