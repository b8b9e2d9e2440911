// hotreload hosts a game exported from the editor and patches it live when the
// export changes.
//
// Usage:
//
//	hotreload serve                      - Run the game and the debugger server
//	hotreload diff <old> <new>           - Print the hot reload log between two exports
//	hotreload manifest <project> <dir>   - Build a manifest for an exported game
//
// Global flags:
//
//	--config <path>   - YAML or TOML settings file
//	--log-level <lvl> - Log level (debug, info, warn, error, silent)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeusync/hotreload/internal/config"
)

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hotreload",
	Short: "Run an exported game and hot-reload it when the export changes",
	Long: `hotreload runs a game exported from the editor and keeps it in sync with
new exports without restarting it: scripts are re-executed, and scenes, objects,
instances, layers and variables are patched in place.

Examples:
  hotreload serve --config hotreload.yaml
  hotreload diff export-v1/manifest.json export-v2/manifest.json
  hotreload manifest project.json export/ > export/manifest.json`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level, overrides the config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(manifestCmd)
}

// loadConfig reads --config when given, then applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		if cfg, err = config.Load(flagConfig); err != nil {
			return cfg, err
		}
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}
