package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/hotreload/internal/core/project"
)

var (
	flagOut      string
	flagDataOnly bool
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <project> <export-dir>",
	Short: "Build the manifest of an exported game",
	Long: `Hash every script of an export directory and write the manifest read by the
hot reloader. Instances without a persistent uuid get one, so that later
exports can be matched with the running game.

Examples:
  hotreload manifest project.json export/ --out export/manifest.json
  hotreload manifest project.yaml export/ --data-only --out export/manifest.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runManifest,
}

func init() {
	manifestCmd.Flags().StringVar(&flagOut, "out", "", "Output file, stdout by default (format from extension)")
	manifestCmd.Flags().BoolVar(&flagDataOnly, "data-only", false, "Mark the export as project data only")
}

func runManifest(cmd *cobra.Command, args []string) error {
	data, err := project.LoadProjectFile(args[0])
	if err != nil {
		return err
	}
	if n := project.AssignMissingUUIDs(data); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "assigned %d persistent uuids\n", n)
	}
	m, err := project.BuildManifest(*data, args[1])
	if err != nil {
		return err
	}
	m.ProjectDataOnlyExport = flagDataOnly

	var out []byte
	switch strings.ToLower(filepath.Ext(flagOut)) {
	case ".yaml", ".yml":
		out, err = yaml.Marshal(m)
	default:
		out, err = json.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return err
	}
	if flagOut == "" {
		_, err = cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	}
	return os.WriteFile(flagOut, out, 0o644)
}
