package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkalvas/montage/internal/project"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [project_dir]",
	Short: "Show the metadata of a montage project",
	Long: `Inspect reads the metadata.xml of a project directory and prints the
project's scalar fields: name, theme, zoom level, playhead position,
last-saved time and the duration recorded at the last save.

Examples:
  montage inspect ./my-project
  montage inspect ~/projects/holiday -v`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("project directory not found: %s", dir)
	}

	p, err := project.Load(dir, nil)
	if err != nil {
		return err
	}

	logger.Infow("Project metadata",
		"name", p.Name(),
		"theme", p.Theme(),
		"zoom_level", p.ZoomLevel(),
		"playhead", p.Playhead(),
		"saved_duration", p.SavedDuration(),
		"last_saved", p.LastSaved(),
	)
	if uri := p.ExportedMovieURI(); uri != "" {
		logger.Infow("Exported movie", "uri", uri)
	}

	return nil
}
