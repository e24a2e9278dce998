package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mkalvas/montage/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "montage",
	Short: "Timeline inspection and rendering for montage projects",
	Long: `Montage models the clip timeline of a video-editing project.

The CLI inspects project metadata, renders single frames out of source
media, and runs previews through ffmpeg.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output path")
}
