package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkalvas/montage/internal/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview [media_file]",
	Short: "Play a preview of a media file range",
	Long: `Preview decodes the media file in realtime through ffmpeg and logs
playback progress on a frame-count interval. Interrupt with Ctrl-C to
stop early; the position reached is reported either way.

Examples:
  montage preview video.mp4
  montage preview video.mp4 --from 30s --to 1m
  montage preview video.mp4 --loop --callback-frames 60`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Duration("from", 0, "Preview start position")
	previewCmd.Flags().
		Duration("to", -1, "Preview end position (-1 plays to the end)")
	previewCmd.Flags().Bool("loop", false, "Loop the preview")
	previewCmd.Flags().
		Int("callback-frames", 30, "Report progress every N frames")
}

func runPreview(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx := context.Background()

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", source)
	}

	from, _ := cmd.Flags().GetDuration("from")
	to, _ := cmd.Flags().GetDuration("to")
	loop, _ := cmd.Flags().GetBool("loop")
	callbackFrames, _ := cmd.Flags().GetInt("callback-frames")

	engine := render.NewFFmpegEngine()

	finished := make(chan struct{})
	err := engine.StartPreview(ctx, render.PreviewOptions{
		Source:              source,
		From:                from,
		To:                  to,
		Loop:                loop,
		CallbackAfterFrames: callbackFrames,
		Progress: func(pos time.Duration, last bool) {
			if last {
				close(finished)
				return
			}
			logger.Infow("Preview progress", "position", pos)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start preview: %w", err)
	}

	logger.Infow("Preview started", "input", source, "from", from, "to", to)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	select {
	case <-interrupt:
		logger.Infow("Stopping preview")
	case <-finished:
	}

	stopped := engine.StopPreview()
	logger.Infow("Preview stopped", "position", stopped)

	return nil
}
