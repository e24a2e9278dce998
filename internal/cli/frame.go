package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mkalvas/montage/internal/render"
)

var frameCmd = &cobra.Command{
	Use:   "frame [media_file]",
	Short: "Render single frames from a media file",
	Long: `Frame extracts one frame per requested timestamp from the media file.
Timestamps accept Go duration syntax (1m30s, 2500ms) or plain seconds.
Multiple timestamps are rendered concurrently.

Examples:
  montage frame video.mp4 -t 12.5
  montage frame video.mp4 -t 1m -t 2m30s -o ./frames`,
	Args: cobra.ExactArgs(1),
	RunE: runFrame,
}

func init() {
	rootCmd.AddCommand(frameCmd)

	frameCmd.Flags().
		StringSliceP("time", "t", nil, "Timestamp(s) to render (repeatable)")
}

func runFrame(cmd *cobra.Command, args []string) error {
	source := args[0]
	ctx := context.Background()

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", source)
	}

	stamps, _ := cmd.Flags().GetStringSlice("time")
	if len(stamps) == 0 {
		return fmt.Errorf("at least one --time is required")
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	times := make([]time.Duration, 0, len(stamps))
	for _, stamp := range stamps {
		at, err := parseTimestamp(stamp)
		if err != nil {
			return err
		}
		times = append(times, at)
	}

	engine := render.NewFFmpegEngine()
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	logger.Infow("Rendering frames",
		"input", source,
		"count", len(times),
		"output_dir", outputDir,
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, at := range times {
		at := at
		g.Go(func() error {
			outPath := filepath.Join(
				outputDir,
				fmt.Sprintf("%s_%dms.jpg", base, at.Milliseconds()),
			)
			actual, err := engine.RenderFrame(ctx, source, at, outPath)
			if err != nil {
				return fmt.Errorf("frame at %v: %w", at, err)
			}
			logger.Infow("Rendered frame",
				"requested", at,
				"actual", actual,
				"path", outPath,
			)
			return nil
		})
	}

	return g.Wait()
}

// parses a timestamp flag: Go duration syntax or plain seconds
func parseTimestamp(stamp string) (time.Duration, error) {
	stamp = strings.TrimSpace(stamp)
	if stamp == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	if d, err := time.ParseDuration(stamp); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative timestamp: %s", stamp)
		}
		return d, nil
	}

	seconds, err := strconv.ParseFloat(stamp, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: use 90s, 1m30s or plain seconds", stamp)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative timestamp: %s", stamp)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
