package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// resolved locations of the ffmpeg and ffprobe binaries
type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure resolves the ffmpeg and ffprobe binaries once per process.
// MONTAGE_FFMPEG_PATH and MONTAGE_FFPROBE_PATH override discovery;
// otherwise the binaries are looked up on PATH.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = ensure()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func ensure() (BinaryPaths, error) {
	ffmpegPath := os.Getenv("MONTAGE_FFMPEG_PATH")
	ffprobePath := os.Getenv("MONTAGE_FFPROBE_PATH")

	if ffmpegPath == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			ffmpegPath = found
		}
	}
	if ffprobePath == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			ffprobePath = found
		}
	}

	if ffmpegPath == "" {
		return BinaryPaths{}, fmt.Errorf(
			"ffmpeg not found: install it or set MONTAGE_FFMPEG_PATH",
		)
	}
	if ffprobePath == "" {
		return BinaryPaths{}, fmt.Errorf(
			"ffprobe not found: install it or set MONTAGE_FFPROBE_PATH",
		)
	}

	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}
