package render

import (
	"context"
	"errors"
	"time"

	"github.com/mkalvas/montage/internal/timeline"
)

var (
	// ErrBusy is returned when a render or preview is requested while a
	// preview is already in progress.
	ErrBusy = errors.New("preview already in progress")

	// ErrInvalidTime is returned for a negative time, a time beyond the
	// source duration, or a preview range that ends before it starts.
	ErrInvalidTime = errors.New("time out of range")
)

// media file information from probing
type MediaInfo struct {
	Duration    time.Duration
	Width       int
	Height      int
	FrameRate   float64
	AspectRatio timeline.AspectRatio
}

// ProgressFunc receives preview progress. pos is the playback position
// reached; last is true exactly once, on the final callback before the
// preview ends or is stopped.
type ProgressFunc func(pos time.Duration, last bool)

// options for a preview run
type PreviewOptions struct {
	Source string
	From   time.Duration
	To     time.Duration // negative plays to the end of the source
	Loop   bool

	// invoke Progress after this many decoded frames (default 30)
	CallbackAfterFrames int
	Progress            ProgressFunc
}

// Engine is the rendering collaborator. The timeline model forwards
// render and preview calls to it verbatim and performs no coordination
// of its own.
type Engine interface {
	// renders the frame at the given source position into outPath,
	// returning the timestamp of the frame actually rendered
	RenderFrame(
		ctx context.Context,
		source string,
		at time.Duration,
		outPath string,
	) (time.Duration, error)

	// renders a frame of a single clip's source media
	RenderClipFrame(
		ctx context.Context,
		source string,
		at time.Duration,
		outPath string,
	) (time.Duration, error)

	// starts a non-blocking preview; progress is reported through
	// opts.Progress on a frame-count interval
	StartPreview(ctx context.Context, opts PreviewOptions) error

	// blocks until the running preview has stopped and returns the
	// position it reached; zero when no preview is running
	StopPreview() time.Duration

	// retrieves media information for a source file
	Probe(ctx context.Context, source string) (*MediaInfo, error)
}
