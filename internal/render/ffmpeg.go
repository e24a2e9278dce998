package render

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mkalvas/montage/internal/ffmpeg"
	"github.com/mkalvas/montage/internal/timeline"
)

const defaultCallbackFrames = 30

// FFmpegEngine renders frames and previews through ffmpeg. A started
// preview occupies the engine until StopPreview; frame renders and
// further preview starts fail with ErrBusy in the meantime.
type FFmpegEngine struct {
	mu      sync.Mutex
	session *previewSession

	// both replaceable in tests
	playback func(ctx context.Context, source string, from, to time.Duration) error
	probe    func(ctx context.Context, source string) (*MediaInfo, error)
}

func NewFFmpegEngine() *FFmpegEngine {
	e := &FFmpegEngine{}
	e.playback = runPlayback
	e.probe = probeSource
	return e
}

// tracks one running preview
type previewSession struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	pos time.Duration
}

func (s *previewSession) position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *previewSession) setPosition(pos time.Duration) {
	s.mu.Lock()
	s.pos = pos
	s.mu.Unlock()
}

// RenderFrame extracts the frame at the given position into outPath and
// returns the timestamp of the frame actually rendered, snapped to the
// source's frame boundary.
func (e *FFmpegEngine) RenderFrame(
	ctx context.Context,
	source string,
	at time.Duration,
	outPath string,
) (time.Duration, error) {
	if at < 0 {
		return 0, ErrInvalidTime
	}

	e.mu.Lock()
	busy := e.session != nil
	e.mu.Unlock()
	if busy {
		return 0, ErrBusy
	}

	info, err := e.probe(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("failed to probe %s: %w", source, err)
	}
	if at > info.Duration {
		return 0, ErrInvalidTime
	}

	actual := at
	if info.FrameRate > 0 {
		frame := time.Duration(float64(time.Second) / info.FrameRate)
		actual = at - at%frame
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return 0, err
	}

	err = ffmpeg.Input(source, ffmpeg.KwArgs{"ss": actual.Seconds()}).
		Output(outPath, ffmpeg.KwArgs{"vframes": 1, "q:v": 2}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Run()
	if err != nil {
		return 0, fmt.Errorf("frame render failed: %w", err)
	}

	return actual, nil
}

// RenderClipFrame renders a frame of a single clip's source media. The
// mechanics match RenderFrame; the entry point is kept separate because
// the position is relative to the clip, not the assembled timeline.
func (e *FFmpegEngine) RenderClipFrame(
	ctx context.Context,
	source string,
	at time.Duration,
	outPath string,
) (time.Duration, error) {
	return e.RenderFrame(ctx, source, at, outPath)
}

// StartPreview begins playback of the source range in the background.
// Progress callbacks fire every CallbackAfterFrames decoded frames.
// The call itself does not block.
func (e *FFmpegEngine) StartPreview(ctx context.Context, opts PreviewOptions) error {
	if opts.From < 0 {
		return ErrInvalidTime
	}

	info, err := e.probe(ctx, opts.Source)
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", opts.Source, err)
	}
	if opts.From > info.Duration {
		return ErrInvalidTime
	}

	to := opts.To
	if to < 0 || to > info.Duration {
		to = info.Duration
	}
	if to <= opts.From {
		return ErrInvalidTime
	}

	fps := info.FrameRate
	if fps <= 0 {
		fps = 30
	}

	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		return ErrBusy
	}

	ctx, cancel := context.WithCancel(ctx)
	session := &previewSession{
		cancel: cancel,
		done:   make(chan struct{}),
		pos:    opts.From,
	}
	e.session = session
	e.mu.Unlock()

	go e.runSession(ctx, session, opts, to, fps)
	return nil
}

// StopPreview blocks until the running preview has stopped and returns
// the position it reached. Zero when no preview is running.
func (e *FFmpegEngine) StopPreview() time.Duration {
	e.mu.Lock()
	session := e.session
	e.mu.Unlock()
	if session == nil {
		return 0
	}

	session.cancel()
	<-session.done

	e.mu.Lock()
	e.session = nil
	e.mu.Unlock()

	return session.position()
}

// Probe retrieves media information for a source file.
func (e *FFmpegEngine) Probe(ctx context.Context, source string) (*MediaInfo, error) {
	return e.probe(ctx, source)
}

// drives one preview: playback runs in its own goroutine while the
// session clock advances frame by frame and reports progress
func (e *FFmpegEngine) runSession(
	ctx context.Context,
	session *previewSession,
	opts PreviewOptions,
	to time.Duration,
	fps float64,
) {
	defer close(session.done)
	defer session.cancel()

	frame := time.Duration(float64(time.Second) / fps)
	every := opts.CallbackAfterFrames
	if every <= 0 {
		every = defaultCallbackFrames
	}

	playbackErr := make(chan error, 1)
	go func() {
		playbackErr <- e.playback(ctx, opts.Source, opts.From, to)
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	pos := opts.From
	frames := 0
	for {
		select {
		case <-ctx.Done():
			if opts.Progress != nil {
				opts.Progress(session.position(), true)
			}
			return

		case <-playbackErr:
			if ctx.Err() != nil {
				// cancelled while draining playback
				if opts.Progress != nil {
					opts.Progress(session.position(), true)
				}
				return
			}
			// playback finished; for a looping preview restart it
			if opts.Loop {
				go func() {
					playbackErr <- e.playback(ctx, opts.Source, opts.From, to)
				}()
				continue
			}
			session.setPosition(to)
			if opts.Progress != nil {
				opts.Progress(to, true)
			}
			return

		case <-ticker.C:
			pos += frame
			if pos >= to {
				if opts.Loop {
					pos = opts.From
				} else {
					pos = to
				}
			}
			session.setPosition(pos)
			frames++
			if frames%every == 0 && opts.Progress != nil {
				opts.Progress(pos, false)
			}
		}
	}
}

// plays the source range in realtime to a null sink
func runPlayback(ctx context.Context, source string, from, to time.Duration) error {
	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	cmd := ffmpeg.Input(source, ffmpeg.KwArgs{"re": "", "ss": from.Seconds()}).
		Output("-", ffmpeg.KwArgs{"t": (to - from).Seconds(), "f": "null"}).
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Compile()
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	waited := make(chan error, 1)
	go func() { waited <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-waited
		return ctx.Err()
	case err := <-waited:
		return err
	}
}

// JSON output from ffprobe
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
}

// media information via ffprobe
func probeSource(ctx context.Context, source string) (*MediaInfo, error) {
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", source)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		source,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probed probeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &MediaInfo{}
	if seconds, err := strconv.ParseFloat(probed.Format.Duration, 64); err == nil {
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, stream := range probed.Streams {
		if stream.CodecType != "video" {
			continue
		}
		info.Width = stream.Width
		info.Height = stream.Height
		info.FrameRate = parseFrameRate(stream.RFrameRate)
		info.AspectRatio = classifyAspectRatio(stream.Width, stream.Height)
		break
	}

	return info, nil
}

// parses ffprobe rational frame rates like "30000/1001"
func parseFrameRate(rate string) float64 {
	num, den, ok := strings.Cut(rate, "/")
	if !ok {
		value, _ := strconv.ParseFloat(rate, 64)
		return value
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// maps pixel dimensions onto the nearest known aspect ratio
func classifyAspectRatio(width, height int) timeline.AspectRatio {
	if width <= 0 || height <= 0 {
		return timeline.AspectRatioUndefined
	}

	ratio := float64(width) / float64(height)
	known := []struct {
		value float64
		ar    timeline.AspectRatio
	}{
		{3.0 / 2.0, timeline.AspectRatio3x2},
		{4.0 / 3.0, timeline.AspectRatio4x3},
		{5.0 / 3.0, timeline.AspectRatio5x3},
		{11.0 / 9.0, timeline.AspectRatio11x9},
		{16.0 / 9.0, timeline.AspectRatio16x9},
	}

	best := timeline.AspectRatioUndefined
	bestDiff := math.Inf(1)
	for _, k := range known {
		if diff := math.Abs(ratio - k.value); diff < bestDiff {
			best = k.ar
			bestDiff = diff
		}
	}
	if bestDiff > 0.05 {
		return timeline.AspectRatioUndefined
	}
	return best
}
