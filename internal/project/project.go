// Package project ties the timeline model to its collaborators: scalar
// project metadata, XML persistence, and forwarding to the render
// engine. The project performs no render coordination of its own; a
// nil engine turns every render call into a no-op, which is how
// display-only project previews are constructed.
package project

import (
	"context"
	"time"

	"github.com/mkalvas/montage/internal/render"
	"github.com/mkalvas/montage/internal/timeline"
)

const DefaultZoomLevel = 20

type Project struct {
	name             string
	theme            string
	zoomLevel        int
	playhead         time.Duration
	lastSaved        time.Time
	savedDuration    time.Duration
	exportedMovieURI string

	timeline *timeline.Timeline
	tracks   *timeline.TrackSet
	engine   render.Engine
}

// New constructs a fresh project with an empty timeline. engine may be
// nil for display-only use.
func New(name string, engine render.Engine) *Project {
	return &Project{
		name:      name,
		zoomLevel: DefaultZoomLevel,
		timeline:  timeline.New(),
		tracks:    timeline.NewTrackSet(),
		engine:    engine,
	}
}

func (p *Project) Name() string        { return p.name }
func (p *Project) SetName(name string) { p.name = name }

func (p *Project) Theme() string         { return p.theme }
func (p *Project) SetTheme(theme string) { p.theme = theme }

func (p *Project) ZoomLevel() int         { return p.zoomLevel }
func (p *Project) SetZoomLevel(level int) { p.zoomLevel = level }

func (p *Project) Playhead() time.Duration       { return p.playhead }
func (p *Project) SetPlayhead(pos time.Duration) { p.playhead = pos }

// LastSaved is the time the metadata was last written to disk.
func (p *Project) LastSaved() time.Time { return p.lastSaved }

// SavedDuration is the project duration as recorded at the last save.
// Once a project is open, use Timeline().Duration() for the live value.
func (p *Project) SavedDuration() time.Duration { return p.savedDuration }

func (p *Project) ExportedMovieURI() string       { return p.exportedMovieURI }
func (p *Project) SetExportedMovieURI(uri string) { p.exportedMovieURI = uri }

func (p *Project) Timeline() *timeline.Timeline { return p.timeline }
func (p *Project) Tracks() *timeline.TrackSet   { return p.tracks }

// AddOverlay attaches an overlay to the clip with the given id.
// Returns timeline.ErrNotFound when the clip does not exist.
func (p *Project) AddOverlay(clipID string, o *timeline.Overlay) error {
	clip := p.timeline.Clip(clipID)
	if clip == nil {
		return timeline.ErrNotFound
	}
	clip.AddOverlay(o)
	return nil
}

// RemoveOverlay detaches the overlay from the clip. Missing clip or
// overlay ids are a no-op.
func (p *Project) RemoveOverlay(clipID, overlayID string) {
	if clip := p.timeline.Clip(clipID); clip != nil {
		clip.RemoveOverlay(overlayID)
	}
}

// Overlay returns the clip's active overlay, or nil.
func (p *Project) Overlay(clipID string) *timeline.Overlay {
	clip := p.timeline.Clip(clipID)
	if clip == nil {
		return nil
	}
	return clip.Overlay()
}

// AddEffect attaches an effect to the clip with the given id.
// Returns timeline.ErrNotFound when the clip does not exist.
func (p *Project) AddEffect(clipID string, e *timeline.Effect) error {
	clip := p.timeline.Clip(clipID)
	if clip == nil {
		return timeline.ErrNotFound
	}
	clip.AddEffect(e)
	return nil
}

// RemoveEffect detaches the effect from the clip. Missing clip or
// effect ids are a no-op.
func (p *Project) RemoveEffect(clipID, effectID string) {
	if clip := p.timeline.Clip(clipID); clip != nil {
		clip.RemoveEffect(effectID)
	}
}

// Effect returns the clip's active effect, or nil.
func (p *Project) Effect(clipID string) *timeline.Effect {
	clip := p.timeline.Clip(clipID)
	if clip == nil {
		return nil
	}
	return clip.Effect()
}

// RenderPreviewFrame renders the frame at the given timeline position:
// the spanning clip is resolved through the timeline and its source is
// rendered at the clip-relative offset. No-op zero result without an
// engine or when no clip spans the position.
func (p *Project) RenderPreviewFrame(
	ctx context.Context,
	at time.Duration,
	outPath string,
) (time.Duration, error) {
	if p.engine == nil {
		return 0, nil
	}

	clip := p.clipAt(at)
	if clip == nil {
		return 0, render.ErrInvalidTime
	}

	offset := at - p.timeline.BeginTime(clip.ID)
	return p.engine.RenderFrame(ctx, clip.Source, offset, outPath)
}

// RenderClipFrame renders a frame of a single clip at a clip-relative
// position. Returns timeline.ErrNotFound when the clip id does not
// resolve. No-op zero result without an engine.
func (p *Project) RenderClipFrame(
	ctx context.Context,
	clipID string,
	at time.Duration,
	outPath string,
) (time.Duration, error) {
	if p.engine == nil {
		return 0, nil
	}

	clip := p.timeline.Clip(clipID)
	if clip == nil {
		return 0, timeline.ErrNotFound
	}
	return p.engine.RenderClipFrame(ctx, clip.Source, at, outPath)
}

// StartPreview forwards a preview over the clip spanning from. The
// range is mapped to clip-relative time and clamped to that clip's
// span. No-op on an empty timeline or without an engine.
func (p *Project) StartPreview(
	ctx context.Context,
	from, to time.Duration,
	loop bool,
	callbackAfterFrames int,
	progress render.ProgressFunc,
) error {
	if p.engine == nil || p.timeline.Len() == 0 {
		return nil
	}

	clip := p.clipAt(from)
	if clip == nil {
		return render.ErrInvalidTime
	}

	begin := p.timeline.BeginTime(clip.ID)
	clipTo := to - begin
	if to < 0 || clipTo > clip.TimelineDuration {
		clipTo = clip.TimelineDuration
	}

	return p.engine.StartPreview(ctx, render.PreviewOptions{
		Source:              clip.Source,
		From:                from - begin,
		To:                  clipTo,
		Loop:                loop,
		CallbackAfterFrames: callbackAfterFrames,
		Progress:            progress,
	})
}

// StopPreview blocks until the running preview is stopped and returns
// the position reached. Zero without an engine.
func (p *Project) StopPreview() time.Duration {
	if p.engine == nil {
		return 0
	}
	return p.engine.StopPreview()
}

// the clip whose span contains pos, including its own start
func (p *Project) clipAt(pos time.Duration) *timeline.Clip {
	if clip := p.timeline.PreviousAt(pos); clip != nil {
		return clip
	}
	// PreviousAt returns nil for a position at the very head
	return p.timeline.First()
}
