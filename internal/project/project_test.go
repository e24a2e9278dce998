package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkalvas/montage/internal/render"
	"github.com/mkalvas/montage/internal/timeline"
)

// render.Engine stand-in recording what the project forwards
type fakeEngine struct {
	frameSource string
	frameAt     time.Duration
	clipSource  string
	clipAt      time.Duration
	preview     *render.PreviewOptions
	startErr    error
	stopPos     time.Duration
	stamp       time.Duration
	stopped     bool
}

func (f *fakeEngine) RenderFrame(
	_ context.Context, source string, at time.Duration, _ string,
) (time.Duration, error) {
	f.frameSource = source
	f.frameAt = at
	return f.stamp, nil
}

func (f *fakeEngine) RenderClipFrame(
	_ context.Context, source string, at time.Duration, _ string,
) (time.Duration, error) {
	f.clipSource = source
	f.clipAt = at
	return f.stamp, nil
}

func (f *fakeEngine) StartPreview(_ context.Context, opts render.PreviewOptions) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.preview = &opts
	return nil
}

func (f *fakeEngine) StopPreview() time.Duration {
	f.stopped = true
	return f.stopPos
}

func (f *fakeEngine) Probe(_ context.Context, _ string) (*render.MediaInfo, error) {
	return &render.MediaInfo{}, nil
}

// [a(1000ms) -t(500ms)- b(2000ms)] with sources attached
func projectFixture(t *testing.T, engine render.Engine) *Project {
	t.Helper()
	p := New("holiday", engine)
	a := &timeline.Clip{ID: "a", Source: "a.mp4", TimelineDuration: time.Second}
	b := &timeline.Clip{ID: "b", Source: "b.mp4", TimelineDuration: 2 * time.Second}
	p.Timeline().Add(a)
	p.Timeline().Add(b)
	require.NoError(t, p.Timeline().AddTransition(
		&timeline.Transition{ID: "t", Duration: 500 * time.Millisecond}, "a"))
	return p
}

func TestNewProjectDefaults(t *testing.T) {
	p := New("holiday", nil)

	assert.Equal(t, "holiday", p.Name())
	assert.Equal(t, DefaultZoomLevel, p.ZoomLevel())
	assert.Zero(t, p.Timeline().Len())
	assert.Zero(t, p.Tracks().Len())
	assert.True(t, p.LastSaved().IsZero())
}

func TestRenderCallsAreNoOpsWithoutEngine(t *testing.T) {
	p := projectFixture(t, nil)
	ctx := context.Background()

	stamp, err := p.RenderPreviewFrame(ctx, 0, "out.jpg")
	require.NoError(t, err)
	assert.Zero(t, stamp)

	stamp, err = p.RenderClipFrame(ctx, "a", 0, "out.jpg")
	require.NoError(t, err)
	assert.Zero(t, stamp)

	require.NoError(t, p.StartPreview(ctx, 0, -1, false, 30, nil))
	assert.Zero(t, p.StopPreview())
}

func TestRenderPreviewFrameResolvesSpanningClip(t *testing.T) {
	engine := &fakeEngine{stamp: 700 * time.Millisecond}
	p := projectFixture(t, engine)

	// 1200ms falls inside b, which starts at 500ms effective time
	_, err := p.RenderPreviewFrame(context.Background(), 1200*time.Millisecond, "out.jpg")
	require.NoError(t, err)

	assert.Equal(t, "b.mp4", engine.frameSource)
	assert.Equal(t, 700*time.Millisecond, engine.frameAt)
}

func TestRenderPreviewFrameAtHeadUsesFirstClip(t *testing.T) {
	engine := &fakeEngine{}
	p := projectFixture(t, engine)

	_, err := p.RenderPreviewFrame(context.Background(), 0, "out.jpg")
	require.NoError(t, err)

	assert.Equal(t, "a.mp4", engine.frameSource)
	assert.Zero(t, engine.frameAt)
}

func TestRenderClipFrame(t *testing.T) {
	engine := &fakeEngine{}
	p := projectFixture(t, engine)

	_, err := p.RenderClipFrame(context.Background(), "b", 250*time.Millisecond, "out.jpg")
	require.NoError(t, err)
	assert.Equal(t, "b.mp4", engine.clipSource)
	assert.Equal(t, 250*time.Millisecond, engine.clipAt)

	_, err = p.RenderClipFrame(context.Background(), "missing", 0, "out.jpg")
	assert.ErrorIs(t, err, timeline.ErrNotFound)
}

func TestStartPreviewMapsRangeToClip(t *testing.T) {
	engine := &fakeEngine{}
	p := projectFixture(t, engine)

	err := p.StartPreview(context.Background(), 1200*time.Millisecond, -1, true, 60, nil)
	require.NoError(t, err)

	require.NotNil(t, engine.preview)
	assert.Equal(t, "b.mp4", engine.preview.Source)
	assert.Equal(t, 700*time.Millisecond, engine.preview.From)
	assert.Equal(t, 2*time.Second, engine.preview.To)
	assert.True(t, engine.preview.Loop)
	assert.Equal(t, 60, engine.preview.CallbackAfterFrames)
}

func TestStartPreviewOnEmptyTimelineIsNoOp(t *testing.T) {
	engine := &fakeEngine{}
	p := New("empty", engine)

	require.NoError(t, p.StartPreview(context.Background(), 0, -1, false, 30, nil))
	assert.Nil(t, engine.preview)
}

func TestStartPreviewPropagatesEngineBusy(t *testing.T) {
	engine := &fakeEngine{startErr: render.ErrBusy}
	p := projectFixture(t, engine)

	err := p.StartPreview(context.Background(), 0, -1, false, 30, nil)
	assert.ErrorIs(t, err, render.ErrBusy)
}

func TestStopPreviewForwardsPosition(t *testing.T) {
	engine := &fakeEngine{stopPos: 42 * time.Second}
	p := projectFixture(t, engine)

	assert.Equal(t, 42*time.Second, p.StopPreview())
	assert.True(t, engine.stopped)
}

func TestOverlayDelegation(t *testing.T) {
	p := projectFixture(t, nil)

	overlay := &timeline.Overlay{ID: "title", Title: "Day One"}
	require.NoError(t, p.AddOverlay("a", overlay))
	assert.Same(t, overlay, p.Overlay("a"))

	assert.ErrorIs(t, p.AddOverlay("missing", overlay), timeline.ErrNotFound)
	assert.Nil(t, p.Overlay("missing"))

	// a new overlay replaces the active one
	second := &timeline.Overlay{ID: "title2"}
	require.NoError(t, p.AddOverlay("a", second))
	assert.Same(t, second, p.Overlay("a"))

	// removal is id-checked and tolerant
	p.RemoveOverlay("a", "title")
	assert.Same(t, second, p.Overlay("a"))
	p.RemoveOverlay("missing", "title2")
	p.RemoveOverlay("a", "title2")
	assert.Nil(t, p.Overlay("a"))
}

func TestEffectDelegation(t *testing.T) {
	p := projectFixture(t, nil)

	effect := &timeline.Effect{ID: "sepia", Kind: "sepia"}
	require.NoError(t, p.AddEffect("b", effect))
	assert.Same(t, effect, p.Effect("b"))

	assert.ErrorIs(t, p.AddEffect("missing", effect), timeline.ErrNotFound)
	assert.Nil(t, p.Effect("missing"))

	p.RemoveEffect("b", "sepia")
	assert.Nil(t, p.Effect("b"))
}

func TestScalarMetadata(t *testing.T) {
	p := New("holiday", nil)

	p.SetName("trip")
	p.SetTheme("surfing")
	p.SetZoomLevel(35)
	p.SetPlayhead(12 * time.Second)
	p.SetExportedMovieURI("file:///exports/trip.mp4")

	assert.Equal(t, "trip", p.Name())
	assert.Equal(t, "surfing", p.Theme())
	assert.Equal(t, 35, p.ZoomLevel())
	assert.Equal(t, 12*time.Second, p.Playhead())
	assert.Equal(t, "file:///exports/trip.mp4", p.ExportedMovieURI())
}
