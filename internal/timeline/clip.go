package timeline

import "time"

// aspect ratio of a media item
type AspectRatio int

const (
	AspectRatioUndefined AspectRatio = iota
	AspectRatio3x2
	AspectRatio4x3
	AspectRatio5x3
	AspectRatio11x9
	AspectRatio16x9
)

func (a AspectRatio) String() string {
	switch a {
	case AspectRatio3x2:
		return "3:2"
	case AspectRatio4x3:
		return "4:3"
	case AspectRatio5x3:
		return "5:3"
	case AspectRatio11x9:
		return "11:9"
	case AspectRatio16x9:
		return "16:9"
	default:
		return "undefined"
	}
}

// kind of transition between two adjacent clips
type TransitionKind string

const (
	TransitionCrossfade TransitionKind = "crossfade"
	TransitionWipe      TransitionKind = "wipe"
	TransitionFadeBlack TransitionKind = "fade-black"
	TransitionSlide     TransitionKind = "slide"
)

// Transition is a timed overlap joining two adjacent clips. It consumes
// shared duration from the clips on either side rather than adding time
// to the timeline.
type Transition struct {
	ID       string
	Kind     TransitionKind
	Duration time.Duration
}

// text or image layered over a clip
type Overlay struct {
	ID       string
	Start    time.Duration
	Duration time.Duration
	Title    string
	Subtitle string
}

// visual effect applied to a clip
type Effect struct {
	ID       string
	Kind     string
	Start    time.Duration
	Duration time.Duration
}

// Clip is a single media item occupying a contiguous span on the
// timeline. Begin and End hold the transitions joining it to its
// neighbors; either may be nil. The timeline maintains the pairing so
// that adjacent clips always share the same transition instance.
type Clip struct {
	ID string

	// path to the source media, used for per-clip rendering and probing
	Source string

	// duration this clip occupies on the timeline before transition overlap
	TimelineDuration time.Duration

	AspectRatio AspectRatio

	Begin *Transition
	End   *Transition

	overlay *Overlay
	effect  *Effect
}

// AddOverlay sets the clip's active overlay, replacing any previous one.
func (c *Clip) AddOverlay(o *Overlay) {
	c.overlay = o
}

// RemoveOverlay clears the active overlay if its id matches. No-op
// otherwise.
func (c *Clip) RemoveOverlay(overlayID string) {
	if c.overlay != nil && c.overlay.ID == overlayID {
		c.overlay = nil
	}
}

// Overlay returns the active overlay, or nil.
func (c *Clip) Overlay() *Overlay {
	return c.overlay
}

// AddEffect sets the clip's active effect, replacing any previous one.
func (c *Clip) AddEffect(e *Effect) {
	c.effect = e
}

// RemoveEffect clears the active effect if its id matches. No-op
// otherwise.
func (c *Clip) RemoveEffect(effectID string) {
	if c.effect != nil && c.effect.ID == effectID {
		c.effect = nil
	}
}

// Effect returns the active effect, or nil.
func (c *Clip) Effect() *Effect {
	return c.effect
}

// duration the clip's end transition consumes, or zero
func endTransitionDuration(c *Clip) time.Duration {
	if c.End != nil {
		return c.End.Duration
	}
	return 0
}
