package timeline

import "errors"

var (
	// ErrNotFound is returned by operations that need an existing clip
	// to anchor to. Removals and lookups never return it; a missing id
	// there is a silent no-op.
	ErrNotFound = errors.New("clip not found")

	// ErrEmptyTimeline is returned when an opening transition is added
	// to a timeline with no clips.
	ErrEmptyTimeline = errors.New("timeline has no clips")
)
