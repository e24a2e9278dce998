package timeline

// Timeline is the ordered sequence of clips on the editing track.
// Insertion order is timeline order. All mutations keep the transition
// chain consistent: a transition between two adjacent clips is always
// referenced by exactly those two clips, the end side of the earlier
// and the begin side of the later.
//
// The timeline is not safe for concurrent use; callers serialize
// mutation on the authoring thread.
type Timeline struct {
	clips []*Clip
}

func New() *Timeline {
	return &Timeline{}
}

// Add appends a clip at the end of the timeline. The new clip's begin
// transition becomes the join with the previous last clip, replacing
// whatever end transition that clip carried. Always succeeds.
func (t *Timeline) Add(clip *Clip) {
	if n := len(t.clips); n > 0 {
		t.clips[n-1].End = clip.Begin
	}
	t.clips = append(t.clips, clip)
}

// Insert places clip immediately after the clip with id afterID, or at
// the head when afterID is empty. Transitions adjacent to the insertion
// point are invalidated: they no longer join the clips they were
// created for. The inserted clip's own transition fields are left as
// provided.
//
// Returns ErrNotFound when afterID is non-empty and no clip matches;
// the timeline is unchanged in that case.
func (t *Timeline) Insert(clip *Clip, afterID string) error {
	if afterID == "" {
		if len(t.clips) > 0 {
			// the opening transition has no meaning once a new clip
			// precedes the old first clip
			t.clips[0].Begin = nil
		}
		t.clips = append([]*Clip{clip}, t.clips...)
		return nil
	}

	for i, c := range t.clips {
		if c.ID != afterID {
			continue
		}
		c.End = nil
		if i < len(t.clips)-1 {
			t.clips[i+1].Begin = nil
		}

		t.clips = append(t.clips, nil)
		copy(t.clips[i+2:], t.clips[i+1:])
		t.clips[i+1] = clip
		return nil
	}

	return ErrNotFound
}

// Update replaces the clip sharing newClip's id, preserving its
// position. The replacement's transition fields become authoritative
// for both boundaries: the previous neighbor's end transition is set to
// newClip.Begin and the next neighbor's begin transition to newClip.End.
// Silently does nothing when no clip matches.
func (t *Timeline) Update(newClip *Clip) {
	for i, c := range t.clips {
		if c.ID != newClip.ID {
			continue
		}
		t.clips[i] = newClip
		if i > 0 {
			t.clips[i-1].End = newClip.Begin
		}
		if i < len(t.clips)-1 {
			t.clips[i+1].Begin = newClip.End
		}
		return
	}
}

// Remove deletes the clip with the given id. When replacement is
// non-nil it is installed as the join between the removed clip's former
// neighbors, anchored after the preceding clip (or as the opening
// transition when the head clip was removed). With no replacement, both
// neighbors are left transition-free at the gap. Missing ids are a
// no-op.
func (t *Timeline) Remove(clipID string, replacement *Transition) {
	prevID := ""
	for i, c := range t.clips {
		if c.ID != clipID {
			prevID = c.ID
			continue
		}

		t.clips = append(t.clips[:i], t.clips[i+1:]...)
		if replacement != nil {
			// fails only when the sole clip was removed, in which case
			// the replacement has nothing left to join
			_ = t.AddTransition(replacement, prevID)
			return
		}

		if i > 0 {
			t.clips[i-1].End = nil
		}
		if i < len(t.clips) {
			t.clips[i].Begin = nil
		}
		return
	}
}

// AddTransition binds tr as the join after the clip with id afterID:
// that clip's end transition and, when a successor exists, the
// successor's begin transition. An empty afterID attaches tr as the
// opening transition before the first clip.
//
// Returns ErrNotFound when afterID does not resolve, ErrEmptyTimeline
// when an opening transition is added to an empty timeline.
func (t *Timeline) AddTransition(tr *Transition, afterID string) error {
	if afterID == "" {
		if len(t.clips) == 0 {
			return ErrEmptyTimeline
		}
		t.clips[0].Begin = tr
		return nil
	}

	for i, c := range t.clips {
		if c.ID != afterID {
			continue
		}
		c.End = tr
		if i < len(t.clips)-1 {
			t.clips[i+1].Begin = tr
		}
		return nil
	}

	return ErrNotFound
}

// RemoveTransition detaches the transition with the given id from the
// timeline. Both sides of an interior join are cleared in the one call,
// so the chain invariant holds immediately after. Missing ids are a
// no-op.
func (t *Timeline) RemoveTransition(transitionID string) {
	for i, c := range t.clips {
		if c.Begin != nil && c.Begin.ID == transitionID {
			c.Begin = nil
			if i > 0 {
				if prev := t.clips[i-1]; prev.End != nil && prev.End.ID == transitionID {
					prev.End = nil
				}
			}
			return
		}
		if c.End != nil && c.End.ID == transitionID {
			c.End = nil
			if i < len(t.clips)-1 {
				if next := t.clips[i+1]; next.Begin != nil && next.Begin.ID == transitionID {
					next.Begin = nil
				}
			}
			return
		}
	}
}

// Transition returns the transition with the given id, or nil. The
// opening transition is checked first, then every clip's end side in
// timeline order.
func (t *Timeline) Transition(transitionID string) *Transition {
	first := t.First()
	if first == nil {
		return nil
	}
	if first.Begin != nil && first.Begin.ID == transitionID {
		return first.Begin
	}

	for _, c := range t.clips {
		if c.End != nil && c.End.ID == transitionID {
			return c.End
		}
	}
	return nil
}

// Clip returns the clip with the given id, or nil.
func (t *Timeline) Clip(clipID string) *Clip {
	for _, c := range t.clips {
		if c.ID == clipID {
			return c
		}
	}
	return nil
}

// Clips returns the clips in timeline order. The slice is shared with
// the timeline; callers must not reorder it.
func (t *Timeline) Clips() []*Clip {
	return t.clips
}

// SetClips attaches a clip sequence wholesale, as populated by the
// persistence layer. No chain normalization is performed.
func (t *Timeline) SetClips(clips []*Clip) {
	t.clips = clips
}

func (t *Timeline) Len() int {
	return len(t.clips)
}

// First returns the first clip, or nil when the timeline is empty.
func (t *Timeline) First() *Clip {
	if len(t.clips) == 0 {
		return nil
	}
	return t.clips[0]
}

// Last returns the last clip, or nil when the timeline is empty.
func (t *Timeline) Last() *Clip {
	if len(t.clips) == 0 {
		return nil
	}
	return t.clips[len(t.clips)-1]
}

// IsFirst reports whether the given id is the first clip's.
func (t *Timeline) IsFirst(clipID string) bool {
	first := t.First()
	return first != nil && first.ID == clipID
}

// IsLast reports whether the given id is the last clip's.
func (t *Timeline) IsLast(clipID string) bool {
	last := t.Last()
	return last != nil && last.ID == clipID
}
