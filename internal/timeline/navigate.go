package timeline

import "time"

// Previous returns the clip before the one with the given id, or nil at
// the head or when the id is absent.
func (t *Timeline) Previous(clipID string) *Clip {
	var prev *Clip
	for _, c := range t.clips {
		if c.ID == clipID {
			break
		}
		prev = c
	}
	return prev
}

// Next returns the clip after the one with the given id, or nil at the
// tail or when the id is absent.
func (t *Timeline) Next(clipID string) *Clip {
	found := false
	for _, c := range t.clips {
		if found {
			return c
		}
		if c.ID == clipID {
			found = true
		}
	}
	return nil
}

// BeforeTransition returns the clip whose end side holds the given
// transition. Nil for the opening transition, which has no predecessor.
func (t *Timeline) BeforeTransition(tr *Transition) *Clip {
	for i, c := range t.clips {
		if i == 0 && c.Begin == tr {
			return nil
		}
		if c.End == tr {
			return c
		}
	}
	return nil
}

// PreviousAt returns the clip containing pos, or the last clip starting
// strictly before pos. Effective start times account for transition
// overlap: each clip's end transition shortens the span it contributes.
func (t *Timeline) PreviousAt(pos time.Duration) *Clip {
	var start time.Duration
	var prev *Clip
	for _, c := range t.clips {
		if pos == start {
			break
		}
		if pos > start && pos < start+c.TimelineDuration {
			return c
		}
		prev = c
		start += c.TimelineDuration - endTransitionDuration(c)
	}
	return prev
}

// NextAt returns the clip after the one containing pos. When pos falls
// inside the containing clip's outgoing transition, the playhead is
// already blending into the following clip, so the clip after that one
// is returned instead.
func (t *Timeline) NextAt(pos time.Duration) *Clip {
	var start time.Duration
	n := len(t.clips)
	for i, c := range t.clips {
		switch {
		case pos >= start && pos < start+c.TimelineDuration-endTransitionDuration(c):
			if i < n-1 {
				return t.clips[i+1]
			}
			return nil
		case pos >= start && pos < start+c.TimelineDuration:
			if i < n-2 {
				return t.clips[i+2]
			}
			return nil
		default:
			start += c.TimelineDuration - endTransitionDuration(c)
		}
	}
	return nil
}

// InsertAfterAt resolves the clip after which a new clip would be
// inserted for a drop at the given time. Within the spanning clip the
// decision is by proximity: closer to its beginning means insert before
// it (the previous clip is returned), closer to its end means insert
// after it. Equal distance resolves to insert after. Nil means insert
// at the head.
func (t *Timeline) InsertAfterAt(at time.Duration) *Clip {
	var begin, end time.Duration
	var prev *Clip
	n := len(t.clips)
	for i, c := range t.clips {
		end = begin + c.TimelineDuration
		if c.End != nil && i < n-1 {
			end -= c.End.Duration
		}

		if at >= begin && at <= end {
			if at-begin < end-at {
				return prev
			}
			return c
		}

		begin = end
		prev = c
	}
	return nil
}

// BeginTime returns the effective start time of the clip with the given
// id: the sum of every earlier clip's timeline duration minus the
// transition overlap consumed between them.
func (t *Timeline) BeginTime(clipID string) time.Duration {
	var begin time.Duration
	n := len(t.clips)
	for i, c := range t.clips {
		if c.ID == clipID {
			break
		}
		begin += c.TimelineDuration
		if c.End != nil && i < n-1 {
			begin -= c.End.Duration
		}
	}
	return begin
}

// Duration computes the total timeline duration: the sum of all clip
// durations minus every end transition's overlap. The last clip's end
// transition does not shorten the total since nothing follows it to
// overlap with.
func (t *Timeline) Duration() time.Duration {
	var total time.Duration
	n := len(t.clips)
	for i, c := range t.clips {
		total += c.TimelineDuration
		if c.End != nil && i < n-1 {
			total -= c.End.Duration
		}
	}
	return total
}

// HasMultipleAspectRatios reports whether the clips disagree on aspect
// ratio. Undefined ratios seed the comparison rather than counting as a
// distinct value.
func (t *Timeline) HasMultipleAspectRatios() bool {
	ratio := AspectRatioUndefined
	for _, c := range t.clips {
		if ratio == AspectRatioUndefined {
			ratio = c.AspectRatio
		} else if c.AspectRatio != ratio {
			return true
		}
	}
	return false
}

// UniqueAspectRatios returns the distinct aspect ratios across all
// clips, in first-encountered order.
func (t *Timeline) UniqueAspectRatios() []AspectRatio {
	var ratios []AspectRatio
	for _, c := range t.clips {
		seen := false
		for _, r := range ratios {
			if r == c.AspectRatio {
				seen = true
				break
			}
		}
		if !seen {
			ratios = append(ratios, c.AspectRatio)
		}
	}
	return ratios
}
