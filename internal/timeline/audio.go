package timeline

import "time"

// AudioTrack is an independent audio overlay on the project. Tracks are
// not chained to clips and carry no transitions.
type AudioTrack struct {
	ID       string
	Source   string
	Start    time.Duration
	Duration time.Duration
	Volume   int
	Muted    bool
	Loop     bool
}

// TrackSet is the flat collection of audio tracks, keyed by id.
// Iteration order is insertion order.
type TrackSet struct {
	tracks []*AudioTrack
}

func NewTrackSet() *TrackSet {
	return &TrackSet{}
}

// Add appends a track.
func (s *TrackSet) Add(track *AudioTrack) {
	s.tracks = append(s.tracks, track)
}

// Remove deletes the track with the given id. Missing ids are a no-op.
func (s *TrackSet) Remove(trackID string) {
	for i, track := range s.tracks {
		if track.ID == trackID {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			return
		}
	}
}

// Track returns the track with the given id, or nil.
func (s *TrackSet) Track(trackID string) *AudioTrack {
	for _, track := range s.tracks {
		if track.ID == trackID {
			return track
		}
	}
	return nil
}

// Tracks returns all tracks in insertion order.
func (s *TrackSet) Tracks() []*AudioTrack {
	return s.tracks
}

// SetTracks replaces the collection wholesale, as populated by the
// persistence layer.
func (s *TrackSet) SetTracks(tracks []*AudioTrack) {
	s.tracks = tracks
}

func (s *TrackSet) Len() int {
	return len(s.tracks)
}
