package project

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkalvas/montage/internal/render"
)

// name of the metadata file inside a project directory
const MetadataFilename = "metadata.xml"

// on-disk metadata schema; clip, transition and audio track collections
// are persisted by a separate mechanism
type projectXML struct {
	XMLName   xml.Name  `xml:"project"`
	Name      string    `xml:"name,attr,omitempty"`
	Theme     string    `xml:"theme,attr,omitempty"`
	Playhead  int64     `xml:"playhead,attr"`
	Duration  int64     `xml:"duration,attr"`
	ZoomLevel int       `xml:"zoom_level,attr"`
	Saved     int64     `xml:"saved,attr"`
	Movie     *movieXML `xml:"movie,omitempty"`
}

type movieXML struct {
	URI string `xml:"uri,attr"`
}

// Load reconstructs a project's scalar metadata from dir. The timeline
// and track collections come back empty; the caller attaches them
// separately. engine may be nil.
func Load(dir string, engine render.Engine) (*Project, error) {
	path := filepath.Join(dir, MetadataFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project metadata: %w", err)
	}

	var meta projectXML
	if err := xml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse project metadata: %w", err)
	}

	p := New(meta.Name, engine)
	p.theme = meta.Theme
	p.playhead = time.Duration(meta.Playhead) * time.Millisecond
	p.savedDuration = time.Duration(meta.Duration) * time.Millisecond
	if meta.Saved > 0 {
		p.lastSaved = time.UnixMilli(meta.Saved)
	}
	if meta.ZoomLevel > 0 {
		p.zoomLevel = meta.ZoomLevel
	}
	if meta.Movie != nil {
		p.exportedMovieURI = meta.Movie.URI
	}

	return p, nil
}

// Save writes the project metadata to dir, stamping a fresh last-saved
// time and the live computed duration rather than the value read at
// load time.
func (p *Project) Save(dir string) error {
	p.lastSaved = time.Now()

	meta := projectXML{
		Name:      p.name,
		Theme:     p.theme,
		Playhead:  p.playhead.Milliseconds(),
		Duration:  p.timeline.Duration().Milliseconds(),
		ZoomLevel: p.zoomLevel,
		Saved:     p.lastSaved.UnixMilli(),
	}
	if p.exportedMovieURI != "" {
		meta.Movie = &movieXML{URI: p.exportedMovieURI}
	}

	data, err := xml.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize project metadata: %w", err)
	}
	data = append([]byte(xml.Header), data...)

	path := filepath.Join(dir, MetadataFilename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project metadata: %w", err)
	}

	return nil
}
