// Package audio defines the audio track record shared by the media store,
// the playback session and the UI.
package audio

import (
	"net/url"
	"path/filepath"
)

// UnknownDuration marks a track whose length could not be determined.
const UnknownDuration = -1

// Audio is an immutable description of a local audio file.
// Values are built from media store rows and never modified afterwards.
type Audio struct {
	URI         string // file:// location of the track
	DisplayName string // file base name
	ID          int64
	Artist      string
	Data        string // absolute file path
	Duration    int    // milliseconds, negative when unknown
	Title       string
}

// New builds an Audio from the raw fields of a media store row.
// The URI is derived from the path.
func New(id int64, path, title, artist string, durationMS int) Audio {
	return Audio{
		URI:         FileURI(path),
		DisplayName: filepath.Base(path),
		ID:          id,
		Artist:      artist,
		Data:        path,
		Duration:    durationMS,
		Title:       title,
	}
}

// IsZero reports whether a is the zero record (no track).
func (a Audio) IsZero() bool {
	return a == Audio{}
}

// HasDuration reports whether the duration is known.
func (a Audio) HasDuration() bool {
	return a.Duration >= 0
}

// FileURI returns the file:// URL for an absolute path.
func FileURI(path string) string {
	if path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
