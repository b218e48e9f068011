// Package tags reads the metadata the media store indexes: title, artist,
// album, duration and embedded cover art.
package tags

import (
	"path/filepath"
	"strings"

	"github.com/jetaudio/jetaudio/internal/ui/render"
)

// File extensions recognized as audio.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
	ExtWAV  = ".wav"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Tag holds the subset of file metadata the player needs.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
}

// IsMusicFile reports whether path has a supported audio extension.
func IsMusicFile(path string) bool {
	switch Ext(path) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4, ExtWAV:
		return true
	}
	return false
}

// Ext returns the lower-cased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// normalize fills defaults and strips control characters from text fields.
func (t *Tag) normalize() {
	t.Title = strings.TrimSpace(render.Sanitize(t.Title))
	t.Artist = strings.TrimSpace(render.Sanitize(t.Artist))
	t.AlbumArtist = strings.TrimSpace(render.Sanitize(t.AlbumArtist))
	t.Album = strings.TrimSpace(render.Sanitize(t.Album))

	if t.Title == "" {
		base := filepath.Base(t.Path)
		t.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for the first key that has one.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
