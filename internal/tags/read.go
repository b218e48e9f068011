package tags

import (
	"os"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
// dhowden/tag handles most files; format-specific readers take over when it
// fails, and TagLib is the last resort.
func Read(path string) (*Tag, error) {
	t, err := readDhowden(path)
	if err == nil {
		return t, nil
	}

	var fallback func(string) (*Tag, error)
	switch Ext(path) {
	case ExtMP3:
		// dhowden/tag has issues with some UTF-16 encoded ID3 tags
		fallback = readMP3WithID3v2
	case ExtFLAC:
		fallback = readFLACWithVorbis
	case ExtM4A, ExtMP4:
		// dhowden/tag can't parse some ffmpeg-created M4A files
		fallback = readM4AWithMP4Tag
	}
	if fallback != nil {
		if t, ferr := fallback(path); ferr == nil {
			return t, nil
		}
	}

	if t, terr := readWithTaglib(path); terr == nil {
		return t, nil
	}
	return nil, err
}

func readDhowden(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
	}
	t.normalize()
	return t, nil
}

// ReadOrDefault returns the file's tags, or a Tag carrying only the file
// name as title when nothing can be read.
func ReadOrDefault(path string) *Tag {
	if t, err := Read(path); err == nil {
		return t
	}
	t := &Tag{Path: path}
	t.normalize()
	return t
}
