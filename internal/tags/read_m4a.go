package tags

import (
	"net/http"

	"github.com/Sorrow446/go-mp4tag"
)

// readM4AWithMP4Tag reads iTunes-style atoms with go-mp4tag.
func readM4AWithMP4Tag(path string) (*Tag, error) {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return nil, err
	}
	defer mp4.Close()

	m, err := mp4.Read()
	if err != nil {
		return nil, err
	}

	t := &Tag{
		Path:        path,
		Title:       m.Title,
		Artist:      m.Artist,
		AlbumArtist: m.AlbumArtist,
		Album:       m.Album,
	}
	t.normalize()
	return t, nil
}

// readM4APicture returns the first cover atom of an M4A file.
func readM4APicture(path string) ([]byte, string, error) {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer mp4.Close()

	m, err := mp4.Read()
	if err != nil {
		return nil, "", err
	}
	for _, pic := range m.Pictures {
		if pic == nil || len(pic.Data) == 0 {
			continue
		}
		return pic.Data, http.DetectContentType(pic.Data), nil
	}
	return nil, "", nil
}
