package tags

import (
	"os"

	"github.com/dhowden/tag"
)

// Picture returns embedded cover art and its MIME type.
// Returns nil data and no error when the file carries no picture.
func Picture(path string) ([]byte, string, error) {
	if data, mime, err := pictureDhowden(path); err == nil && len(data) > 0 {
		return data, mime, nil
	}

	switch Ext(path) {
	case ExtMP3:
		return readMP3Picture(path)
	case ExtFLAC:
		return readFLACPicture(path)
	case ExtM4A, ExtMP4:
		return readM4APicture(path)
	}
	return nil, "", nil
}

func pictureDhowden(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, "", err
	}
	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}
	return pic.Data, pic.MIMEType, nil
}
