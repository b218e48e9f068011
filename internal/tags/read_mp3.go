package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2 reads ID3v2 frames directly.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	t := &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: getID3TextFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
	}
	t.normalize()
	return t, nil
}

// getID3TextFrame returns the text of the first frame with the given ID.
func getID3TextFrame(tag *id3v2.Tag, id string) string {
	frame := tag.GetLastFrame(id)
	if frame == nil {
		return ""
	}
	if tf, ok := frame.(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// readMP3Picture returns the first attached picture of an MP3 file.
func readMP3Picture(path string) ([]byte, string, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, "", err
	}
	defer id3tag.Close()

	for _, f := range id3tag.GetFrames(id3tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		return pic.Picture, pic.MimeType, nil
	}
	return nil, "", nil
}
