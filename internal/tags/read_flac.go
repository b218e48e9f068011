package tags

import (
	"errors"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

var errNoVorbisComment = errors.New("flac: no vorbis comment block")

// readFLACWithVorbis reads the Vorbis comment block of a FLAC file.
func readFLACWithVorbis(path string) (*Tag, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, err
		}
		t := &Tag{
			Path:        path,
			Title:       firstComment(cmts, flacvorbis.FIELD_TITLE),
			Artist:      firstComment(cmts, flacvorbis.FIELD_ARTIST),
			AlbumArtist: firstComment(cmts, "ALBUMARTIST"),
			Album:       firstComment(cmts, flacvorbis.FIELD_ALBUM),
		}
		t.normalize()
		return t, nil
	}
	return nil, errNoVorbisComment
}

func firstComment(cmts *flacvorbis.MetaDataBlockVorbisComment, key string) string {
	values, err := cmts.Get(key)
	if err != nil || len(values) == 0 {
		return ""
	}
	return values[0]
}

// readFLACPicture returns the front cover (or first picture) of a FLAC file.
func readFLACPicture(path string) ([]byte, string, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, "", err
	}

	var fallback *flacpicture.MetadataBlockPicture
	for _, meta := range f.Meta {
		if meta.Type != goflac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		if pic.PictureType == flacpicture.PictureTypeFrontCover {
			return pic.ImageData, pic.MIME, nil
		}
		if fallback == nil {
			fallback = pic
		}
	}
	if fallback != nil {
		return fallback.ImageData, fallback.MIME, nil
	}
	return nil, "", nil
}
