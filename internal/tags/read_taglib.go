package tags

import (
	"time"

	"go.senan.xyz/taglib"
)

// readWithTaglib reads tags with TagLib, which covers every supported format.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
	}
	t.normalize()
	return t, nil
}

// durationWithTaglib reads the stream length from TagLib audio properties.
func durationWithTaglib(path string) (time.Duration, error) {
	props, err := taglib.ReadProperties(path)
	if err != nil {
		return 0, err
	}
	return props.Length, nil
}
