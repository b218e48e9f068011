package player

import (
	"fmt"
	"os"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"

	"github.com/jetaudio/jetaudio/internal/tags"
)

// openDecoder opens path and returns a streamer for its audio.
// The streamer owns the file and closes it on Close.
func openDecoder(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := tags.Ext(path)
	if !tags.IsMusicFile(path) {
		return nil, beep.Format{}, fmt.Errorf("%w: %s", tags.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case tags.ExtMP3:
		streamer, format, err = decodeMP3(f)
	case tags.ExtFLAC:
		// Some taggers prepend ID3v2 to FLAC files.
		if err = tags.SkipID3v2(f); err == nil {
			streamer, format, err = flac.Decode(f)
		}
	case tags.ExtWAV:
		streamer, format, err = wav.Decode(f)
	case tags.ExtOPUS, tags.ExtOGG, tags.ExtOGA:
		streamer, format, err = decodeOgg(f)
	case tags.ExtM4A, tags.ExtMP4:
		streamer, format, err = decodeM4A(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, err
	}
	return streamer, format, nil
}
