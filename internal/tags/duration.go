package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	goflac "github.com/go-flac/go-flac"
	"github.com/llehouerou/go-m4a"
	"github.com/llehouerou/go-mp3"
)

// ErrUnsupportedFormat is returned for files without a known audio extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Duration returns the stream length of an audio file.
// It reads container headers rather than decoding where the format allows.
func Duration(path string) (time.Duration, error) {
	var (
		d   time.Duration
		err error
	)
	switch Ext(path) {
	case ExtMP3:
		d, err = mp3Duration(path)
	case ExtFLAC:
		d, err = flacDuration(path)
	case ExtM4A, ExtMP4:
		d, err = m4aDuration(path)
	case ExtOPUS, ExtOGG, ExtOGA, ExtWAV:
		return durationWithTaglib(path)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, Ext(path))
	}
	if err != nil {
		return durationWithTaglib(path)
	}
	return d, nil
}

// DurationMillis returns the duration in milliseconds, or -1 when unknown.
func DurationMillis(path string) int {
	d, err := Duration(path)
	if err != nil || d <= 0 {
		return -1
	}
	return int(d.Milliseconds())
}

func mp3Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return 0, err
	}
	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return 0, errors.New("mp3: invalid sample rate")
	}
	sampleCount := max(decoder.SampleCount(), 0)
	return time.Duration(float64(sampleCount) / float64(sampleRate) * float64(time.Second)), nil
}

// flacDuration reads sample rate and total samples from the STREAMINFO block.
func flacDuration(path string) (time.Duration, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return 0, err
	}
	for _, meta := range f.Meta {
		if meta.Type != goflac.StreamInfo || len(meta.Data) < 18 {
			continue
		}
		data := meta.Data
		// Bytes 10-12: sample rate (20 bits); bytes 13-17: total samples (36 bits).
		sampleRate := int(data[10])<<12 | int(data[11])<<4 | int(data[12])>>4
		totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])
		if sampleRate == 0 {
			return 0, errors.New("flac: invalid sample rate")
		}
		return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second)), nil
	}
	return 0, errors.New("flac: no streaminfo block")
}

func m4aDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	container, err := m4a.Open(f)
	if err != nil {
		return 0, err
	}
	return container.Duration(), nil
}

// SkipID3v2 positions r after a leading ID3v2 tag, or at the start if none.
// Some taggers prepend ID3v2 to FLAC files, which FLAC decoders reject.
func SkipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
