package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// m4aDecoder reads samples from an MP4 container and decodes them with
// faad2 (AAC) or alac (Apple Lossless).
type m4aDecoder struct {
	container *m4a.Reader
	closer    io.Closer
	codec     m4a.CodecType
	rate      int
	channels  int
	bits      int
	total     int
	next      int // next container sample index
	err       error

	aac   *faad2.Decoder
	alac  *alac.Alac
	frame [][2]float64 // decoded frames not yet streamed
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	d := &m4aDecoder{
		container: container,
		closer:    rc,
		codec:     container.Codec(),
		rate:      int(container.SampleRate()),
		channels:  int(container.Channels()),
		bits:      int(container.SampleSize()),
	}
	d.total = int(container.Duration().Seconds() * float64(d.rate))

	precision := 2
	switch d.codec {
	case m4a.CodecAAC:
		ctx := context.Background()
		dec, err := faad2.NewDecoder(ctx)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if err := dec.Init(ctx, container.CodecConfig()); err != nil {
			dec.Close(ctx)
			return nil, beep.Format{}, fmt.Errorf("aac init: %w", err)
		}
		d.aac = dec
	case m4a.CodecALAC:
		dec, err := alac.NewWithConfig(alac.Config{
			SampleRate:  d.rate,
			SampleSize:  d.bits,
			NumChannels: d.channels,
			FrameSize:   4096,
		})
		if err != nil {
			return nil, beep.Format{}, err
		}
		d.alac = dec
		if d.bits == 24 {
			precision = 3
		}
	default:
		return nil, beep.Format{}, errors.New("m4a: unsupported codec")
	}

	format := beep.Format{SampleRate: beep.SampleRate(d.rate), NumChannels: 2, Precision: precision}
	return d, format, nil
}

func (d *m4aDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && d.err == nil {
		if len(d.frame) > 0 {
			c := copy(samples[n:], d.frame)
			d.frame = d.frame[c:]
			n += c
			continue
		}
		if d.next >= d.container.SampleCount() {
			break
		}
		if err := d.decodeNext(); err != nil {
			d.err = err
		}
	}
	return n, n > 0
}

func (d *m4aDecoder) decodeNext() error {
	data, err := d.container.ReadSample(d.next)
	if err != nil {
		return err
	}
	d.next++

	if d.aac != nil {
		pcm, err := d.aac.Decode(context.Background(), data)
		if err != nil {
			return err
		}
		d.frame = int16Frames(pcm, d.channels)
		return nil
	}
	d.frame = alacFrames(d.alac.Decode(data), d.channels, d.bits)
	return nil
}

// int16Frames converts interleaved PCM to stereo frames, duplicating mono.
func int16Frames(pcm []int16, channels int) [][2]float64 {
	channels = max(channels, 1)
	frames := make([][2]float64, len(pcm)/channels)
	for i := range frames {
		l := float64(pcm[i*channels]) / 32768
		r := l
		if channels > 1 {
			r = float64(pcm[i*channels+1]) / 32768
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

// alacFrames converts little-endian 16 or 24-bit PCM bytes to stereo frames.
func alacFrames(data []byte, channels, bits int) [][2]float64 {
	channels = max(channels, 1)
	width := 2
	scale := 32768.0
	if bits == 24 {
		width = 3
		scale = 8388608
	}
	sample := func(off int) float64 {
		var v int32
		if width == 3 {
			v = int32(data[off]) | int32(data[off+1])<<8 | int32(int8(data[off+2]))<<16
		} else {
			v = int32(int16(uint16(data[off]) | uint16(data[off+1])<<8)) //nolint:gosec // sample bits
		}
		return float64(v) / scale
	}

	step := width * channels
	frames := make([][2]float64, len(data)/step)
	for i := range frames {
		off := i * step
		l := sample(off)
		r := l
		if channels > 1 {
			r = sample(off + width)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames
}

func (d *m4aDecoder) Err() error { return d.err }

func (d *m4aDecoder) Len() int { return d.total }

func (d *m4aDecoder) Position() int {
	pos := d.container.SampleTime(d.next) - d.samplesToDuration(len(d.frame))
	return max(int(pos.Seconds()*float64(d.rate)), 0)
}

func (d *m4aDecoder) samplesToDuration(n int) time.Duration {
	return time.Duration(float64(n) / float64(d.rate) * float64(time.Second))
}

func (d *m4aDecoder) Seek(p int) error {
	p = min(max(p, 0), d.total)
	d.next = d.container.SeekToTime(d.samplesToDuration(p))
	d.frame = nil
	d.err = nil
	return nil
}

func (d *m4aDecoder) Close() error {
	if d.aac != nil {
		d.aac.Close(context.Background())
	}
	return d.closer.Close()
}
