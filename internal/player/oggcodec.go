package player

import (
	"encoding/binary"
	"errors"

	"github.com/jfreymuth/vorbis"
	"github.com/jj11hh/opus"
)

const opusSampleRate = 48000

var (
	errUnknownOggCodec = errors.New("ogg: stream is neither Opus nor Vorbis")
	errOpusHead        = errors.New("opus: invalid OpusHead packet")
	errVorbisHeader    = errors.New("vorbis: invalid identification header")
	errVorbisNotReady  = errors.New("vorbis: setup headers missing")
)

// oggCodec decodes the packets of one logical Ogg stream.
type oggCodec interface {
	SampleRate() int
	Channels() int
	// PreSkip is the number of decoded samples to drop at stream start.
	PreSkip() int
	// HeaderPacket consumes a header packet following the identification
	// header and reports whether the codec is ready to decode audio.
	HeaderPacket(packet []byte) (ready bool, err error)
	// Decode writes interleaved samples to pcm and returns samples per channel.
	Decode(packet []byte, pcm []float32) (int, error)
	// MaxFrame is the largest number of samples per channel in one packet.
	MaxFrame() int
	// Reset clears inter-packet state after a seek.
	Reset()
}

// newOggCodec inspects the identification packet of a stream.
func newOggCodec(ident []byte) (oggCodec, error) {
	switch {
	case len(ident) >= 8 && string(ident[:8]) == "OpusHead":
		return newOpusCodec(ident)
	case len(ident) >= 7 && ident[0] == 0x01 && string(ident[1:7]) == "vorbis":
		return newVorbisCodec(ident)
	default:
		return nil, errUnknownOggCodec
	}
}

type opusCodec struct {
	decoder  *opus.Decoder
	channels int
	preSkip  int
}

// newOpusCodec parses OpusHead: magic(8) version(1) channels(1)
// pre-skip(2) input rate(4) gain(2) mapping(1).
func newOpusCodec(head []byte) (*opusCodec, error) {
	if len(head) < 19 || head[8] != 1 || head[9] == 0 {
		return nil, errOpusHead
	}
	channels := int(head[9])
	dec, err := opus.NewDecoder(opusSampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &opusCodec{
		decoder:  dec,
		channels: channels,
		preSkip:  int(binary.LittleEndian.Uint16(head[10:12])),
	}, nil
}

func (c *opusCodec) SampleRate() int { return opusSampleRate }
func (c *opusCodec) Channels() int   { return c.channels }
func (c *opusCodec) PreSkip() int    { return c.preSkip }
func (c *opusCodec) MaxFrame() int   { return 5760 } // 120 ms at 48 kHz

// HeaderPacket accepts the OpusTags packet.
func (c *opusCodec) HeaderPacket([]byte) (bool, error) {
	return true, nil
}

func (c *opusCodec) Decode(packet []byte, pcm []float32) (int, error) {
	return c.decoder.DecodeFloat32(packet, pcm)
}

// Reset is a no-op: the decoder converges after the seek pre-roll.
func (c *opusCodec) Reset() {}

type vorbisCodec struct {
	decoder  vorbis.Decoder
	channels int
	rate     int
	headers  int
}

// newVorbisCodec parses the identification header: type(1) "vorbis"(6)
// version(4) channels(1) rate(4).
func newVorbisCodec(ident []byte) (*vorbisCodec, error) {
	if len(ident) < 16 || binary.LittleEndian.Uint32(ident[7:11]) != 0 || ident[11] == 0 {
		return nil, errVorbisHeader
	}
	c := &vorbisCodec{
		channels: int(ident[11]),
		rate:     int(binary.LittleEndian.Uint32(ident[12:16])),
	}
	if err := c.decoder.ReadHeader(ident); err != nil {
		return nil, err
	}
	c.headers = 1
	return c, nil
}

func (c *vorbisCodec) SampleRate() int { return c.rate }
func (c *vorbisCodec) Channels() int   { return c.channels }
func (c *vorbisCodec) PreSkip() int    { return 0 }
func (c *vorbisCodec) MaxFrame() int   { return 8192 }

// HeaderPacket consumes the comment and setup headers.
func (c *vorbisCodec) HeaderPacket(packet []byte) (bool, error) {
	if c.headers >= 3 {
		return true, nil
	}
	if err := c.decoder.ReadHeader(packet); err != nil {
		return false, err
	}
	c.headers++
	return c.headers == 3, nil
}

func (c *vorbisCodec) Decode(packet []byte, pcm []float32) (int, error) {
	if c.headers < 3 {
		return 0, errVorbisNotReady
	}
	out, err := c.decoder.Decode(packet)
	if err != nil {
		return 0, err
	}
	return copy(pcm, out) / c.channels, nil
}

func (c *vorbisCodec) Reset() {
	c.decoder.Clear()
}
