package player

import (
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
)

// opusPreRoll is decoded and dropped before a seek target so the Opus
// decoder state has converged (80 ms at 48 kHz).
const opusPreRoll = 3840

// oggDecoder streams an Ogg Opus or Ogg Vorbis file.
// Positions are in output samples, with the codec pre-skip removed.
type oggDecoder struct {
	rs      io.ReadSeekCloser
	codec   oggCodec
	packets *oggPacketReader
	index   oggPageIndex

	pcm     []float32
	pcmPos  int // next unread value in pcm
	discard int // samples still to drop before output
	pos     int
	total   int
	err     error
}

func decodeOgg(rs io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, error) {
	packets := &oggPacketReader{r: rs}
	ident, err := packets.next()
	if err != nil {
		return nil, beep.Format{}, err
	}
	codec, err := newOggCodec(ident)
	if err != nil {
		return nil, beep.Format{}, err
	}
	for ready := false; !ready; {
		pkt, err := packets.next()
		if err != nil {
			return nil, beep.Format{}, err
		}
		if ready, err = codec.HeaderPacket(pkt); err != nil {
			return nil, beep.Format{}, err
		}
	}

	// Headers end on a page boundary, so audio pages start here.
	dataStart, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, beep.Format{}, err
	}
	index, err := indexOggPages(rs)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if _, err := rs.Seek(dataStart, io.SeekStart); err != nil {
		return nil, beep.Format{}, err
	}
	packets.reset()

	d := &oggDecoder{
		rs:      rs,
		codec:   codec,
		packets: packets,
		index:   index,
		pcm:     make([]float32, 0, codec.MaxFrame()*codec.Channels()),
		discard: codec.PreSkip(),
		total:   max(int(index.lastGranule())-codec.PreSkip(), 0),
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(codec.SampleRate()),
		NumChannels: min(codec.Channels(), 2),
		Precision:   2,
	}
	return d, format, nil
}

func (d *oggDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	ch := d.codec.Channels()
	for n < len(samples) {
		if d.pcmPos >= len(d.pcm) {
			if !d.refill() {
				break
			}
			continue
		}
		l := float64(d.pcm[d.pcmPos])
		r := l
		if ch > 1 {
			r = float64(d.pcm[d.pcmPos+1])
		}
		d.pcmPos += ch
		if d.discard > 0 {
			d.discard--
			continue
		}
		samples[n] = [2]float64{l, r}
		n++
		d.pos++
	}
	return n, n > 0
}

// refill decodes the next packet. It returns false at end of stream or on
// a read error; undecodable packets are skipped.
func (d *oggDecoder) refill() bool {
	for d.err == nil {
		pkt, err := d.packets.next()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				d.err = err
			}
			return false
		}
		n, err := d.codec.Decode(pkt, d.pcm[:cap(d.pcm)])
		if err != nil || n == 0 {
			continue
		}
		d.pcm = d.pcm[:n*d.codec.Channels()]
		d.pcmPos = 0
		return true
	}
	return false
}

func (d *oggDecoder) Err() error    { return d.err }
func (d *oggDecoder) Len() int      { return d.total }
func (d *oggDecoder) Position() int { return d.pos }

// Seek restarts decoding from the page before p and drops samples up to p.
func (d *oggDecoder) Seek(p int) error {
	p = min(max(p, 0), d.total)
	preSkip := d.codec.PreSkip()

	target := int64(p + preSkip)
	if _, isOpus := d.codec.(*opusCodec); isOpus {
		target = max(target-opusPreRoll, 0)
	}
	offset, startGranule := d.index.before(target)
	if _, err := d.rs.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	d.packets.reset()
	d.codec.Reset()
	d.pcm = d.pcm[:0]
	d.pcmPos = 0
	d.err = nil

	// Samples decoded from here begin at startGranule (pre-skip included).
	d.discard = max(p+preSkip-int(startGranule), 0)
	d.pos = p
	return nil
}

func (d *oggDecoder) Close() error {
	return d.rs.Close()
}
