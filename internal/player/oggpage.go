package player

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	errOggCapture = errors.New("ogg: missing OggS capture pattern")
	errOggVersion = errors.New("ogg: unsupported stream structure version")
)

const (
	oggHeaderSize    = 27
	oggFlagContinued = 0x01
)

// oggPage is one parsed Ogg page.
type oggPage struct {
	granule   int64
	continued bool     // first packet continues the previous page's last one
	packets   [][]byte // complete packets (the first may be a continuation)
	tail      []byte   // trailing packet that continues on the next page
}

// oggPageHeader reads the fixed header and segment table of a page and
// returns the granule position, flags and body size.
func oggPageHeader(r io.Reader) (granule int64, flags byte, segments []byte, err error) {
	var hdr [oggHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, 0, nil, err
	}
	if string(hdr[:4]) != "OggS" {
		return 0, 0, nil, errOggCapture
	}
	if hdr[4] != 0 {
		return 0, 0, nil, errOggVersion
	}
	segments = make([]byte, hdr[26])
	if _, err := io.ReadFull(r, segments); err != nil {
		return 0, 0, nil, err
	}
	granule = int64(binary.LittleEndian.Uint64(hdr[6:14])) //nolint:gosec // -1 marks "no packet ends here"
	return granule, hdr[5], segments, nil
}

func bodySize(segments []byte) int {
	size := 0
	for _, s := range segments {
		size += int(s)
	}
	return size
}

// readOggPage reads a full page and splits its body into packets.
// A packet ends at the first lacing value below 255.
func readOggPage(r io.Reader) (*oggPage, error) {
	granule, flags, segments, err := oggPageHeader(r)
	if err != nil {
		return nil, err
	}
	body := make([]byte, bodySize(segments))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	page := &oggPage{granule: granule, continued: flags&oggFlagContinued != 0}
	start, off := 0, 0
	for _, s := range segments {
		off += int(s)
		if s < 255 {
			page.packets = append(page.packets, body[start:off])
			start = off
		}
	}
	if start < len(body) {
		page.tail = body[start:]
	}
	return page, nil
}

// oggPacketReader yields whole packets, joining those that span pages.
type oggPacketReader struct {
	r       io.Reader
	queue   [][]byte
	pending []byte // incomplete packet carried from the previous page
	granule int64  // granule of the last page read
}

func (pr *oggPacketReader) next() ([]byte, error) {
	for len(pr.queue) == 0 {
		page, err := readOggPage(pr.r)
		if err != nil {
			return nil, err
		}
		pr.granule = page.granule
		pr.push(page)
	}
	pkt := pr.queue[0]
	pr.queue = pr.queue[1:]
	return pkt, nil
}

func (pr *oggPacketReader) push(page *oggPage) {
	packets := page.packets
	if page.continued {
		switch {
		case pr.pending == nil && len(packets) > 0:
			// Continuation of a packet whose start we never saw (after a seek).
			packets = packets[1:]
		case pr.pending == nil:
			page.tail = nil
		case len(packets) > 0:
			packets[0] = append(pr.pending, packets[0]...)
		default:
			page.tail = append(pr.pending, page.tail...)
		}
	}
	pr.pending = nil
	pr.queue = append(pr.queue, packets...)
	if page.tail != nil {
		pr.pending = append([]byte(nil), page.tail...)
	}
}

// reset drops buffered packets, e.g. after the underlying reader seeked.
func (pr *oggPacketReader) reset() {
	pr.queue = nil
	pr.pending = nil
}

// oggPageIndex records where each audio page starts and the granule at its
// end. It backs duration and seeking without decoding audio.
type oggPageIndex struct {
	offsets  []int64
	granules []int64
}

// indexOggPages walks page headers from the current offset to EOF.
func indexOggPages(rs io.ReadSeeker) (oggPageIndex, error) {
	var idx oggPageIndex
	off, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return idx, err
	}
	for {
		granule, _, segments, err := oggPageHeader(rs)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return idx, nil
		}
		if err != nil {
			return idx, err
		}
		idx.offsets = append(idx.offsets, off)
		idx.granules = append(idx.granules, granule)
		next, err := rs.Seek(int64(bodySize(segments)), io.SeekCurrent)
		if err != nil {
			return idx, err
		}
		off = next
	}
}

// lastGranule returns the highest valid granule position, or 0.
func (idx oggPageIndex) lastGranule() int64 {
	for i := len(idx.granules) - 1; i >= 0; i-- {
		if idx.granules[i] >= 0 {
			return idx.granules[i]
		}
	}
	return 0
}

// before returns the offset of the first page to read so that decoding
// starts at or before granule, and the granule already complete at that
// point (0 for the first page).
func (idx oggPageIndex) before(granule int64) (offset, startGranule int64) {
	if len(idx.offsets) == 0 {
		return 0, 0
	}
	offset = idx.offsets[0]
	for i := range idx.offsets {
		g := idx.granules[i]
		if g < 0 {
			continue
		}
		if g >= granule || i+1 >= len(idx.offsets) {
			break
		}
		offset, startGranule = idx.offsets[i+1], g
	}
	return offset, startGranule
}
