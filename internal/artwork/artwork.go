// Package artwork finds cover art for tracks and caches PNG thumbnails for
// desktop notifications and MPRIS clients.
package artwork

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	_ "image/jpeg" // JPEG covers
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/tags"
)

// DefaultSize is the thumbnail edge length in pixels.
const DefaultSize = 256

// coverNames lists folder art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"album.jpg", "album.png", "album.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// FindCover looks for a cover image next to the track.
func FindCover(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Cache produces and remembers thumbnail paths.
type Cache struct {
	dir  string // empty: XDG cache dir
	size uint
	log  zerolog.Logger

	mu    sync.Mutex
	paths map[string]string // track path -> thumbnail path ("" when none)
}

// NewCache creates a cache writing under dir, or under
// $XDG_CACHE_HOME/jetaudio/artwork when dir is empty.
func NewCache(dir string, size uint, log zerolog.Logger) *Cache {
	if size == 0 {
		size = DefaultSize
	}
	return &Cache{
		dir:   dir,
		size:  size,
		log:   log.With().Str("component", "artwork").Logger(),
		paths: make(map[string]string),
	}
}

// Path returns a PNG thumbnail for the track, or "" when it has no art.
// Embedded pictures win over folder covers.
func (c *Cache) Path(a audio.Audio) string {
	if a.Data == "" {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.paths[a.Data]; ok {
		return p
	}
	p, err := c.thumbnail(a.Data)
	if err != nil {
		c.log.Debug().Err(err).Str("path", a.Data).Msg("no artwork")
	}
	c.paths[a.Data] = p
	return p
}

// URL returns the file:// URL of the thumbnail, or "".
func (c *Cache) URL(a audio.Audio) string {
	return audio.FileURI(c.Path(a))
}

func (c *Cache) thumbnail(trackPath string) (string, error) {
	data, key, err := source(trackPath)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", nil
	}

	out, err := c.target(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(out); err == nil {
		return out, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode cover: %w", err)
	}
	thumb := resize.Thumbnail(c.size, c.size, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return "", err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// source returns the raw cover bytes for a track and a stable cache key.
func source(trackPath string) (data []byte, key string, err error) {
	if pic, _, perr := tags.Picture(trackPath); perr == nil && len(pic) > 0 {
		return pic, "embedded:" + trackPath, nil
	}
	cover := FindCover(trackPath)
	if cover == "" {
		return nil, "", nil
	}
	data, err = os.ReadFile(cover)
	if err != nil {
		return nil, "", err
	}
	return data, "folder:" + cover, nil
}

func (c *Cache) target(key string) (string, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	name := fmt.Sprintf("%016x-%d.png", h.Sum64(), c.size)

	if c.dir == "" {
		return xdg.CacheFile(filepath.Join("jetaudio", "artwork", name))
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(c.dir, name), nil
}
