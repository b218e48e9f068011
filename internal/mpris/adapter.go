// Package mpris publishes the media session to desktop controllers over
// the MPRIS D-Bus interface. Off Linux it is a no-op.
package mpris

import (
	"errors"
	"time"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/session"
)

const (
	// BusName is the suffix after org.mpris.MediaPlayer2.
	BusName = "jetaudio"
	// Identity is the human readable player name.
	Identity = "JetAudio"
)

// ErrNoSession is returned when the connector hands out no session.
var ErrNoSession = errors.New("mpris: no session")

// Connector hands the session to a connecting controller.
type Connector func(session.ControllerInfo) *session.MediaSession

// ArtURL returns the cover art URL for an item, or "".
type ArtURL func(audio.Audio) string

var mimeTypes = []string{
	"audio/mpeg", "audio/flac", "audio/ogg", "audio/opus",
	"audio/mp4", "audio/x-m4a", "audio/wav",
}

func clampPosition(pos, length time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if length > 0 && pos > length {
		return length
	}
	return pos
}
