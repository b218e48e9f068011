// Package app is the root bubbletea model: it owns the home screen and
// feeds it from the playback controller.
package app

import (
	"time"

	"github.com/jetaudio/jetaudio/internal/mediastore"
	"github.com/jetaudio/jetaudio/internal/session"
)

// TickMsg is sent periodically while playing to refresh the slider.
type TickMsg time.Time

// LoadedMsg is sent when the track list has been (re)loaded.
type LoadedMsg struct {
	Err error
}

// SessionEventMsg is sent when the session changes state or item.
type SessionEventMsg struct {
	State *session.StateChange
	Item  *session.ItemChange
}

// SessionClosedMsg is sent when the session has been released.
type SessionClosedMsg struct{}

// RescanMsg is sent when the library watcher finished a rescan.
type RescanMsg struct {
	Stats mediastore.ScanStats
}
