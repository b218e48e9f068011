package player

import (
	"errors"
	"time"
)

var (
	// ErrReleased is returned when a released player is asked to load media.
	ErrReleased = errors.New("player: released")
	// ErrSuperseded is returned by Prepare when Stop or another Prepare ran
	// while the file was being decoded. Nothing was loaded.
	ErrSuperseded = errors.New("player: load superseded")
)

// Interface is the player contract used by the media session.
type Interface interface {
	// Prepare loads path, replacing any current track.
	Prepare(path string) error
	SetPlayWhenReady(play bool)
	PlayWhenReady() bool
	Play()
	Pause()
	SeekTo(pos time.Duration)
	// Stop unloads the track and returns to Idle.
	Stop()
	PlaybackState() PlaybackState
	// IsPlaying reports Ready with PlayWhenReady set.
	IsPlaying() bool
	Position() time.Duration
	Duration() time.Duration
	// Ended signals every time the loaded track plays to its end.
	Ended() <-chan struct{}
	Release()
}

var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
