// Package playback turns user intents from the home screen into session
// commands and keeps the state snapshot the screen renders.
package playback

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/session"
)

// Repository provides the track list.
type Repository interface {
	GetAudioData(ctx context.Context) ([]audio.Audio, error)
}

// State is what the home screen shows.
type State struct {
	Progress  float64 // 0..100
	IsPlaying bool
	Current   audio.Audio
	Audios    []audio.Audio
	Loading   bool
	Err       error
}

// Controller mediates between the screen and the session.
type Controller struct {
	repo Repository
	sess *session.MediaSession
	log  zerolog.Logger

	mu    sync.Mutex
	state State
}

// New creates a controller.
func New(repo Repository, sess *session.MediaSession, log zerolog.Logger) *Controller {
	return &Controller{
		repo: repo,
		sess: sess,
		log:  log.With().Str("component", "playback").Logger(),
	}
}

// Load fetches the tracks and hands them to the session without starting
// playback. On a reload the current track keeps playing if it is still in
// the library.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()

	list, err := c.repo.GetAudioData(ctx)
	if err == nil {
		err = c.sess.ReloadMediaItems(list)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.Err = err
		return err
	}
	c.state.Err = nil
	c.state.Audios = list
	c.refreshLocked()
	c.log.Debug().Int("tracks", len(list)).Msg("loaded")
	return nil
}

// PlayPause toggles playback of the current item, starting the first one
// when nothing is selected.
func (c *Controller) PlayPause() error {
	return c.do(c.sess.Toggle)
}

// SelectAudio plays the item at index. Selecting the current item toggles
// play and pause instead of restarting it.
func (c *Controller) SelectAudio(index int) error {
	return c.do(func() error {
		return c.sess.SelectOrToggle(index)
	})
}

// SeekToNext moves to the next item, wrapping to the first.
func (c *Controller) SeekToNext() error {
	return c.do(c.sess.SeekToNext)
}

// SeekTo moves the playhead to progress percent (0..100) of the current
// item. Out of range values are clamped.
func (c *Controller) SeekTo(progress float64) error {
	return c.do(func() error {
		d := c.duration()
		if d <= 0 {
			return nil
		}
		progress = min(max(progress, 0), 100)
		return c.sess.SeekTo(time.Duration(float64(d) * progress / 100))
	})
}

// Tick refreshes the snapshot from the session.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()
}

// State returns a copy of the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Audios = slices.Clone(s.Audios)
	return s
}

func (c *Controller) do(fn func() error) error {
	err := fn()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Err = err
	c.refreshLocked()
	if err != nil {
		c.log.Warn().Err(err).Msg("playback command failed")
	}
	return err
}

func (c *Controller) refreshLocked() {
	item, _ := c.sess.CurrentItem()
	c.state.Current = item
	c.state.IsPlaying = c.sess.IsPlaying()
	c.state.Progress = progress(c.sess.Position(), c.duration())
}

// duration prefers the decoder's length and falls back to the indexed one.
func (c *Controller) duration() time.Duration {
	if d := c.sess.Duration(); d > 0 {
		return d
	}
	if item, ok := c.sess.CurrentItem(); ok && item.HasDuration() {
		return time.Duration(item.Duration) * time.Millisecond
	}
	return 0
}

func progress(pos, length time.Duration) float64 {
	if length <= 0 {
		return 0
	}
	return min(max(float64(pos)/float64(length)*100, 0), 100)
}
