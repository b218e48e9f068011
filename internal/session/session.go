// Package session implements the media session shared by every controller:
// an ordered list of media items played through one player.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/player"
	"github.com/jetaudio/jetaudio/internal/playlist"
)

var (
	// ErrReleased is returned by commands sent to a released session.
	ErrReleased = errors.New("session: released")
	// ErrIndexOutOfRange is returned when an item index is not in the list.
	ErrIndexOutOfRange = errors.New("session: item index out of range")
)

// MediaSession owns the player and the media items.
type MediaSession struct {
	log    zerolog.Logger
	player player.Interface

	mu          sync.Mutex
	queue       *playlist.Queue
	controllers []ControllerInfo
	subs        []*Subscription
	released    bool
	lastState   StateChange

	stop chan struct{}
	wg   sync.WaitGroup
}

// New creates a session around p and starts watching for track ends.
func New(p player.Interface, log zerolog.Logger) *MediaSession {
	s := &MediaSession{
		log:    log.With().Str("component", "session").Logger(),
		player: p,
		queue:  playlist.NewQueue(),
		stop:   make(chan struct{}),
	}
	s.wg.Go(s.watchEnded)
	return s
}

// watchEnded advances to the next item when a track finishes, stopping
// after the last one.
func (s *MediaSession) watchEnded() {
	for {
		select {
		case <-s.stop:
			return
		case <-s.player.Ended():
			s.mu.Lock()
			if s.released {
				s.mu.Unlock()
				return
			}
			if next := s.queue.NextIndex(false); next >= 0 {
				if err := s.seekToItemLocked(next); err != nil {
					s.log.Warn().Err(err).Int("index", next).Msg("auto-advance failed")
				}
			}
			s.emitStateLocked()
			s.mu.Unlock()
		}
	}
}

// Player returns the underlying player.
func (s *MediaSession) Player() player.Interface {
	return s.player
}

// SetMediaItems replaces the media items. Playback stops and nothing is
// selected until SeekToItem or Play.
func (s *MediaSession) SetMediaItems(items []audio.Audio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	prev := s.queue.CurrentIndex()
	s.player.Stop()
	s.queue.Replace(items)
	if prev != -1 {
		s.broadcastItem(ItemChange{PreviousIndex: prev, Index: -1})
	}
	s.emitStateLocked()
	return nil
}

// ReloadMediaItems replaces the media items after a library change. The
// current item stays selected, at its new index, and keeps playing. The
// player is stopped only when the current item is gone.
func (s *MediaSession) ReloadMediaItems(items []audio.Audio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	prev := s.queue.CurrentIndex()
	prevItem, _ := s.queue.Current()
	if s.queue.Reload(items) {
		if idx := s.queue.CurrentIndex(); idx != prev {
			item, _ := s.queue.Current()
			s.broadcastItem(ItemChange{PreviousIndex: prev, Index: idx, Item: item})
		}
		return nil
	}
	if prev != -1 {
		s.log.Debug().Str("path", prevItem.Data).Msg("current item removed from library")
		s.player.Stop()
		s.broadcastItem(ItemChange{PreviousIndex: prev, Index: -1})
	}
	s.emitStateLocked()
	return nil
}

// Items returns the current media items.
func (s *MediaSession) Items() []audio.Audio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Items()
}

// SeekToItem loads the item at index. Playback continues if the player
// was set to play.
func (s *MediaSession) SeekToItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	err := s.seekToItemLocked(index)
	s.emitStateLocked()
	return err
}

func (s *MediaSession) seekToItemLocked(index int) error {
	item, ok := s.queue.At(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	prev := s.queue.CurrentIndex()
	s.queue.JumpTo(index)
	s.broadcastItem(ItemChange{PreviousIndex: prev, Index: index, Item: item})
	if err := s.player.Prepare(item.Data); err != nil {
		return err
	}
	return nil
}

// SeekToNext moves to the following item, wrapping from the last to the
// first. It is a no-op on an empty list.
func (s *MediaSession) SeekToNext() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	next := s.queue.NextIndex(true)
	if next < 0 {
		return nil
	}
	err := s.seekToItemLocked(next)
	s.emitStateLocked()
	return err
}

// Play starts playback. With nothing loaded, the current item (or the
// first one) is prepared first.
func (s *MediaSession) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	return s.playLocked()
}

func (s *MediaSession) playLocked() error {
	if err := s.ensurePreparedLocked(); err != nil {
		s.emitStateLocked()
		return err
	}
	if s.player.PlaybackState() == player.Ended {
		s.player.SeekTo(0)
	}
	s.player.Play()
	s.emitStateLocked()
	return nil
}

func (s *MediaSession) ensurePreparedLocked() error {
	if s.player.PlaybackState().HasMedia() {
		return nil
	}
	idx := s.queue.CurrentIndex()
	if idx < 0 {
		if s.queue.IsEmpty() {
			return nil
		}
		idx = 0
	}
	return s.seekToItemLocked(idx)
}

// Pause stops output and keeps the position.
func (s *MediaSession) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	s.player.Pause()
	s.emitStateLocked()
	return nil
}

// Toggle switches between Play and Pause.
func (s *MediaSession) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	return s.toggleLocked()
}

func (s *MediaSession) toggleLocked() error {
	if s.player.IsPlaying() {
		s.player.Pause()
		s.emitStateLocked()
		return nil
	}
	return s.playLocked()
}

// SelectOrToggle plays the item at index. When that item is already
// loaded it toggles play and pause instead of restarting it.
func (s *MediaSession) SelectOrToggle(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	if index == s.queue.CurrentIndex() && s.player.PlaybackState().HasMedia() {
		return s.toggleLocked()
	}
	if err := s.seekToItemLocked(index); err != nil {
		s.emitStateLocked()
		return err
	}
	return s.playLocked()
}

// SeekTo moves the playhead within the current item.
func (s *MediaSession) SeekTo(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	s.player.SeekTo(pos)
	for _, sub := range s.subs {
		sub.sendPosition(pos)
	}
	s.emitStateLocked()
	return nil
}

// CurrentIndex returns the index of the current item, or -1.
func (s *MediaSession) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.CurrentIndex()
}

// CurrentItem returns the current item.
func (s *MediaSession) CurrentItem() (audio.Audio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Current()
}

func (s *MediaSession) IsPlaying() bool         { return s.player.IsPlaying() }
func (s *MediaSession) Position() time.Duration { return s.player.Position() }
func (s *MediaSession) Duration() time.Duration { return s.player.Duration() }

// Connect records a controller. Connecting to a released session fails.
func (s *MediaSession) Connect(info ControllerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	if info.ConnectedAt.IsZero() {
		info.ConnectedAt = time.Now()
	}
	s.controllers = append(s.controllers, info)
	s.log.Debug().Str("controller", info.Name).Str("kind", string(info.Kind)).Msg("controller connected")
	return nil
}

// Controllers returns the controllers connected so far.
func (s *MediaSession) Controllers() []ControllerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ControllerInfo(nil), s.controllers...)
}

// Subscribe returns a new event subscription. On a released session the
// subscription is already done.
func (s *MediaSession) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := newSubscription()
	if s.released {
		sub.close()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// Release detaches the session: subscriptions are closed and further
// commands fail with ErrReleased. The player is left as is; its owner
// decides whether to stop it. Release is idempotent.
func (s *MediaSession) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
	s.log.Debug().Msg("released")
}

// IsReleased reports whether Release was called.
func (s *MediaSession) IsReleased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

func (s *MediaSession) broadcastItem(e ItemChange) {
	for _, sub := range s.subs {
		sub.sendItem(e)
	}
}

// emitStateLocked notifies subscribers when the state differs from the
// last one sent.
func (s *MediaSession) emitStateLocked() {
	cur := StateChange{State: s.player.PlaybackState(), IsPlaying: s.player.IsPlaying()}
	if cur == s.lastState {
		return
	}
	s.lastState = cur
	for _, sub := range s.subs {
		sub.sendState(cur)
	}
}
