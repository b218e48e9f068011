package session

import (
	"time"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/player"
)

// StateChange is emitted when the playing flag or playback state changes.
type StateChange struct {
	State     player.PlaybackState
	IsPlaying bool
}

// ItemChange is emitted when a different media item becomes current.
type ItemChange struct {
	PreviousIndex int
	Index         int
	Item          audio.Audio
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

const eventBufferSize = 16

// Subscription delivers session events. Sends never block: when a buffer
// is full the event is dropped. Done is closed when the session is released.
type Subscription struct {
	StateChanged    <-chan StateChange
	ItemChanged     <-chan ItemChange
	PositionChanged <-chan PositionChange
	Done            <-chan struct{}

	stateCh    chan StateChange
	itemCh     chan ItemChange
	positionCh chan PositionChange
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		itemCh:     make(chan ItemChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.ItemChanged = s.itemCh
	s.PositionChanged = s.positionCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() { close(s.doneCh) }

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendItem(e ItemChange) {
	select {
	case s.itemCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(pos time.Duration) {
	select {
	case s.positionCh <- PositionChange{Position: pos}:
	default:
	}
}
