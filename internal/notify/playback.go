package notify

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/session"
)

// ErrAlreadyStarted is returned when the playback notification is already
// bound to a session.
var ErrAlreadyStarted = errors.New("notify: playback notification already started")

// Owner is the component keeping the playback notification alive.
type Owner interface {
	Name() string
}

// PlaybackManager keeps one persistent notification describing the
// session's current item and play state.
type PlaybackManager struct {
	notifier Notifier
	log      zerolog.Logger

	// IconFor returns an icon path for an item; nil means no icon.
	IconFor func(audio.Audio) string

	mu      sync.Mutex
	id      uint32
	owner   string
	stop    chan struct{}
	stopped chan struct{}
}

// NewPlaybackManager creates a manager posting through notifier.
func NewPlaybackManager(notifier Notifier, log zerolog.Logger) *PlaybackManager {
	return &PlaybackManager{
		notifier: notifier,
		log:      log.With().Str("component", "notify").Logger(),
	}
}

// StartNotificationService posts the playback notification for sess on
// behalf of owner and keeps it updated until Stop or until the session is
// released.
func (m *PlaybackManager) StartNotificationService(sess *session.MediaSession, owner Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil {
		return ErrAlreadyStarted
	}
	m.owner = owner.Name()
	m.stop = make(chan struct{})
	m.stopped = make(chan struct{})

	sub := sess.Subscribe()
	m.postLocked(sess)

	go m.run(sess, sub, m.stop, m.stopped)
	m.log.Debug().Str("owner", m.owner).Msg("playback notification started")
	return nil
}

func (m *PlaybackManager) run(sess *session.MediaSession, sub *session.Subscription, stop, stopped chan struct{}) {
	defer close(stopped)
	for {
		select {
		case <-stop:
			return
		case <-sub.Done:
			return
		case <-sub.StateChanged:
		case <-sub.ItemChanged:
		}
		m.mu.Lock()
		m.postLocked(sess)
		m.mu.Unlock()
	}
}

func (m *PlaybackManager) postLocked(sess *session.MediaSession) {
	item, ok := sess.CurrentItem()
	if !ok {
		return
	}
	n := Notification{
		Title:      title(item),
		Body:       body(item, sess.IsPlaying()),
		Timeout:    0,
		ReplacesID: m.id,
		Urgency:    UrgencyLow,
		Resident:   true,
	}
	if m.IconFor != nil {
		n.Icon = m.IconFor(item)
	}
	id, err := m.notifier.Notify(n)
	if err != nil {
		m.log.Warn().Err(err).Msg("post playback notification")
		return
	}
	m.id = id
}

func title(a audio.Audio) string {
	if a.Title != "" {
		return a.Title
	}
	return a.DisplayName
}

func body(a audio.Audio, playing bool) string {
	state := "Paused"
	if playing {
		state = "Playing"
	}
	if a.Artist == "" {
		return state
	}
	return a.Artist + " · " + state
}

// Stop closes the notification and stops following the session.
// It is safe to call when not started.
func (m *PlaybackManager) Stop() {
	m.mu.Lock()
	stop, stopped := m.stop, m.stopped
	m.stop, m.stopped = nil, nil
	m.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-stopped

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.id != 0 {
		if err := m.notifier.Close(m.id); err != nil {
			m.log.Debug().Err(err).Msg("close playback notification")
		}
		m.id = 0
	}
}

// Active reports whether the notification service is running.
func (m *PlaybackManager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop != nil
}
