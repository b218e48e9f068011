package player

import (
	"sync"
	"time"
)

// Mock is a test double for Player. It follows the same state rules
// without producing sound.
type Mock struct {
	mu            sync.Mutex
	state         PlaybackState
	playWhenReady bool
	released      bool
	path          string
	position      time.Duration
	duration      time.Duration
	prepareErr    error
	calls         []string
	ended         chan struct{}
}

// NewMock creates an idle mock whose tracks last one minute.
func NewMock() *Mock {
	return &Mock{
		duration: time.Minute,
		ended:    make(chan struct{}, 1),
	}
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) Prepare(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Prepare " + path)
	if m.released {
		return ErrReleased
	}
	if m.prepareErr != nil {
		m.state = Idle
		return m.prepareErr
	}
	m.path = path
	m.position = 0
	m.state = Ready
	return nil
}

func (m *Mock) SetPlayWhenReady(play bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if play {
		m.record("SetPlayWhenReady true")
	} else {
		m.record("SetPlayWhenReady false")
	}
	m.playWhenReady = play
}

func (m *Mock) PlayWhenReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playWhenReady
}

func (m *Mock) Play()  { m.SetPlayWhenReady(true) }
func (m *Mock) Pause() { m.SetPlayWhenReady(false) }

func (m *Mock) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SeekTo " + pos.String())
	if !m.state.HasMedia() {
		return
	}
	m.position = min(max(pos, 0), m.duration)
	if m.state == Ended {
		m.state = Ready
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop")
	m.state = Idle
	m.path = ""
	m.position = 0
}

func (m *Mock) PlaybackState() PlaybackState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Ready && m.playWhenReady
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.HasMedia() {
		return 0
	}
	return m.duration
}

func (m *Mock) Ended() <-chan struct{} { return m.ended }

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Release")
	m.state = Idle
	m.released = true
}

// Test helpers

// SetPrepareError makes later Prepare calls fail with err.
func (m *Mock) SetPrepareError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepareErr = err
}

// SetDuration sets the length reported for loaded tracks.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// SetPosition moves the playhead without recording a call.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// Path returns the loaded file.
func (m *Mock) Path() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// Calls returns the recorded method calls in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// ResetCalls clears the call log.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// SimulateEnded plays the loaded track to its end.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	if m.state != Ready {
		m.mu.Unlock()
		return
	}
	m.state = Ended
	m.position = m.duration
	m.mu.Unlock()

	select {
	case m.ended <- struct{}{}:
	default:
	}
}
