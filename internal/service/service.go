// Package service runs the media session for the lifetime of the process:
// it hands the session to controllers, keeps the playback notification up
// and force-stops the player on shutdown.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/notify"
	"github.com/jetaudio/jetaudio/internal/player"
	"github.com/jetaudio/jetaudio/internal/session"
)

// DefaultMinVersion is the lowest notification server version for which the
// playback notification is posted.
const DefaultMinVersion = "1.2"

// ErrAlreadyRunning is returned by New while another service is alive.
var ErrAlreadyRunning = errors.New("service: already running")

// State is the lifecycle state of the service.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Platform reports the version of the host's notification facility.
type Platform interface {
	Version() (string, error)
}

// PlatformFunc adapts a function to Platform.
type PlatformFunc func() (string, error)

func (f PlatformFunc) Version() (string, error) { return f() }

// Notifications is the playback notification manager.
type Notifications interface {
	StartNotificationService(sess *session.MediaSession, owner notify.Owner) error
	Stop()
}

// Option configures a JetAudioService.
type Option func(*JetAudioService)

// WithMinVersion sets the version threshold for the playback notification.
func WithMinVersion(v string) Option {
	return func(s *JetAudioService) { s.minVersion = v }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *JetAudioService) { s.log = log }
}

var (
	runningMu sync.Mutex
	running   *JetAudioService
)

// JetAudioService owns the media session.
type JetAudioService struct {
	session       *session.MediaSession
	notifications Notifications
	platform      Platform
	minVersion    string
	log           zerolog.Logger

	mu    sync.Mutex
	state State
}

// New creates the process-wide service. Only one service may exist until
// it is destroyed.
func New(sess *session.MediaSession, notifications Notifications, platform Platform, opts ...Option) (*JetAudioService, error) {
	s := &JetAudioService{
		session:       sess,
		notifications: notifications,
		platform:      platform,
		minVersion:    DefaultMinVersion,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "service").Logger()

	runningMu.Lock()
	defer runningMu.Unlock()
	if running != nil {
		return nil, ErrAlreadyRunning
	}
	running = s
	return s, nil
}

// Name identifies the service as a notification owner.
func (s *JetAudioService) Name() string { return "jetaudio" }

// State returns the lifecycle state.
func (s *JetAudioService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnStartCommand activates the service and, when the platform is recent
// enough, starts the playback notification bound to the session.
func (s *JetAudioService) OnStartCommand(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.IsReleased() {
		return session.ErrReleased
	}
	s.state = Active

	if !s.platformSupported() {
		return nil
	}
	err := s.notifications.StartNotificationService(s.session, s)
	if err != nil && !errors.Is(err, notify.ErrAlreadyStarted) {
		return fmt.Errorf("start playback notification: %w", err)
	}
	return nil
}

func (s *JetAudioService) platformSupported() bool {
	if s.platform == nil {
		return false
	}
	v, err := s.platform.Version()
	if err != nil {
		s.log.Debug().Err(err).Msg("platform version unavailable")
		return false
	}
	ok, err := AtLeast(v, s.minVersion)
	if err != nil {
		s.log.Warn().Err(err).Str("version", v).Msg("unparsable platform version")
		return false
	}
	return ok
}

// OnGetSession hands the session to a connecting controller.
func (s *JetAudioService) OnGetSession(info session.ControllerInfo) *session.MediaSession {
	if err := s.session.Connect(info); err != nil {
		s.log.Debug().Err(err).Str("controller", info.Name).Msg("connect to released session")
	}
	return s.session
}

// OnDestroy releases the session and stops the player if it holds media.
// Calling it again does nothing.
func (s *JetAudioService) OnDestroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.IsReleased() {
		s.session.Release()
		if p := s.session.Player(); p.PlaybackState() != player.Idle {
			p.SeekTo(0)
			p.SetPlayWhenReady(false)
			p.Stop()
		}
		s.notifications.Stop()
		s.log.Info().Msg("destroyed")
	}
	s.state = Inactive

	runningMu.Lock()
	if running == s {
		running = nil
	}
	runningMu.Unlock()
}
