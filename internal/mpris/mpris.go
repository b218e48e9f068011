//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/player"
	"github.com/jetaudio/jetaudio/internal/session"
)

// Adapter exposes a media session on the session bus as
// org.mpris.MediaPlayer2.jetaudio.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
}

// New connects to the session through connect and starts serving it.
func New(connect Connector, art ArtURL, log zerolog.Logger) (*Adapter, error) {
	sess := connect(session.ControllerInfo{Name: BusName, Kind: session.KindMPRIS})
	if sess == nil {
		return nil, ErrNoSession
	}
	a := &Adapter{log: log.With().Str("component", "mpris").Logger()}
	a.server = server.NewServer(BusName, &rootAdapter{}, newPlayerAdapter(sess, art))

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()
	return a, nil
}

// Close releases the bus name.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements org.mpris.MediaPlayer2.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error                { return nil }
func (r *rootAdapter) Quit() error                 { return nil }
func (r *rootAdapter) CanQuit() (bool, error)      { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error)     { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }
func (r *rootAdapter) Identity() (string, error)   { return Identity, nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return mimeTypes, nil
}

// playerAdapter implements org.mpris.MediaPlayer2.Player on top of a session.
type playerAdapter struct {
	sess *session.MediaSession
	art  ArtURL
}

func newPlayerAdapter(sess *session.MediaSession, art ArtURL) *playerAdapter {
	return &playerAdapter{sess: sess, art: art}
}

func (p *playerAdapter) Next() error      { return p.sess.SeekToNext() }
func (p *playerAdapter) Pause() error     { return p.sess.Pause() }
func (p *playerAdapter) PlayPause() error { return p.sess.Toggle() }
func (p *playerAdapter) Play() error      { return p.sess.Play() }

// Previous restarts the current item; the session has no backwards move.
func (p *playerAdapter) Previous() error {
	return p.sess.SeekTo(0)
}

func (p *playerAdapter) Stop() error {
	if err := p.sess.Pause(); err != nil {
		return err
	}
	return p.sess.SeekTo(0)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	pos := p.sess.Position() + time.Duration(offset)*time.Microsecond
	return p.sess.SeekTo(clampPosition(pos, p.sess.Duration()))
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	item, ok := p.sess.CurrentItem()
	if !ok || trackID != TrackID(item.Data) {
		return nil
	}
	pos := time.Duration(position) * time.Microsecond
	if pos < 0 || pos > p.sess.Duration() {
		return nil
	}
	return p.sess.SeekTo(pos)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.sess.Player().PlaybackState(), p.sess.IsPlaying()), nil
}

func (p *playerAdapter) Rate() (float64, error)    { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error   { return nil }
func (p *playerAdapter) Volume() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	item, ok := p.sess.CurrentItem()
	if !ok {
		return types.Metadata{}, nil
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(TrackID(item.Data)),
		Title:   item.Title,
		Artist:  []string{item.Artist},
		Url:     item.URI,
	}
	if item.HasDuration() {
		meta.Length = types.Microseconds(time.Duration(item.Duration) * time.Millisecond / time.Microsecond)
	}
	if p.art != nil {
		meta.ArtUrl = p.art(item)
	}
	return meta, nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.sess.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error)     { return len(p.sess.Items()) > 0, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return p.sess.CurrentIndex() >= 0, nil }
func (p *playerAdapter) CanPlay() (bool, error)       { return len(p.sess.Items()) > 0, nil }
func (p *playerAdapter) CanPause() (bool, error)      { return true, nil }
func (p *playerAdapter) CanSeek() (bool, error) {
	return p.sess.Player().PlaybackState().HasMedia(), nil
}
func (p *playerAdapter) CanControl() (bool, error) { return !p.sess.IsReleased(), nil }

func playbackStatus(state player.PlaybackState, playing bool) types.PlaybackStatus {
	switch {
	case playing:
		return types.PlaybackStatusPlaying
	case state == player.Idle:
		return types.PlaybackStatusStopped
	default:
		return types.PlaybackStatusPaused
	}
}

// TrackID derives a stable D-Bus object path from a file path.
func TrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
