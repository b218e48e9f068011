package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/player"
	"github.com/jetaudio/jetaudio/internal/session"
)

type fakeRepo struct {
	list []audio.Audio
	err  error
}

func (r fakeRepo) GetAudioData(context.Context) ([]audio.Audio, error) {
	return r.list, r.err
}

var tracks = []audio.Audio{
	audio.New(1, "/music/a.mp3", "A", "X", 60_000),
	audio.New(2, "/music/b.mp3", "B", "Y", 60_000),
	audio.New(3, "/music/c.mp3", "C", "Z", 60_000),
}

func setup(t *testing.T, repo Repository) (*Controller, *session.MediaSession, *player.Mock) {
	t.Helper()
	mock := player.NewMock()
	sess := session.New(mock, zerolog.Nop())
	t.Cleanup(sess.Release)
	c := New(repo, sess, zerolog.Nop())
	return c, sess, mock
}

func TestLoad(t *testing.T) {
	c, sess, mock := setup(t, fakeRepo{list: tracks})

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	st := c.State()
	if len(st.Audios) != 3 || st.Loading || st.Err != nil {
		t.Errorf("State() = %+v", st)
	}
	if st.IsPlaying || !st.Current.IsZero() {
		t.Errorf("Load() started playback: %+v", st)
	}
	if len(sess.Items()) != 3 {
		t.Errorf("session items = %d, want 3", len(sess.Items()))
	}
	if mock.Path() != "" {
		t.Errorf("player loaded %q, want nothing", mock.Path())
	}
}

func TestLoad_ReloadKeepsPlaying(t *testing.T) {
	repo := &fakeRepo{list: tracks}
	c, sess, mock := setup(t, repo)
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectAudio(2); err != nil {
		t.Fatal(err)
	}

	repo.list = tracks[1:]
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	st := c.State()
	if st.Current.ID != 3 || !st.IsPlaying {
		t.Errorf("after reload: current = %d playing = %v, want 3 true", st.Current.ID, st.IsPlaying)
	}
	if sess.CurrentIndex() != 1 || mock.Path() != "/music/c.mp3" {
		t.Errorf("session index = %d, player path = %q", sess.CurrentIndex(), mock.Path())
	}
}

func TestLoad_Error(t *testing.T) {
	boom := errors.New("query failed")
	c, _, _ := setup(t, fakeRepo{err: boom})

	if err := c.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Load() error = %v, want %v", err, boom)
	}
	st := c.State()
	if !errors.Is(st.Err, boom) || st.Loading {
		t.Errorf("State() = %+v", st)
	}
}

func TestSelectAudio(t *testing.T) {
	c, _, mock := setup(t, fakeRepo{list: tracks})
	_ = c.Load(context.Background())

	if err := c.SelectAudio(1); err != nil {
		t.Fatal(err)
	}
	st := c.State()
	if st.Current.ID != 2 || !st.IsPlaying {
		t.Errorf("after SelectAudio(1): current = %d, playing = %v", st.Current.ID, st.IsPlaying)
	}
	if mock.Path() != "/music/b.mp3" {
		t.Errorf("player path = %q", mock.Path())
	}

	// Same item toggles.
	_ = c.SelectAudio(1)
	if c.State().IsPlaying {
		t.Error("selecting the current item did not pause")
	}
	_ = c.SelectAudio(1)
	if !c.State().IsPlaying {
		t.Error("selecting the current item again did not resume")
	}

	if err := c.SelectAudio(9); !errors.Is(err, session.ErrIndexOutOfRange) {
		t.Errorf("SelectAudio(9) error = %v, want ErrIndexOutOfRange", err)
	}
	if !errors.Is(c.State().Err, session.ErrIndexOutOfRange) {
		t.Errorf("State().Err = %v", c.State().Err)
	}
}

func TestPlayPause(t *testing.T) {
	c, _, _ := setup(t, fakeRepo{list: tracks})
	_ = c.Load(context.Background())

	_ = c.PlayPause()
	st := c.State()
	if !st.IsPlaying || st.Current.ID != 1 {
		t.Errorf("PlayPause() from nothing: %+v", st)
	}
	_ = c.PlayPause()
	if c.State().IsPlaying {
		t.Error("second PlayPause() did not pause")
	}
}

func TestSeekToNext_Wraps(t *testing.T) {
	c, _, _ := setup(t, fakeRepo{list: tracks})
	_ = c.Load(context.Background())
	_ = c.SelectAudio(2)

	if err := c.SeekToNext(); err != nil {
		t.Fatal(err)
	}
	if got := c.State().Current.ID; got != 1 {
		t.Errorf("current after wrap = %d, want 1", got)
	}
}

func TestSeekTo(t *testing.T) {
	c, _, mock := setup(t, fakeRepo{list: tracks})
	_ = c.Load(context.Background())

	if err := c.SeekTo(50); err != nil {
		t.Fatalf("SeekTo() with nothing loaded error = %v", err)
	}

	_ = c.SelectAudio(0)
	mock.SetDuration(100 * time.Second)

	_ = c.SeekTo(25)
	if got := mock.Position(); got != 25*time.Second {
		t.Errorf("Position() = %v, want 25s", got)
	}
	if got := c.State().Progress; got != 25 {
		t.Errorf("Progress = %v, want 25", got)
	}

	_ = c.SeekTo(150)
	if got := mock.Position(); got != 100*time.Second {
		t.Errorf("Position() = %v, want 100s", got)
	}
}

func TestTick(t *testing.T) {
	c, _, mock := setup(t, fakeRepo{list: tracks})
	_ = c.Load(context.Background())
	_ = c.SelectAudio(0)
	mock.SetDuration(time.Minute)
	mock.SetPosition(15 * time.Second)

	if got := c.State().Progress; got != 0 {
		t.Errorf("Progress before Tick = %v, want 0", got)
	}
	c.Tick()
	if got := c.State().Progress; got != 25 {
		t.Errorf("Progress after Tick = %v, want 25", got)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		pos, length time.Duration
		want        float64
	}{
		{0, 0, 0},
		{time.Second, 0, 0},
		{30 * time.Second, time.Minute, 50},
		{2 * time.Minute, time.Minute, 100},
		{-time.Second, time.Minute, 0},
	}
	for _, tt := range tests {
		if got := progress(tt.pos, tt.length); got != tt.want {
			t.Errorf("progress(%v, %v) = %v, want %v", tt.pos, tt.length, got, tt.want)
		}
	}
}
