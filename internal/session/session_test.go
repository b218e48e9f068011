package session

import (
	"errors"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/player"
)

func items(n int) []audio.Audio {
	list := make([]audio.Audio, n)
	for i := range list {
		path := "/music/" + string(rune('a'+i)) + ".mp3"
		list[i] = audio.New(int64(i+1), path, "", "", 1000)
	}
	return list
}

func newTestSession(t *testing.T, n int) (*MediaSession, *player.Mock) {
	t.Helper()
	mock := player.NewMock()
	s := New(mock, zerolog.Nop())
	t.Cleanup(s.Release)
	if err := s.SetMediaItems(items(n)); err != nil {
		t.Fatalf("SetMediaItems() error = %v", err)
	}
	return s, mock
}

func TestSetMediaItems_NoAutoplay(t *testing.T) {
	s, mock := newTestSession(t, 3)

	if got := len(s.Items()); got != 3 {
		t.Errorf("len(Items()) = %d, want 3", got)
	}
	if s.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", s.CurrentIndex())
	}
	if mock.PlaybackState() != player.Idle || s.IsPlaying() {
		t.Error("SetMediaItems should not start playback")
	}
}

func TestPlay_PreparesFirstItem(t *testing.T) {
	s, mock := newTestSession(t, 3)

	if err := s.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", s.CurrentIndex())
	}
	if mock.Path() != "/music/a.mp3" {
		t.Errorf("prepared %q, want /music/a.mp3", mock.Path())
	}
	if !s.IsPlaying() {
		t.Error("IsPlaying() = false after Play()")
	}
}

func TestPlay_EmptyList(t *testing.T) {
	s, _ := newTestSession(t, 0)
	if err := s.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if s.IsPlaying() {
		t.Error("nothing to play, IsPlaying() should be false")
	}
}

func TestSeekToItem(t *testing.T) {
	s, mock := newTestSession(t, 3)

	if err := s.SeekToItem(2); err != nil {
		t.Fatalf("SeekToItem(2) error = %v", err)
	}
	item, ok := s.CurrentItem()
	if !ok || item.ID != 3 {
		t.Errorf("CurrentItem() = %v, %v; want ID 3", item, ok)
	}
	if mock.Path() != "/music/c.mp3" {
		t.Errorf("prepared %q", mock.Path())
	}

	if err := s.SeekToItem(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SeekToItem(5) error = %v, want ErrIndexOutOfRange", err)
	}
	if s.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2 (unchanged)", s.CurrentIndex())
	}
}

func TestSeekToItem_PrepareError(t *testing.T) {
	s, mock := newTestSession(t, 2)
	boom := errors.New("decode failed")
	mock.SetPrepareError(boom)

	if err := s.SeekToItem(1); !errors.Is(err, boom) {
		t.Errorf("SeekToItem() error = %v, want %v", err, boom)
	}
}

func TestSeekToNext_Wraps(t *testing.T) {
	s, _ := newTestSession(t, 2)
	_ = s.SeekToItem(1)

	if err := s.SeekToNext(); err != nil {
		t.Fatal(err)
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0 after wrap", s.CurrentIndex())
	}
}

func TestSeekToNext_Empty(t *testing.T) {
	s, _ := newTestSession(t, 0)
	if err := s.SeekToNext(); err != nil {
		t.Errorf("SeekToNext() on empty list error = %v", err)
	}
	if s.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", s.CurrentIndex())
	}
}

func TestToggle(t *testing.T) {
	s, _ := newTestSession(t, 1)

	_ = s.Toggle()
	if !s.IsPlaying() {
		t.Fatal("Toggle() from paused should play")
	}
	_ = s.Toggle()
	if s.IsPlaying() {
		t.Error("Toggle() from playing should pause")
	}
}

func TestSeekTo_EmitsPosition(t *testing.T) {
	s, mock := newTestSession(t, 1)
	sub := s.Subscribe()
	_ = s.SeekToItem(0)

	if err := s.SeekTo(15 * time.Second); err != nil {
		t.Fatal(err)
	}
	if mock.Position() != 15*time.Second {
		t.Errorf("Position() = %v, want 15s", mock.Position())
	}
	select {
	case e := <-sub.PositionChanged:
		if e.Position != 15*time.Second {
			t.Errorf("PositionChange = %v", e.Position)
		}
	default:
		t.Error("no PositionChange event")
	}
}

func TestSubscribe_ItemAndStateEvents(t *testing.T) {
	s, _ := newTestSession(t, 2)
	sub := s.Subscribe()

	_ = s.SeekToItem(1)
	_ = s.Play()

	select {
	case e := <-sub.ItemChanged:
		if e.PreviousIndex != -1 || e.Index != 1 || e.Item.ID != 2 {
			t.Errorf("ItemChange = %+v", e)
		}
	default:
		t.Error("no ItemChange event")
	}

	var last StateChange
	for done := false; !done; {
		select {
		case last = <-sub.StateChanged:
		default:
			done = true
		}
	}
	if last.State != player.Ready || !last.IsPlaying {
		t.Errorf("last StateChange = %+v, want Ready playing", last)
	}
}

func TestAutoAdvance(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := player.NewMock()
		s := New(mock, zerolog.Nop())
		defer s.Release()
		_ = s.SetMediaItems(items(2))
		_ = s.Play()

		mock.SimulateEnded()
		synctest.Wait()

		if s.CurrentIndex() != 1 {
			t.Errorf("CurrentIndex() = %d, want 1 after track end", s.CurrentIndex())
		}
		if !s.IsPlaying() {
			t.Error("playback should continue on the next item")
		}

		// The last item ending does not wrap.
		mock.SimulateEnded()
		synctest.Wait()

		if s.CurrentIndex() != 1 {
			t.Errorf("CurrentIndex() = %d, want 1 at end of list", s.CurrentIndex())
		}
		if mock.PlaybackState() != player.Ended {
			t.Errorf("state = %v, want Ended", mock.PlaybackState())
		}
	})
}

func TestPlay_RestartsEndedTrack(t *testing.T) {
	s, mock := newTestSession(t, 1)
	_ = s.Play()
	mock.SimulateEnded()

	_ = s.Play()
	if mock.PlaybackState() != player.Ready || mock.Position() != 0 {
		t.Errorf("state = %v pos = %v, want Ready at 0", mock.PlaybackState(), mock.Position())
	}
}

func TestRelease(t *testing.T) {
	s, mock := newTestSession(t, 2)
	sub := s.Subscribe()
	_ = s.Play()

	s.Release()
	s.Release()

	if !s.IsReleased() {
		t.Error("IsReleased() = false")
	}
	select {
	case <-sub.Done:
	default:
		t.Error("subscription not closed on Release")
	}
	if err := s.Play(); !errors.Is(err, ErrReleased) {
		t.Errorf("Play() after Release error = %v, want ErrReleased", err)
	}
	if err := s.Connect(ControllerInfo{Name: "late"}); !errors.Is(err, ErrReleased) {
		t.Errorf("Connect() after Release error = %v, want ErrReleased", err)
	}
	if mock.PlaybackState() != player.Ready {
		t.Error("Release should leave the player to its owner")
	}
	select {
	case <-s.Subscribe().Done:
	default:
		t.Error("Subscribe() on released session should be done")
	}
}

func TestConnect(t *testing.T) {
	s, _ := newTestSession(t, 0)
	if err := s.Connect(ControllerInfo{Name: "tui", Kind: KindTUI}); err != nil {
		t.Fatal(err)
	}
	_ = s.Connect(ControllerInfo{Name: "org.mpris.MediaPlayer2.jetaudio", Kind: KindMPRIS})

	got := s.Controllers()
	if len(got) != 2 || got[0].Kind != KindTUI || got[1].Kind != KindMPRIS {
		t.Errorf("Controllers() = %+v", got)
	}
	if got[0].ConnectedAt.IsZero() {
		t.Error("ConnectedAt should be stamped")
	}
}

func TestReloadMediaItems_KeepsCurrent(t *testing.T) {
	s, mock := newTestSession(t, 3)
	if err := s.SeekToItem(1); err != nil {
		t.Fatal(err)
	}
	_ = s.Play()
	sub := s.Subscribe()
	mock.ResetCalls()

	// Item 1 removed, b.mp3 (ID 2) moves to index 0.
	list := items(3)
	if err := s.ReloadMediaItems(list[1:]); err != nil {
		t.Fatalf("ReloadMediaItems() error = %v", err)
	}
	if s.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", s.CurrentIndex())
	}
	if item, _ := s.CurrentItem(); item.ID != 2 {
		t.Errorf("CurrentItem().ID = %d, want 2", item.ID)
	}
	if !s.IsPlaying() {
		t.Error("reload interrupted playback")
	}
	if calls := mock.Calls(); len(calls) != 0 {
		t.Errorf("player calls = %v, want none", calls)
	}
	select {
	case e := <-sub.ItemChanged:
		if e.PreviousIndex != 1 || e.Index != 0 || e.Item.ID != 2 {
			t.Errorf("ItemChange = %+v", e)
		}
	default:
		t.Error("no ItemChanged event for the moved item")
	}
}

func TestReloadMediaItems_CurrentRemoved(t *testing.T) {
	s, mock := newTestSession(t, 2)
	if err := s.SeekToItem(1); err != nil {
		t.Fatal(err)
	}
	_ = s.Play()

	if err := s.ReloadMediaItems(items(1)); err != nil {
		t.Fatal(err)
	}
	if s.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", s.CurrentIndex())
	}
	if mock.PlaybackState() != player.Idle || s.IsPlaying() {
		t.Error("player should stop when the current item is gone")
	}
}

func TestReloadMediaItems_NothingSelected(t *testing.T) {
	s, mock := newTestSession(t, 1)
	mock.ResetCalls()

	if err := s.ReloadMediaItems(items(2)); err != nil {
		t.Fatal(err)
	}
	if len(s.Items()) != 2 || s.CurrentIndex() != -1 {
		t.Errorf("items = %d current = %d", len(s.Items()), s.CurrentIndex())
	}
	if calls := mock.Calls(); len(calls) != 0 {
		t.Errorf("player calls = %v, want none", calls)
	}
}

func TestSelectOrToggle(t *testing.T) {
	s, mock := newTestSession(t, 3)

	if err := s.SelectOrToggle(2); err != nil {
		t.Fatal(err)
	}
	if s.CurrentIndex() != 2 || !s.IsPlaying() {
		t.Fatalf("after select: current = %d playing = %v", s.CurrentIndex(), s.IsPlaying())
	}

	mock.ResetCalls()
	_ = s.SelectOrToggle(2)
	if s.IsPlaying() || s.CurrentIndex() != 2 {
		t.Errorf("selecting the current item should pause it in place")
	}
	for _, c := range mock.Calls() {
		if strings.HasPrefix(c, "Prepare") {
			t.Errorf("current item was reloaded: %v", mock.Calls())
		}
	}
	_ = s.SelectOrToggle(2)
	if !s.IsPlaying() {
		t.Error("second select should resume")
	}

	if err := s.SelectOrToggle(9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SelectOrToggle(9) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestToggle_Released(t *testing.T) {
	s, _ := newTestSession(t, 1)
	s.Release()
	if err := s.Toggle(); !errors.Is(err, ErrReleased) {
		t.Errorf("Toggle() error = %v, want ErrReleased", err)
	}
}
