package player

import (
	"errors"
	"testing"
	"time"
)

func TestMock_Lifecycle(t *testing.T) {
	m := NewMock()
	if m.PlaybackState() != Idle {
		t.Fatalf("initial state = %v, want Idle", m.PlaybackState())
	}

	if err := m.Prepare("/music/a.mp3"); err != nil {
		t.Fatal(err)
	}
	m.Play()
	if !m.IsPlaying() {
		t.Error("IsPlaying() = false after Prepare+Play")
	}

	m.SeekTo(90 * time.Second)
	if m.Position() != time.Minute {
		t.Errorf("Position() = %v, want clamp to 1m", m.Position())
	}

	m.SimulateEnded()
	if m.PlaybackState() != Ended {
		t.Errorf("state = %v, want Ended", m.PlaybackState())
	}
	select {
	case <-m.Ended():
	default:
		t.Error("Ended() did not signal")
	}

	m.SeekTo(0)
	if m.PlaybackState() != Ready {
		t.Errorf("state after seek = %v, want Ready", m.PlaybackState())
	}

	m.Stop()
	if m.PlaybackState() != Idle || m.Position() != 0 || m.Path() != "" {
		t.Error("Stop() should unload the track")
	}
	if !m.PlayWhenReady() {
		t.Error("Stop() should keep PlayWhenReady")
	}
}

func TestMock_PrepareError(t *testing.T) {
	m := NewMock()
	boom := errors.New("boom")
	m.SetPrepareError(boom)
	if err := m.Prepare("/x.mp3"); !errors.Is(err, boom) {
		t.Errorf("Prepare() error = %v, want %v", err, boom)
	}
	if m.PlaybackState() != Idle {
		t.Errorf("state = %v, want Idle", m.PlaybackState())
	}
}

func TestMock_Calls(t *testing.T) {
	m := NewMock()
	_ = m.Prepare("/a.mp3")
	m.SeekTo(0)
	m.SetPlayWhenReady(false)
	m.Stop()

	want := []string{"Prepare /a.mp3", "SeekTo 0s", "SetPlayWhenReady false", "Stop"}
	got := m.Calls()
	if len(got) != len(want) {
		t.Fatalf("Calls() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Calls()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
