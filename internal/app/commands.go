package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jetaudio/jetaudio/internal/mediastore"
	"github.com/jetaudio/jetaudio/internal/playback"
	"github.com/jetaudio/jetaudio/internal/session"
)

// TickInterval is how often the slider is refreshed while playing.
const TickInterval = 500 * time.Millisecond

// TickCmd returns a command that sends TickMsg after TickInterval.
func TickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// LoadCmd fetches the track list through the controller.
func LoadCmd(ctx context.Context, ctrl *playback.Controller) tea.Cmd {
	return func() tea.Msg {
		return LoadedMsg{Err: ctrl.Load(ctx)}
	}
}

// WatchSession waits for the next session event.
func WatchSession(sub *session.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return SessionEventMsg{State: &e}
		case e := <-sub.ItemChanged:
			return SessionEventMsg{Item: &e}
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}

// WatchRescans waits for the next completed library rescan.
func WatchRescans(ch <-chan mediastore.ScanStats) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		stats, ok := <-ch
		if !ok {
			return nil
		}
		return RescanMsg{Stats: stats}
	}
}
