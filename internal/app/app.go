package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jetaudio/jetaudio/internal/errmsg"
	"github.com/jetaudio/jetaudio/internal/mediastore"
	"github.com/jetaudio/jetaudio/internal/playback"
	"github.com/jetaudio/jetaudio/internal/session"
	"github.com/jetaudio/jetaudio/internal/ui/home"
)

// Deps are the collaborators of the root model.
type Deps struct {
	Context    context.Context
	Controller *playback.Controller
	Session    *session.MediaSession
	// Rescans delivers watcher results; nil when watching is off.
	Rescans <-chan mediastore.ScanStats
	Log     zerolog.Logger
}

// intents forwards home screen callbacks to the controller and remembers
// which operation ran last, for error messages.
type intents struct {
	ctrl   *playback.Controller
	lastOp errmsg.Op
}

func (in *intents) callbacks() home.Callbacks {
	return home.Callbacks{
		OnProgress: func(v float64) {
			in.lastOp = errmsg.OpPlaybackSeek
			_ = in.ctrl.SeekTo(v)
		},
		OnItemClick: func(i int) {
			in.lastOp = errmsg.OpPlaybackStart
			_ = in.ctrl.SelectAudio(i)
		},
		OnStart: func() {
			in.lastOp = errmsg.OpPlaybackToggle
			_ = in.ctrl.PlayPause()
		},
		OnNext: func() {
			in.lastOp = errmsg.OpPlaybackNext
			_ = in.ctrl.SeekToNext()
		},
	}
}

// Model is the root model.
type Model struct {
	ctx     context.Context
	ctrl    *playback.Controller
	sub     *session.Subscription
	rescans <-chan mediastore.ScanStats
	log     zerolog.Logger

	intents *intents
	home    home.Model
	ticking bool
}

// New builds the root model and subscribes to the session.
func New(d Deps) Model {
	ctx := d.Context
	if ctx == nil {
		ctx = context.Background()
	}
	in := &intents{ctrl: d.Controller}
	h := home.HomeScreen(in.callbacks())
	h.SetLoading(true)
	return Model{
		ctx:     ctx,
		ctrl:    d.Controller,
		sub:     d.Session.Subscribe(),
		rescans: d.Rescans,
		log:     d.Log.With().Str("component", "app").Logger(),
		intents: in,
		home:    h,
	}
}

// Init starts loading and the event watchers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.home.SpinnerTick,
		LoadCmd(m.ctx, m.ctrl),
		WatchSession(m.sub),
		WatchRescans(m.rescans),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.home.Keys().Quit) {
			return m, tea.Quit
		}
		return m.forward(msg)

	case tea.MouseMsg:
		return m.forward(msg)

	case TickMsg:
		m.ctrl.Tick()
		m.syncProps()
		if m.ctrl.State().IsPlaying {
			return m, TickCmd()
		}
		m.ticking = false
		return m, nil

	case LoadedMsg:
		m.home.SetLoading(false)
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Msg("load audio files")
			m.home.SetStatus(errmsg.Format(errmsg.OpLibraryLoad, msg.Err))
		} else {
			m.home.SetStatus("")
		}
		m.syncProps()
		return m, nil

	case SessionEventMsg:
		m.ctrl.Tick()
		m.syncProps()
		tick := m.startTicking()
		return m, tea.Batch(WatchSession(m.sub), tick)

	case SessionClosedMsg:
		return m, tea.Quit

	case RescanMsg:
		if !msg.Stats.Changed() {
			return m, WatchRescans(m.rescans)
		}
		m.log.Debug().Int("added", msg.Stats.Added).Int("removed", msg.Stats.Removed).Msg("library changed")
		return m, tea.Batch(LoadCmd(m.ctx, m.ctrl), WatchRescans(m.rescans))

	default:
		var cmd tea.Cmd
		m.home, cmd = m.home.Update(msg)
		return m, cmd
	}
}

// forward hands input to the home screen, then refreshes it and reports a
// failed intent in the status line.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.intents.lastOp = ""
	var cmd tea.Cmd
	m.home, cmd = m.home.Update(msg)

	if op := m.intents.lastOp; op != "" {
		if err := m.ctrl.State().Err; err != nil {
			m.home.SetStatus(errmsg.Format(op, err))
		} else {
			m.home.SetStatus("")
		}
	}
	m.syncProps()
	tick := m.startTicking()
	return m, tea.Batch(cmd, tick)
}

// startTicking starts the refresh tick if playing and not already running.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.ctrl.State().IsPlaying {
		return nil
	}
	m.ticking = true
	return TickCmd()
}

func (m *Model) syncProps() {
	st := m.ctrl.State()
	m.home.SetProps(home.Props{
		Progress:            st.Progress,
		IsAudioPlaying:      st.IsPlaying,
		CurrentPlayingAudio: st.Current,
		AudioList:           st.Audios,
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return m.home.View()
}
