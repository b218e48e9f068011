package home

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jetaudio/jetaudio/internal/ui/cursor"
	"github.com/jetaudio/jetaudio/internal/ui/render"
	"github.com/jetaudio/jetaudio/internal/ui/styles"
)

// footerHeight is the status/help line under the bar.
const footerHeight = 1

// Model is the home screen.
type Model struct {
	props   Props
	cb      Callbacks
	keys    KeyMap
	cursor  cursor.Cursor
	help    help.Model
	spinner spinner.Model

	width, height int
	loading       bool
	status        string
}

// HomeScreen creates the home screen forwarding interactions to cb.
func HomeScreen(cb Callbacks) Model {
	h := help.New()
	h.Styles.ShortKey = styles.T().S().Muted
	h.Styles.ShortDesc = styles.T().S().Subtle
	h.Styles.ShortSeparator = styles.T().S().Subtle
	return Model{
		cb:      cb,
		keys:    DefaultKeyMap(),
		cursor:  cursor.New(1),
		help:    h,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.T().S().Playing)),
	}
}

// SetProps replaces the rendered state.
func (m *Model) SetProps(p Props) {
	m.props = p
	m.cursor.ClampToBounds(len(p.AudioList), m.visibleItems())
}

// Props returns the rendered state.
func (m Model) Props() Props { return m.props }

// SetSize sets the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.cursor.ClampToBounds(len(m.props.AudioList), m.visibleItems())
}

// SetLoading shows or hides the loading spinner. The returned command
// drives the spinner.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// SpinnerTick advances the loading spinner.
func (m Model) SpinnerTick() tea.Msg { return m.spinner.Tick() }

// SetStatus shows msg in the footer instead of the help line. An empty
// msg restores the help line.
func (m *Model) SetStatus(msg string) { m.status = msg }

// Cursor returns the selected list index.
func (m Model) Cursor() int { return m.cursor.Pos() }

// Keys returns the bindings.
func (m Model) Keys() KeyMap { return m.keys }

func (m Model) listHeight() int {
	return max(m.height-BarHeight-footerHeight, 0)
}

func (m Model) visibleItems() int {
	return m.listHeight() / itemHeight
}

// Init implements the bubbletea model contract.
func (m Model) Init() tea.Cmd { return nil }

// Update handles keys, mouse and window events.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	n := len(m.props.AudioList)
	if m.cursor.HandleKey(msg, m.keys.KeyMap, n, m.visibleItems()) {
		return
	}
	switch {
	case key.Matches(msg, m.keys.Select):
		if n > 0 {
			m.cb.itemClick(m.cursor.Pos())
		}
	case key.Matches(msg, m.keys.Toggle):
		m.cb.start()
	case key.Matches(msg, m.keys.Next):
		m.cb.next()
	case key.Matches(msg, m.keys.Backward):
		m.cb.progress(m.props.Progress - sliderStep)
	case key.Matches(msg, m.keys.Forward):
		m.cb.progress(m.props.Progress + sliderStep)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	n := len(m.props.AudioList)
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cursor.Scroll(-1, n, m.visibleItems())
		return
	case tea.MouseButtonWheelDown:
		m.cursor.Scroll(1, n, m.visibleItems())
		return
	case tea.MouseButtonLeft:
	default:
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}

	listH := m.listHeight()
	switch {
	case msg.Y < listH:
		row := msg.Y / itemHeight
		if row >= m.visibleItems() {
			return
		}
		idx := m.cursor.Offset() + row
		if idx >= n {
			return
		}
		m.cursor.Jump(idx, n, m.visibleItems())
		m.cb.itemClick(idx)
	case msg.Y == listH+barRowControls:
		play, next := controlZones(m.props.IsAudioPlaying, m.width)
		switch {
		case play.contains(msg.X):
			m.cb.start()
		case next.contains(msg.X):
			m.cb.next()
		}
	case msg.Y == listH+barRowSlider:
		// The slider starts after a one-cell margin.
		width := max(m.width-2, 0)
		col := msg.X - 1
		if col < 0 || col >= width {
			return
		}
		m.cb.progress(sliderValue(col, width))
	}
}

// View renders the screen.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var b strings.Builder
	if m.listHeight() > 0 {
		b.WriteString(m.renderList())
		b.WriteString("\n")
	}
	b.WriteString(BottomBarPlayer(m.props, m.width))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderList() string {
	s := styles.T().S()
	listH := m.listHeight()
	lines := make([]string, 0, listH)

	items := m.props.AudioList
	switch {
	case len(items) == 0 && m.loading:
		lines = append(lines, " "+m.spinner.View()+" "+s.Muted.Render("Scanning library…"))
	case len(items) == 0:
		lines = append(lines, " "+s.Muted.Render("No audio files found"))
	default:
		cur := m.props.CurrentPlayingAudio
		start, end := m.cursor.VisibleRange(len(items), m.visibleItems())
		for i := start; i < end; i++ {
			a := items[i]
			playing := !cur.IsZero() && a.ID == cur.ID
			lines = append(lines, AudioItem(a, m.width, i == m.cursor.Pos(), playing))
		}
	}

	out := strings.Split(strings.Join(lines, "\n"), "\n")
	for len(out) < listH {
		out = append(out, "")
	}
	return strings.Join(out[:listH], "\n")
}

func (m Model) renderFooter() string {
	s := styles.T().S()
	if m.status != "" {
		return " " + s.Error.Render(render.Truncate(m.status, max(m.width-1, 0)))
	}
	return " " + m.help.View(m.keys)
}
