package home

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/icons"
	"github.com/jetaudio/jetaudio/internal/ui/testutil"
)

type recorder struct {
	clicks   []int
	starts   int
	nexts    int
	progress []float64
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnProgress:  func(v float64) { r.progress = append(r.progress, v) },
		OnItemClick: func(i int) { r.clicks = append(r.clicks, i) },
		OnStart:     func() { r.starts++ },
		OnNext:      func() { r.nexts++ },
	}
}

func sampleList(n int) []audio.Audio {
	list := make([]audio.Audio, n)
	for i := range list {
		list[i] = audio.New(int64(i+1), "/m/"+string(rune('a'+i))+".mp3", "", "", 1000)
	}
	return list
}

// newScreen returns a 40x20 screen: 15 list rows (7 items), bar rows
// 15..18, footer row 19.
func newScreen(t *testing.T, r *recorder, props Props) Model {
	t.Helper()
	m := HomeScreen(r.callbacks())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m.SetProps(props)
	return m
}

func TestKeys(t *testing.T) {
	r := &recorder{}
	m := newScreen(t, r, Props{Progress: 2, AudioList: sampleList(3)})

	m, _ = m.Update(testutil.Key("enter"))
	m, _ = m.Update(testutil.Key("down"))
	m, _ = m.Update(testutil.Key("enter"))
	m, _ = m.Update(testutil.Key("space"))
	m, _ = m.Update(testutil.Key("n"))
	m, _ = m.Update(testutil.Key("left"))
	m, _ = m.Update(testutil.Key("right"))

	if len(r.clicks) != 2 || r.clicks[0] != 0 || r.clicks[1] != 1 {
		t.Errorf("clicks = %v, want [0 1]", r.clicks)
	}
	if r.starts != 1 {
		t.Errorf("starts = %d, want 1", r.starts)
	}
	if r.nexts != 1 {
		t.Errorf("nexts = %d, want 1", r.nexts)
	}
	if len(r.progress) != 2 || r.progress[0] != 0 || r.progress[1] != 7 {
		t.Errorf("progress = %v, want [0 7]", r.progress)
	}
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", m.Cursor())
	}
}

func TestKeys_EmptyList(t *testing.T) {
	r := &recorder{}
	m := newScreen(t, r, Props{})
	m, _ = m.Update(testutil.Key("enter"))
	m.Update(testutil.Key("down"))
	if len(r.clicks) != 0 {
		t.Errorf("clicks on empty list = %v", r.clicks)
	}
}

func TestNilCallbacks(t *testing.T) {
	m := HomeScreen(Callbacks{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m.SetProps(Props{AudioList: sampleList(2)})
	for _, msg := range []tea.Msg{
		testutil.Key("enter"),
		testutil.Key("space"),
		testutil.Key("n"),
		testutil.Key("right"),
		testutil.Click(1, 18),
	} {
		m, _ = m.Update(msg)
	}
}

func TestMouse(t *testing.T) {
	icons.Init("none")
	defer icons.Init("unicode")

	r := &recorder{}
	m := newScreen(t, r, Props{AudioList: sampleList(3)})
	press := func(x, y int) {
		m, _ = m.Update(testutil.Click(x, y))
	}

	press(5, 3) // second item, artist row
	press(5, 9) // below the last item
	if len(r.clicks) != 1 || r.clicks[0] != 1 {
		t.Errorf("clicks = %v, want [1]", r.clicks)
	}
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", m.Cursor())
	}

	play, next := controlZones(false, 40)
	press(play.start, 16)
	press(next.start, 16)
	press(0, 16)
	if r.starts != 1 || r.nexts != 1 {
		t.Errorf("starts = %d, nexts = %d, want 1, 1", r.starts, r.nexts)
	}

	press(1, 18)
	press(38, 18)
	press(0, 18)
	if len(r.progress) != 2 || r.progress[0] != 0 || r.progress[1] != 100 {
		t.Errorf("progress = %v, want [0 100]", r.progress)
	}

	m, _ = m.Update(testutil.Release(5, 0))
	if len(r.clicks) != 1 {
		t.Errorf("release counted as click: %v", r.clicks)
	}
}

func TestView(t *testing.T) {
	r := &recorder{}
	cur := audio.New(2, "/m/b.mp3", "Bee", "Buzz", 1000)
	m := newScreen(t, r, Props{AudioList: sampleList(3), CurrentPlayingAudio: cur, Progress: 40})

	view := m.View()
	if got := strings.Count(view, "\n") + 1; got != 20 {
		t.Errorf("View() has %d lines, want 20", got)
	}
	if !testutil.ContainsLine(view, "a.mp3") || !testutil.ContainsLine(view, "Bee") {
		t.Errorf("View() misses content:\n%s", view)
	}

	m.SetStatus("scan failed")
	if !testutil.ContainsLine(m.View(), "scan failed") {
		t.Error("status not shown")
	}
}

func TestView_EmptyAndLoading(t *testing.T) {
	m := newScreen(t, &recorder{}, Props{})
	if !testutil.ContainsLine(m.View(), "No audio files found") {
		t.Error("empty list message missing")
	}
	if cmd := m.SetLoading(true); cmd == nil {
		t.Error("SetLoading(true) returned no spinner command")
	}
	if !testutil.ContainsLine(m.View(), "Scanning library") {
		t.Error("loading message missing")
	}
}

func TestSetProps_ClampsCursor(t *testing.T) {
	m := newScreen(t, &recorder{}, Props{AudioList: sampleList(5)})
	for range 4 {
		m, _ = m.Update(testutil.Key("down"))
	}
	if m.Cursor() != 4 {
		t.Fatalf("Cursor() = %d, want 4", m.Cursor())
	}
	m.SetProps(Props{AudioList: sampleList(2)})
	if m.Cursor() != 1 {
		t.Errorf("Cursor() after shrink = %d, want 1", m.Cursor())
	}
}
