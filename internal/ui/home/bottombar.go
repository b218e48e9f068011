package home

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/icons"
	"github.com/jetaudio/jetaudio/internal/ui/render"
	"github.com/jetaudio/jetaudio/internal/ui/styles"
)

// BarHeight is the height of the bottom bar: divider, info and controls,
// artist, slider.
const BarHeight = 4

// Rows of the bar relative to its top.
const (
	barRowControls = 1
	barRowSlider   = 3
)

// controlGap separates the play and next buttons.
const controlGap = "  "

// span is a half-open column range.
type span struct{ start, end int }

func (s span) contains(x int) bool { return x >= s.start && x < s.end }

// BottomBarPlayer renders the player bar for the given props.
func BottomBarPlayer(p Props, width int) string {
	s := styles.T().S()
	ctrl := MediaPlayerController(p.IsAudioPlaying)
	ctrlWidth := lipgloss.Width(ctrl) + 1

	info := strings.SplitN(ArtistInfo(p.CurrentPlayingAudio, max(width-ctrlWidth-2, 0)), "\n", 2)
	for len(info) < 2 {
		info = append(info, "")
	}

	lines := []string{
		s.Divider.Render(strings.Repeat("─", max(width, 0))),
		render.Row(" "+info[0], ctrl+" ", width),
		" " + info[1],
		" " + Slider(p.Progress, max(width-2, 0)),
	}
	return strings.Join(lines, "\n")
}

// ArtistInfo renders the music-note badge next to the title and artist of
// a, on two lines clipped to width.
func ArtistInfo(a audio.Audio, width int) string {
	s := styles.T().S()
	badge := s.Badge.Render(icons.MusicNote())
	textWidth := max(width-lipgloss.Width(badge)-1, 0)

	title := a.Title
	if title == "" {
		title = a.DisplayName
	}
	var top string
	if a.IsZero() {
		top = s.Subtle.Render(render.Clip("Not playing", textWidth))
	} else {
		top = s.Title.Render(render.Clip(title, textWidth))
	}
	bottom := s.Muted.Render(render.Clip(a.Artist, textWidth))

	pad := strings.Repeat(" ", lipgloss.Width(badge))
	return badge + " " + top + "\n" + pad + " " + bottom
}

// MediaPlayerController renders the play/pause and skip-next buttons.
func MediaPlayerController(playing bool) string {
	s := styles.T().S()
	return s.Control.Render(icons.PlayPause(playing)) + controlGap + s.Control.Render(icons.Next())
}

// controlZones returns the clickable columns of the play and next buttons
// for a bar of the given width.
func controlZones(playing bool, width int) (play, next span) {
	playW := lipgloss.Width(icons.PlayPause(playing))
	nextW := lipgloss.Width(icons.Next())
	start := width - 1 - (playW + len(controlGap) + nextW)
	play = span{start, start + playW}
	next = span{play.end + len(controlGap), play.end + len(controlGap) + nextW}
	return play, next
}

// Slider renders a seek bar for value in 0..100 across width cells.
func Slider(value float64, width int) string {
	if width <= 0 {
		return ""
	}
	s := styles.T().S()
	t := styles.T()
	knob := sliderKnob(value, width)

	filled := ""
	if knob > 0 {
		filled = styles.ApplyGradient(strings.Repeat("━", knob), t.Primary, t.Secondary)
	}
	rest := s.Subtle.Render(strings.Repeat("─", width-knob-1))
	return filled + s.Playing.Render("●") + rest
}

// sliderKnob is the knob column for value.
func sliderKnob(value float64, width int) int {
	if width <= 1 {
		return 0
	}
	return int(math.Round(clampProgress(value) / 100 * float64(width-1)))
}

// sliderValue maps a column inside a slider of the given width back to a
// value in 0..100.
func sliderValue(col, width int) float64 {
	if width <= 1 {
		return 0
	}
	return clampProgress(float64(col) / float64(width-1) * 100)
}
