package home

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jetaudio/jetaudio/internal/audio"
	"github.com/jetaudio/jetaudio/internal/icons"
	"github.com/jetaudio/jetaudio/internal/ui/render"
	"github.com/jetaudio/jetaudio/internal/ui/styles"
)

// itemHeight is the number of terminal rows per list entry.
const itemHeight = 2

// markerWidth is the column reserved for the now-playing marker.
const markerWidth = 2

// AudioItem renders one list entry: the display name with the duration on
// the right, and the artist below.
func AudioItem(a audio.Audio, width int, selected, playing bool) string {
	s := styles.T().S()

	dur := s.Duration.Render(FormatDuration(int64(a.Duration)))
	nameWidth := max(width-markerWidth-lipgloss.Width(dur)-2, 0)

	marker := render.Pad("", markerWidth)
	nameStyle := s.Base
	if playing {
		marker = s.Playing.Render(render.Pad(icons.Playing(), markerWidth))
		nameStyle = s.Playing
	}

	name := nameStyle.Render(render.Clip(a.DisplayName, nameWidth))
	line1 := render.Row(marker+name, dur+" ", width)
	line2 := render.Pad("", markerWidth) + s.Muted.Render(render.Clip(a.Artist, max(width-markerWidth-1, 0)))

	if selected {
		line1 = s.Cursor.Width(width).Render(line1)
		line2 = s.Cursor.Width(width).Render(line2)
	}
	return line1 + "\n" + line2
}
