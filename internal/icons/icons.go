// Package icons provides the glyphs used by the player controls.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the glyphs for one style.
type Icons struct {
	Play      string
	Pause     string
	Next      string
	MusicNote string
	Playing   string
}

var (
	nerdIcons = Icons{
		Play:      "", // nf-fa-play
		Pause:     "", // nf-fa-pause
		Next:      "", // nf-fa-step_forward
		MusicNote: "", // nf-fa-music
		Playing:   "󰎈", // nf-md-music_note
	}

	unicodeIcons = Icons{
		Play:      "▶",
		Pause:     "⏸",
		Next:      "⏭",
		MusicNote: "♪",
		Playing:   "♫",
	}

	noneIcons = Icons{
		Play:      "[>]",
		Pause:     "[||]",
		Next:      "[>>]",
		MusicNote: "*",
		Playing:   ">",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Unknown styles fall back to unicode.
func Init(style string) {
	current = ForStyle(style)
}

// ForStyle returns the icon set for style.
func ForStyle(style string) Icons {
	switch Style(style) {
	case StyleNerd:
		return nerdIcons
	case StyleNone:
		return noneIcons
	default:
		return unicodeIcons
	}
}

// Current returns the active icon set.
func Current() Icons { return current }

func Play() string      { return current.Play }
func Pause() string     { return current.Pause }
func Next() string      { return current.Next }
func MusicNote() string { return current.MusicNote }
func Playing() string   { return current.Playing }

// PlayPause returns Pause while playing and Play otherwise.
func PlayPause(playing bool) string {
	if playing {
		return current.Pause
	}
	return current.Play
}
