package home

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jetaudio/jetaudio/internal/ui/cursor"
)

// sliderStep is how far ←/→ move the slider.
const sliderStep = 5

// KeyMap holds the home screen bindings.
type KeyMap struct {
	cursor.KeyMap
	Select   key.Binding
	Toggle   key.Binding
	Next     key.Binding
	Backward key.Binding
	Forward  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyMap:   cursor.DefaultKeyMap(),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Backward: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "seek")),
		Forward:  key.NewBinding(key.WithKeys("right", "l")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Toggle, k.Next, k.Backward, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
