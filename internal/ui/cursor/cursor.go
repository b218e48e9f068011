// Package cursor tracks the selected row and scroll offset of a list whose
// length and viewport height can change between frames.
package cursor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the navigation bindings understood by HandleKey.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultKeyMap returns vim-style and arrow bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown")),
		Top:      key.NewBinding(key.WithKeys("g", "home")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end")),
	}
}

// Cursor manages cursor position and scroll offset.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above/below the cursor
}

// New creates a Cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the current cursor position.
func (c Cursor) Pos() int { return c.pos }

// Offset returns the index of the first visible row.
func (c Cursor) Offset() int { return c.offset }

// Move moves the cursor by delta rows and scrolls to keep it visible.
func (c *Cursor) Move(delta, listLen, height int) {
	c.Jump(c.pos+delta, listLen, height)
}

// Jump places the cursor at pos, clamped to the list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		c.pos, c.offset = 0, 0
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.follow(listLen, height)
}

// Scroll moves the viewport by delta rows without moving the cursor
// further than needed to keep it on screen (mouse wheel).
func (c *Cursor) Scroll(delta, listLen, height int) {
	if listLen == 0 || height <= 0 {
		return
	}
	c.offset = clamp(c.offset+delta, max(listLen-height, 0))
	c.pos = min(max(c.pos, c.offset), c.offset+height-1, listLen-1)
}

// ClampToBounds keeps the cursor inside a list that may have shrunk.
func (c *Cursor) ClampToBounds(listLen, height int) {
	c.Jump(c.pos, listLen, height)
}

// VisibleRange returns the visible indices [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

// HandleKey applies a navigation key and reports whether it was one.
func (c *Cursor) HandleKey(msg tea.KeyMsg, km KeyMap, listLen, height int) bool {
	switch {
	case key.Matches(msg, km.Up):
		c.Move(-1, listLen, height)
	case key.Matches(msg, km.Down):
		c.Move(1, listLen, height)
	case key.Matches(msg, km.PageUp):
		c.Move(-max(height/2, 1), listLen, height)
	case key.Matches(msg, km.PageDown):
		c.Move(max(height/2, 1), listLen, height)
	case key.Matches(msg, km.Top):
		c.Jump(0, listLen, height)
	case key.Matches(msg, km.Bottom):
		c.Jump(listLen-1, listLen, height)
	default:
		return false
	}
	return true
}

func (c *Cursor) follow(listLen, height int) {
	if height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, maxVal int) int {
	return min(max(v, 0), maxVal)
}
