package cursor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		delta      int
		listLen    int
		height     int
		wantPos    int
		wantOffset int
	}{
		{"down within view", 0, 1, 10, 5, 1, 0},
		{"up clamps at 0", 0, -1, 10, 5, 0, 0},
		{"down clamps at end", 9, 5, 10, 5, 9, 5},
		{"scrolls with margin", 3, 1, 10, 5, 4, 1},
		{"empty list", 3, 1, 0, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1)
			c.Jump(tt.start, tt.listLen, tt.height)
			c.Move(tt.delta, tt.listLen, tt.height)
			if c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
			if c.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", c.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestScroll_DragsCursorIntoView(t *testing.T) {
	c := New(0)
	c.Scroll(3, 10, 4)
	if c.Offset() != 3 {
		t.Errorf("Offset() = %d, want 3", c.Offset())
	}
	if c.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3", c.Pos())
	}

	c.Scroll(100, 10, 4)
	if c.Offset() != 6 {
		t.Errorf("Offset() = %d, want 6", c.Offset())
	}
}

func TestClampToBounds_AfterShrink(t *testing.T) {
	c := New(0)
	c.Jump(8, 10, 4)
	c.ClampToBounds(3, 4)
	if c.Pos() != 2 || c.Offset() != 0 {
		t.Errorf("got pos=%d offset=%d, want 2 0", c.Pos(), c.Offset())
	}
}

func TestVisibleRange(t *testing.T) {
	c := New(0)
	c.Jump(7, 10, 4)
	start, end := c.VisibleRange(10, 4)
	if start != 4 || end != 8 {
		t.Errorf("VisibleRange() = [%d,%d), want [4,8)", start, end)
	}
	if s, e := c.VisibleRange(0, 4); s != 0 || e != 0 {
		t.Errorf("VisibleRange(empty) = [%d,%d)", s, e)
	}
}

func TestHandleKey(t *testing.T) {
	km := DefaultKeyMap()
	c := New(0)

	if !c.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, km, 10, 5) || c.Pos() != 1 {
		t.Errorf("down: pos = %d, want 1", c.Pos())
	}
	c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, km, 10, 5)
	if c.Pos() != 9 {
		t.Errorf("G: pos = %d, want 9", c.Pos())
	}
	c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, km, 10, 5)
	if c.Pos() != 0 {
		t.Errorf("g: pos = %d, want 0", c.Pos())
	}
	if c.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, km, 10, 5) {
		t.Error("x should not be handled")
	}
}
