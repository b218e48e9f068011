package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestApplyGradient_PreservesText(t *testing.T) {
	tests := []string{"", "x", "━━━━━━", "Björk"}
	for _, text := range tests {
		got := ansi.Strip(ApplyGradient(text, T().Primary, T().Secondary))
		if got != text {
			t.Errorf("ApplyGradient(%q) stripped = %q", text, got)
		}
	}
}

func TestBlendColors_Endpoints(t *testing.T) {
	colors := blendColors(5, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))
	if len(colors) != 5 {
		t.Fatalf("len = %d, want 5", len(colors))
	}
	for i, c := range colors {
		if hex := colorToHex(c); len(hex) != 7 || hex[0] != '#' {
			t.Errorf("colors[%d] = %q, want #rrggbb", i, hex)
		}
	}
}

func TestHexOrGray_ANSIFallback(t *testing.T) {
	if got := hexOrGray(lipgloss.Color("240")).Hex(); got != "#808080" {
		t.Errorf("hexOrGray(240) = %s, want #808080", got)
	}
}
