package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vetovoima/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(1, 1, "xy")

	if got := RenderScreen(s); got != s.String() {
		t.Errorf("uncolored screen rendered as %q, expected %q", got, s.String())
	}
}

func TestRenderScreenColored(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawTextColor(0, 0, "red", core.ColorRed)
	s.DrawTextColor(3, 0, "!", core.ColorOrange)
	s.DrawTextColor(0, 1, "gone", core.Fade(1))

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 8 {
			t.Errorf("line %d printed width = %d, expected 8", i, w)
		}
	}
	if !strings.Contains(out, "red") || !strings.Contains(out, "gone") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func TestThemeCoversEveryColor(t *testing.T) {
	th := DefaultTheme()
	for c := core.ColorDefault; c <= core.ColorDarkGray; c++ {
		if _, ok := th.Cells[c]; !ok {
			t.Errorf("theme has no style for color %d", c)
		}
	}

	// Unknown colors fall back to the default style
	if got := th.cellStyle(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered as %q", got)
	}
}
