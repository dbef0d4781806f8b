package tui

import (
	"strings"

	"github.com/vovakirdan/vetovoima/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return theme.Render(s)
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one styled run to keep the
// number of ANSI escape sequences low; uncolored runs are written as is.
func (t Theme) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(t.cellStyle(color).Render(run.String()))
		}
	}
	return sb.String()
}
