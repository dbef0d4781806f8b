package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vetovoima/internal/core"
)

// Theme contains the visual styles of the game screen and the launcher.
type Theme struct {
	// Cells maps screen cell colors to terminal styles
	Cells map[core.Color]lipgloss.Style

	// Launcher styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuFooter      lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Theme{
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorRed:           fg("1"),
			core.ColorGreen:         fg("2"),
			core.ColorYellow:        fg("3"),
			core.ColorBlue:          fg("4"),
			core.ColorMagenta:       fg("5"),
			core.ColorCyan:          fg("6"),
			core.ColorWhite:         fg("7"),
			core.ColorBrightRed:     fg("9"),
			core.ColorBrightGreen:   fg("10"),
			core.ColorBrightYellow:  fg("11"),
			core.ColorBrightBlue:    fg("12"),
			core.ColorBrightMagenta: fg("13"),
			core.ColorBrightCyan:    fg("14"),
			core.ColorBrightWhite:   fg("15"),
			core.ColorOrange:        fg("208"),
			core.ColorGray:          fg("245"),
			core.ColorDarkGray:      fg("238"),
		},

		MenuTitle:       fg("14").Bold(true),
		MenuItemNormal:  fg("250"),
		MenuItemActive:  fg("229").Background(lipgloss.Color("57")).Bold(true),
		MenuDescription: fg("241").Italic(true),
		MenuFooter:      fg("241"),
	}
}

// theme is the style set used by every screen.
var theme = DefaultTheme()

// cellStyle returns the style for a cell color, falling back to the
// default style for unknown colors.
func (t Theme) cellStyle(c core.Color) lipgloss.Style {
	if style, ok := t.Cells[c]; ok {
		return style
	}
	return t.Cells[core.ColorDefault]
}
