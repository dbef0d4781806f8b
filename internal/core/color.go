package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// fade lists colors from brightest to dimmest.
var fade = []Color{ColorBrightWhite, ColorWhite, ColorGray, ColorDarkGray}

// Fade returns a color from the white-to-dark ramp for t in [0, 1],
// where 0 is brightest. Values outside the range are clamped.
func Fade(t float64) Color {
	t = ClampF(t, 0, 1)
	i := int(t * float64(len(fade)-1))
	return fade[i]
}
