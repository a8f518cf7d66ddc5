package core

// Color is a foreground color for a screen cell.
// Values are ANSI 256-color codes so effects can address the full palette;
// ColorDefault leaves the terminal's own foreground untouched.
type Color int16

// Named colors at their ANSI 256 codes.
const (
	ColorDefault Color = -1

	ColorRed           Color = 1
	ColorGreen         Color = 2
	ColorYellow        Color = 3
	ColorBlue          Color = 4
	ColorMagenta       Color = 5
	ColorCyan          Color = 6
	ColorWhite         Color = 7
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
	ColorDarkGreen     Color = 22
	ColorOrange        Color = 208
	ColorGray          Color = 245
)

// IsDefault reports whether the color defers to the terminal foreground.
func (c Color) IsDefault() bool {
	return c < 0 || c > 255
}
