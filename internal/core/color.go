package core

// Color is a cell foreground. The platform layer decides how each one looks.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray
)
