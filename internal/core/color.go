package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Terminal palette.
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
	ColorBrightWhite
	ColorNavy
	ColorGray
)

// Element colors, mirroring the materials of each entity kind.
const (
	ColorPlayer      = ColorBrightRed
	ColorUpperPiece  = ColorNavy
	ColorLowerPiece  = ColorBrightBlue
	ColorGround      = ColorGreen
	ColorText        = ColorBrightWhite
	ColorButton      = ColorGray
	ColorButtonFocus = ColorBrightYellow
)
