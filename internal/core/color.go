package core

// Color is the foreground color of a screen cell. The platform decides how
// each value looks on a terminal.
type Color uint8

// Token colors, one per board palette color.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange
)

// Chrome colors for frames, text and the cursor.
const (
	ColorFrame Color = iota + ColorOrange + 1
	ColorText
	ColorHighlight
)

var colorNames = [...]string{
	ColorDefault:   "default",
	ColorRed:       "red",
	ColorGreen:     "green",
	ColorBlue:      "blue",
	ColorYellow:    "yellow",
	ColorPurple:    "purple",
	ColorOrange:    "orange",
	ColorFrame:     "frame",
	ColorText:      "text",
	ColorHighlight: "highlight",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
