package board

import (
	"fmt"
	"strings"
)

// Color identifies a token colour. The board treats colours as opaque values;
// only equality matters for matching.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorOrange
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorOrange:
		return 'O'
	default:
		return '?'
	}
}

// ParseColor converts a name or single letter to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "green", "g":
		return ColorGreen, true
	case "blue", "b":
		return ColorBlue, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "p":
		return ColorPurple, true
	case "orange", "o":
		return ColorOrange, true
	default:
		return ColorRed, false
	}
}

// AllColors returns every defined color in declaration order.
func AllColors() []Color {
	colors := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// Palette is the ordered list of colors a board draws from.
// A color listed twice is drawn twice as often.
type Palette []Color

// ParsePalette converts color names to a Palette.
func ParsePalette(names []string) (Palette, error) {
	p := make(Palette, 0, len(names))
	for _, name := range names {
		c, ok := ParseColor(name)
		if !ok {
			return nil, &ConfigError{Field: "palette", Message: fmt.Sprintf("unknown color %q", name)}
		}
		p = append(p, c)
	}
	return p, nil
}

// Contains reports whether c is drawn by this palette.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Names returns the palette as color names.
func (p Palette) Names() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.String()
	}
	return names
}

// Clone returns a copy of the palette.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	copy(out, p)
	return out
}
