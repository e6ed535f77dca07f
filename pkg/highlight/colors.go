package highlight

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color used in highlight decisions. The canonical
// serialized form is lowercase "#rrggbb".
type Color struct {
	R, G, B uint8
}

// Default colors applied when a persisted entry is missing or malformed.
var (
	DefaultForeground = Color{R: 0x00, G: 0x00, B: 0x00}
	DefaultBackground = Color{R: 0xff, G: 0xff, B: 0x00}
	DefaultBookmark   = Color{R: 0x33, G: 0x66, B: 0xff}
)

// ParseColor parses a hex color string such as "#ff8800" or "#f80".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the canonical "#rrggbb" form.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}
