package highlight

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	ColorBlack = Color{R: 0, G: 0, B: 0}
	ColorWhite = Color{R: 255, G: 255, B: 255}
)

// ColorFromRGB creates a color from 8-bit components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromInt splits a packed 24-bit RGB integer into channels.
// This is the wire format Neovim uses for rgb attributes.
func ColorFromInt(v int) Color {
	return Color{
		R: uint8((v >> 16) & 0xFF),
		G: uint8((v >> 8) & 0xFF),
		B: uint8(v & 0xFF),
	}
}

// Int returns the packed 24-bit RGB value.
func (c Color) Int() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a hex representation of the color.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// colorful converts to a go-colorful color for channel math.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(cc colorful.Color) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Lighten returns a lighter version of the color.
// Amount should be 0.0 to 1.0.
func (c Color) Lighten(amount float64) Color {
	return fromColorful(c.colorful().BlendLab(ColorWhite.colorful(), amount))
}

// Darken returns a darker version of the color.
// Amount should be 0.0 to 1.0.
func (c Color) Darken(amount float64) Color {
	return fromColorful(c.colorful().BlendLab(ColorBlack.colorful(), amount))
}

// Blend blends two colors together.
// Amount 0.0 = c, 1.0 = other.
func (c Color) Blend(other Color, amount float64) Color {
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}
