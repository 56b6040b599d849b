package forge

import (
	"image/color"

	"github.com/gogpu/forge/internal/blend"
)

// Color is the canonical pipeline color: straight (non-premultiplied) RGBA
// with 8 bits per channel. Every pixel format decodes to and encodes from
// Color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{}
)

// RGB creates an opaque color from byte components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ColorF creates a color from normalized float components, clamping each to [0, 1].
func ColorF(r, g, b, a float32) Color {
	return Color{
		R: blend.Unit(r),
		G: blend.Unit(g),
		B: blend.Unit(b),
		A: blend.Unit(a),
	}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA converts the color to the standard library's straight-alpha type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Floats returns the components normalized to [0, 1].
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

// Modulate multiplies two colors channel by channel.
func (c Color) Modulate(o Color) Color {
	return Color{
		R: blend.MulDiv255(c.R, o.R),
		G: blend.MulDiv255(c.G, o.G),
		B: blend.MulDiv255(c.B, o.B),
		A: blend.MulDiv255(c.A, o.A),
	}
}

// Lerp interpolates between c (t=0) and o (t=255).
func (c Color) Lerp(o Color, t uint8) Color {
	return Color{
		R: blend.Lerp(o.R, c.R, t),
		G: blend.Lerp(o.G, c.G, t),
		B: blend.Lerp(o.B, c.B, t),
		A: blend.Lerp(o.A, c.A, t),
	}
}

// luminance returns the Rec. 601 luma of the color, rounded to nearest.
func (c Color) luminance() uint8 {
	return uint8((uint32(c.R)*299 + uint32(c.G)*587 + uint32(c.B)*114 + 500) / 1000)
}
