package graphics

import (
	"image/color"

	"github.com/spaghettifunk/anima2d/engine/math"
)

// Color is a straight (non premultiplied) 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	White       = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black       = Color{A: 0xff}
	Red         = Color{R: 0xff, A: 0xff}
	Green       = Color{G: 0xff, A: 0xff}
	Blue        = Color{B: 0xff, A: 0xff}
	Transparent = Color{}
)

func NewColor(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ColorFromFloats converts [0,1] components, clamping out of range values.
func ColorFromFloats(r, g, b, a float32) Color {
	return Color{
		R: unitToByte(r),
		G: unitToByte(g),
		B: unitToByte(b),
		A: unitToByte(a),
	}
}

// Grey is an opaque color with all channels set to v.
func Grey(v uint8) Color {
	return Color{R: v, G: v, B: v, A: 0xff}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Mul multiplies channel by channel, which is how tints are applied.
func (c Color) Mul(o Color) Color {
	return Color{
		R: mulByte(c.R, o.R),
		G: mulByte(c.G, o.G),
		B: mulByte(c.B, o.B),
		A: mulByte(c.A, o.A),
	}
}

func (c Color) IsWhite() bool {
	return c == White
}

func unitToByte(v float32) uint8 {
	return uint8(math.Saturate(v)*255 + 0.5)
}

func mulByte(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}
