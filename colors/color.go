// Package colors provides a linear floating-point RGBA color with the
// blending operations the compositor needs.
package colors

import "image/color"

// Color4 is a linear RGBA color with float64 components in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

func Black() Color4 {
	return Color4{A: 1}
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

// From8Bit converts 8-bit RGB to a fully opaque Color4.
func From8Bit(r, g, b byte) Color4 {
	return Color4{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}
}

// FromStandardColor converts any color.Color, de-premultiplying alpha.
func FromStandardColor(c color.Color) Color4 {
	r16, g16, b16, a16 := c.RGBA()
	if a16 == 0 {
		return Color4{}
	}
	invA := float64(0xFFFF) / float64(a16)
	return Color4{
		R: float64(r16) * invA / 65535,
		G: float64(g16) * invA / 65535,
		B: float64(b16) * invA / 65535,
		A: float64(a16) / 65535,
	}
}

// Add returns c + o (component-wise).
func (c Color4) Add(o Color4) Color4 {
	return Color4{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Scale returns c * s (scalar, all components).
func (c Color4) Scale(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Mix returns the linear blend c*(1-t) + o*t.
func (c Color4) Mix(o Color4, t float64) Color4 {
	return c.Scale(1 - t).Add(o.Scale(t))
}

// WithAlpha returns c with the alpha channel replaced.
func (c Color4) WithAlpha(a float64) Color4 {
	return Color4{R: c.R, G: c.G, B: c.B, A: a}
}

// Clamp01 clamps each component into [0,1].
func (c Color4) Clamp01() Color4 {
	return Color4{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// ToNRGBA converts to 8-bit non-premultiplied RGBA, rounding.
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8bit(c.R),
		G: to8bit(c.G),
		B: to8bit(c.B),
		A: to8bit(c.A),
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func to8bit(x float64) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}
