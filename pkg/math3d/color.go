package math3d

import (
	"image/color"
	"math"
)

// Color holds linear channel intensities in display units, where 255 is
// full brightness. Channels are allowed to exceed [0, 255] while light is
// being accumulated; they are only clamped by Packed and RGBA.
type Color struct {
	R, G, B float64
}

// RGB creates a Color from channel values.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Black returns the zero color.
func Black() Color {
	return Color{}
}

// White returns full-intensity white.
func White() Color {
	return Color{255, 255, 255}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Lerp returns the linear interpolation between c and o by t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Packed clamps each channel to [0, 255] and packs them as 0xRRGGBB.
func (c Color) Packed() uint32 {
	return uint32(channel8(c.R))<<16 | uint32(channel8(c.G))<<8 | uint32(channel8(c.B))
}

// RGBA converts to an opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{channel8(c.R), channel8(c.G), channel8(c.B), 255}
}

// Unpack converts a 0xRRGGBB value into an opaque 8-bit color.
func Unpack(rgb uint32) color.RGBA {
	return color.RGBA{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), 255}
}

// channel8 clamps to [0, 255] and truncates. NaN maps to 0.
func channel8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
