// Package render turns a scene into pixels: the camera that generates
// primary rays, the frame loop that drives the tracer, and the framebuffer
// the pixels land in.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/taigrr/sunray/pkg/math3d"
)

// PixelSink receives the packed 0xRRGGBB color of each rendered pixel.
type PixelSink interface {
	SetPacked(x, y int, rgb uint32)
}

// Framebuffer is a 2D array of pixels that can be rendered to the terminal.
// We use double vertical resolution by using half-block characters (▀▄).
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// SetPacked sets a pixel from a packed 0xRRGGBB value.
func (fb *Framebuffer) SetPacked(x, y int, rgb uint32) {
	fb.SetPixel(x, y, math3d.Unpack(rgb))
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// CopyFrom fills the framebuffer from img, which must be at least as large.
func (fb *Framebuffer) CopyFrom(img image.Image) {
	b := img.Bounds()
	for y := 0; y < fb.Height && y < b.Dy(); y++ {
		for x := 0; x < fb.Width && x < b.Dx(); x++ {
			fb.Pixels[y*fb.Width+x] = color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
		}
	}
}

// Save writes the framebuffer to path. The format follows the extension
// (png, jpg, gif, tif, bmp).
func (fb *Framebuffer) Save(path string) error {
	if err := imaging.Save(fb.ToImage(), path); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	return nil
}
