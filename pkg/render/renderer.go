package render

import (
	"context"
	"image"

	"github.com/nfnt/resize"
	"github.com/taigrr/sunray/pkg/scene"
	"github.com/taigrr/sunray/pkg/trace"
)

// Target is a PixelSink of fixed size.
type Target interface {
	PixelSink
	Size() (width, height int)
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Renderer runs one primary ray per pixel through a Tracer.
type Renderer struct {
	Tracer *trace.Tracer
}

// NewRenderer creates a renderer backed by t.
func NewRenderer(t *trace.Tracer) *Renderer {
	return &Renderer{Tracer: t}
}

// Render draws s as seen by cam into dst. The camera's aspect ratio is set
// from dst. Cancellation is checked between rows; on cancel the partially
// drawn frame is left in dst and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context, s *scene.Scene, cam *Camera, dst Target) error {
	w, h := dst.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	cam.SetAspectRatio(float64(w) / float64(h))

	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ndcY := 1 - 2*float64(y)/float64(h)
		for x := 0; x < w; x++ {
			ndcX := 2*float64(x)/float64(w) - 1
			dir := cam.RayForPixel(ndcX, ndcY)
			c := r.Tracer.CastRay(cam.Eye, dir, s, 0)
			dst.SetPacked(x, y, c.Packed())
		}
	}
	return nil
}

// RenderImage renders a width x height frame into a new image.
func (r *Renderer) RenderImage(ctx context.Context, s *scene.Scene, cam *Camera, width, height int) (*image.RGBA, error) {
	fb := NewFramebuffer(width, height)
	if err := r.Render(ctx, s, cam, fb); err != nil {
		return nil, err
	}
	return fb.ToImage(), nil
}

// Upscale enlarges src to fill dst with nearest-neighbour sampling, keeping
// the blocky look of a low-resolution frame.
func Upscale(src *Framebuffer, dst *Framebuffer) {
	if src.Width == dst.Width && src.Height == dst.Height {
		copy(dst.Pixels, src.Pixels)
		return
	}
	img := resize.Resize(uint(dst.Width), uint(dst.Height), src.ToImage(), resize.NearestNeighbor)
	dst.CopyFrom(img)
}

// ScaledSize returns the render resolution for a display of width x height
// at the given scale in (0, 1]. Neither side drops below 1.
func ScaledSize(width, height int, scale float64) (int, int) {
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	w := max(1, int(float64(width)*scale))
	h := max(1, int(float64(height)*scale))
	return w, h
}
