// Package trace implements the recursive ray caster: nearest-hit search,
// shadows, Phong lighting, reflection, refraction and procedural surface
// patterns.
package trace

import (
	"github.com/taigrr/sunray/pkg/math3d"
	"github.com/taigrr/sunray/pkg/scene"
)

// Config holds the tunables of a Tracer.
type Config struct {
	// Bias is how far secondary rays start from the surface they leave.
	Bias float64

	// MaxDepth is the deepest recursion level that still tests geometry.
	// Rays cast beyond it return the sky.
	MaxDepth int

	// Scales applied to the reflective and transmissive albedo weights.
	ReflectionScale   float64
	TransmissionScale float64

	// Sky gradient endpoints.
	SkyTop    math3d.Color
	SkyBottom math3d.Color

	// Patterns maps a material tag to its surface pattern. Tags without an
	// entry use Gradient.
	Patterns map[string]Pattern
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Bias:              1e-4,
		MaxDepth:          3,
		ReflectionScale:   0.8,
		TransmissionScale: 0.9,
		SkyTop:            math3d.RGB(135, 206, 250),
		SkyBottom:         math3d.RGB(25, 25, 112),
		Patterns: map[string]Pattern{
			scene.TagGround: Checker(10, math3d.White(), math3d.Black()),
			scene.TagSun:    Emissive,
		},
	}
}

func (c Config) pattern(tag string) Pattern {
	if p, ok := c.Patterns[tag]; ok && p != nil {
		return p
	}
	return Gradient
}
