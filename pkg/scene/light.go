package scene

import "github.com/taigrr/sunray/pkg/math3d"

// Light is a single point light. It is mutated between frames by the day
// cycle and read-only while a frame renders.
type Light struct {
	Position  math3d.Vec3
	Color     math3d.Color
	Intensity float64
}

// NewLight creates a point light.
func NewLight(pos math3d.Vec3, c math3d.Color, intensity float64) *Light {
	return &Light{Position: pos, Color: c, Intensity: intensity}
}
