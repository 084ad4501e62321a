package scene

import (
	"github.com/taigrr/sunray/pkg/math3d"
)

// Scene is the set of primitives and lighting a frame is rendered from.
// Primitive order is kept stable so ties between equal distances resolve
// the same way every frame.
type Scene struct {
	Primitives []Primitive
	Light      *Light
	Ambient    float64
}

// New creates an empty scene lit by l.
func New(l *Light, ambient float64) *Scene {
	return &Scene{Light: l, Ambient: ambient}
}

// Add appends primitives to the scene.
func (s *Scene) Add(p ...Primitive) {
	s.Primitives = append(s.Primitives, p...)
}

// Len returns the number of primitives.
func (s *Scene) Len() int {
	return len(s.Primitives)
}

// Texture tags with dedicated patterns.
const (
	TagGround = "ground"
	TagSun    = "sun"
)

// Default builds the robot figure standing on a checkered slab, with a sun
// sphere in the sky.
func Default() *Scene {
	head := NewMaterial("head", math3d.RGB(200, 50, 50), 50, Albedo{0.4, 0.4, 0.2, 0}, 1)
	body := NewMaterial("body", math3d.RGB(100, 100, 255), 30, Albedo{0.6, 0.3, 0, 0}, 1)
	legs := NewMaterial("legs", math3d.RGB(80, 80, 80), 20, Albedo{0.8, 0.2, 0, 0}, 1)
	arms := NewMaterial("arms", math3d.RGB(80, 100, 80), 10, Albedo{0.6, 0.3, 0, 0}, 1)
	ground := NewMaterial(TagGround, math3d.RGB(34, 139, 34), 10, Albedo{0.6, 0.2, 0, 0}, 1)
	sun := NewMaterial(TagSun, math3d.RGB(255, 223, 0), 50, Albedo{1, 0.5, 0, 0}, 1)

	s := New(NewLight(math3d.V3(1, -1, 5), math3d.White(), 1), 0.1)
	s.Add(
		NewSphere(math3d.V3(0, 1, 0), 0.5, head),
		NewBox(math3d.V3(-0.5, -1, -0.5), math3d.V3(0.5, 0.5, 0.5), body),
		NewBox(math3d.V3(-0.3, -2, -0.3), math3d.V3(-0.1, -1, 0.1), legs),
		NewBox(math3d.V3(0.1, -2, -0.3), math3d.V3(0.3, -1, 0.1), legs),
		NewBox(math3d.V3(-1, 0, -0.3), math3d.V3(-0.7, 0.5, 0.3), arms),
		NewBox(math3d.V3(0.7, 0, -0.3), math3d.V3(1, 0.5, 0.3), arms),
		NewBox(math3d.V3(-10, -2.1, -10), math3d.V3(10, -2, 10), ground),
		NewSphere(math3d.V3(5, 5, -5), 1, sun),
	)
	return s
}
