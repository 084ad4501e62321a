package scene

import (
	"math"

	"github.com/taigrr/sunray/pkg/math3d"
)

// Sphere is a sphere given by center and radius.
type Sphere struct {
	Center   math3d.Vec3
	Radius   float64
	Material Material
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3, radius float64, m Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: m}
}

// Intersect solves the ray/sphere quadratic and reports the nearest root in
// front of the origin.
func (s *Sphere) Intersect(origin, dir math3d.Vec3) Intersection {
	if s.Radius <= 0 {
		return NoHit()
	}

	a := dir.Dot(dir)
	if a == 0 {
		return NoHit()
	}

	oc := origin.Sub(s.Center)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return NoHit()
	}

	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < HitEpsilon {
		t = (-b + sq) / (2 * a)
		if t < HitEpsilon {
			return NoHit()
		}
	}

	point := origin.Add(dir.Scale(t))
	normal := point.Sub(s.Center).Div(s.Radius)
	return hit(t, point, normal, s.Material)
}
