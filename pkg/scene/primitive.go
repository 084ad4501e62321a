package scene

import (
	"math"

	"github.com/taigrr/sunray/pkg/math3d"
)

// HitEpsilon is the smallest distance along a ray that counts as a hit.
const HitEpsilon = 1e-6

// Primitive is anything a ray can be tested against.
type Primitive interface {
	// Intersect tests the ray starting at origin along the unit vector dir.
	Intersect(origin, dir math3d.Vec3) Intersection
}

// Intersection is the result of a single ray/primitive query.
type Intersection struct {
	Hit      bool
	Distance float64     // Distance along the ray, +Inf when there is no hit
	Point    math3d.Vec3 // World-space hit point
	Normal   math3d.Vec3 // Unit surface normal
	Material Material    // Copy of the primitive's material
}

// NoHit returns the empty intersection.
func NoHit() Intersection {
	return Intersection{
		Distance: math.Inf(1),
		Material: Black(),
	}
}

func hit(distance float64, point, normal math3d.Vec3, m Material) Intersection {
	return Intersection{
		Hit:      true,
		Distance: distance,
		Point:    point,
		Normal:   normal,
		Material: m,
	}
}
