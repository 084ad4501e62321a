package scene

import (
	"math"

	"github.com/taigrr/sunray/pkg/math3d"
)

// Box is an axis-aligned box given by its min and max corners.
type Box struct {
	Min      math3d.Vec3
	Max      math3d.Vec3
	Material Material

	// FaceNormals reports the exact normal of the face that was hit.
	// When false, the normal points from the box centroid to the hit point,
	// which is only axis-aligned at face centers.
	FaceNormals bool
}

// NewBox creates a box spanning the two corners in any order.
func NewBox(a, b math3d.Vec3, m Material) *Box {
	return &Box{Min: a.Min(b), Max: a.Max(b), Material: m}
}

// Center returns the centroid of the box.
func (b *Box) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Intersect runs the slab test. Zero direction components rely on IEEE-754
// division producing signed infinities.
func (b *Box) Intersect(origin, dir math3d.Vec3) Intersection {
	if dir.IsZero() {
		return NoHit()
	}
	inv := dir.Recip()

	tmin, tmax := slab(b.Min.X, b.Max.X, origin.X, inv.X)

	tymin, tymax := slab(b.Min.Y, b.Max.Y, origin.Y, inv.Y)
	if tmin > tymax || tymin > tmax {
		return NoHit()
	}
	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin, tzmax := slab(b.Min.Z, b.Max.Z, origin.Z, inv.Z)
	if tmin > tzmax || tzmin > tmax {
		return NoHit()
	}
	if tzmin > tmin {
		tmin = tzmin
	}
	if tzmax < tmax {
		tmax = tzmax
	}

	// Entirely behind the origin.
	if tmax < HitEpsilon {
		return NoHit()
	}

	// Origin inside the box: the first boundary crossed is the exit.
	distance := tmin
	if distance < HitEpsilon {
		distance = tmax
	}
	if math.IsNaN(distance) {
		return NoHit()
	}

	point := origin.Add(dir.Scale(distance))
	return hit(distance, point, b.normalAt(point), b.Material)
}

func (b *Box) normalAt(p math3d.Vec3) math3d.Vec3 {
	center := b.Center()
	if !b.FaceNormals {
		return p.Sub(center).Normalize()
	}

	// Pick the axis where the hit point lies furthest out relative to the
	// half extent.
	half := b.Max.Sub(b.Min).Scale(0.5)
	d := p.Sub(center)
	rel := math3d.V3(ratio(d.X, half.X), ratio(d.Y, half.Y), ratio(d.Z, half.Z))
	abs := rel.Abs()

	switch {
	case abs.X >= abs.Y && abs.X >= abs.Z:
		return math3d.V3(math.Copysign(1, rel.X), 0, 0)
	case abs.Y >= abs.Z:
		return math3d.V3(0, math.Copysign(1, rel.Y), 0)
	default:
		return math3d.V3(0, 0, math.Copysign(1, rel.Z))
	}
}

// slab returns the ordered entry and exit distances for one axis.
func slab(lo, hi, origin, inv float64) (float64, float64) {
	t0 := (lo - origin) * inv
	t1 := (hi - origin) * inv
	if t0 > t1 {
		return t1, t0
	}
	return t0, t1
}

func ratio(d, half float64) float64 {
	if half == 0 {
		return 0
	}
	return d / half
}
