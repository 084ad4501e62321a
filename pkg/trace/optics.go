package trace

import (
	"math"

	"github.com/taigrr/sunray/pkg/math3d"
	"github.com/taigrr/sunray/pkg/scene"
)

// Reflect mirrors incident about normal.
func Reflect(incident, normal math3d.Vec3) math3d.Vec3 {
	return incident.Reflect(normal)
}

// Refract bends incident through a surface with outward normal into a medium
// of index etaT, or out of it when the ray arrives from inside. Total
// internal reflection returns the mirror direction.
func Refract(incident, normal math3d.Vec3, etaT float64) math3d.Vec3 {
	if etaT <= 0 {
		etaT = 1
	}

	cosi := -math.Max(-1, math.Min(1, incident.Dot(normal)))
	eta := 1 / etaT
	n := normal
	if cosi < 0 {
		// Leaving the medium.
		cosi = -cosi
		eta = etaT
		n = normal.Negate()
	}

	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return Reflect(incident, n)
	}
	return incident.Scale(eta).Add(n.Scale(eta*cosi - math.Sqrt(k)))
}

// offsetOrigin nudges a hit point off the surface, on the side dir leaves
// toward.
func offsetOrigin(hit scene.Intersection, dir math3d.Vec3, bias float64) math3d.Vec3 {
	offset := hit.Normal.Scale(bias)
	if dir.Dot(hit.Normal) < 0 {
		return hit.Point.Sub(offset)
	}
	return hit.Point.Add(offset)
}
