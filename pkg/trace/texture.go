package trace

import (
	"math"

	"github.com/taigrr/sunray/pkg/math3d"
	"github.com/taigrr/sunray/pkg/scene"
)

// Pattern computes the surface color at a hit from its spherical UV
// coordinates and material.
type Pattern func(uv math3d.Vec2, m scene.Material) math3d.Color

// SphericalUV maps a unit normal to UV coordinates in [0, 1].
func SphericalUV(n math3d.Vec3) math3d.Vec2 {
	y := math.Max(-1, math.Min(1, n.Y))
	return math3d.V2(
		0.5+math.Atan2(n.X, n.Z)/(2*math.Pi),
		0.5-math.Asin(y)/math.Pi,
	)
}

// Checker returns a pattern alternating between a and b in blocks of
// 1/size UV units.
func Checker(size float64, a, b math3d.Color) Pattern {
	return func(uv math3d.Vec2, _ scene.Material) math3d.Color {
		u := int(math.Floor(math.Abs(uv.X * size)))
		v := int(math.Floor(math.Abs(uv.Y * size)))
		if (u%2+v%2)%2 == 0 {
			return a
		}
		return b
	}
}

// Emissive ignores UV and returns the material's own color.
func Emissive(_ math3d.Vec2, m scene.Material) math3d.Color {
	return m.Color
}

// Gradient shades red by u, green by v and blue by their product.
func Gradient(uv math3d.Vec2, _ scene.Material) math3d.Color {
	return math3d.RGB(
		channel(uv.X*255),
		channel(uv.Y*255),
		channel(uv.X*uv.Y*255),
	)
}

// channel truncates to an 8-bit level.
func channel(v float64) float64 {
	return math.Min(255, math.Trunc(math.Abs(v)))
}
