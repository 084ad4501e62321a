package trace

import (
	"math"

	"github.com/taigrr/sunray/pkg/math3d"
	"github.com/taigrr/sunray/pkg/scene"
)

// Tracer casts rays into a scene. The scene must not be mutated while a
// Tracer is reading it.
type Tracer struct {
	Config Config

	// Stats, when set, is updated by every cast.
	Stats *Stats
}

// NewTracer creates a tracer with the given configuration.
func NewTracer(cfg Config) *Tracer {
	return &Tracer{Config: cfg}
}

// CastRay returns the color seen along dir from origin. depth is the
// recursion level of this ray; primary rays start at 0.
func (t *Tracer) CastRay(origin, dir math3d.Vec3, s *scene.Scene, depth int) math3d.Color {
	if t.Stats != nil {
		t.Stats.ray(depth)
	}

	if depth > t.Config.MaxDepth || dir.IsZero() {
		return t.sky(dir)
	}

	hit, ok := nearest(origin, dir, s)
	if !ok {
		return t.sky(dir)
	}

	m := hit.Material
	var diffuse, specular math3d.Color
	if l := s.Light; l != nil {
		toLight := l.Position.Sub(hit.Point)
		lightDir := toLight.Normalize()
		viewDir := origin.Sub(hit.Point).Normalize()

		intensity := l.Intensity * (1 - t.shadow(hit, lightDir, toLight.Len(), s))

		kd := math.Max(0, math.Min(1, hit.Normal.Dot(lightDir)))
		diffuse = l.Color.Scale(m.Albedo.Diffuse() * kd * intensity)

		mirror := Reflect(lightDir.Negate(), hit.Normal).Normalize()
		ks := math.Pow(math.Max(0, viewDir.Dot(mirror)), m.Shininess)
		specular = l.Color.Scale(m.Albedo.Specular() * ks * intensity)
	}

	var reflected math3d.Color
	reflectivity := m.Albedo.Reflectivity() * t.Config.ReflectionScale
	if reflectivity > 0 {
		rdir := Reflect(dir, hit.Normal).Normalize()
		reflected = t.CastRay(offsetOrigin(hit, rdir, t.Config.Bias), rdir, s, depth+1)
	}

	var refracted math3d.Color
	transparency := m.Albedo.Transparency() * t.Config.TransmissionScale
	if transparency > 0 {
		tdir := Refract(dir, hit.Normal, m.RefractiveIndex).Normalize()
		refracted = t.CastRay(offsetOrigin(hit, tdir, t.Config.Bias), tdir, s, depth+1)
	}

	surface := t.Config.pattern(m.Name)(SphericalUV(hit.Normal), m)

	return surface.Add(diffuse).Add(specular).Scale(1 - reflectivity - transparency).
		Add(reflected.Scale(reflectivity)).
		Add(refracted.Scale(transparency)).
		Add(math3d.White().Scale(s.Ambient))
}

func (t *Tracer) sky(dir math3d.Vec3) math3d.Color {
	if t.Stats != nil {
		t.Stats.SkyHits++
	}
	return t.Config.Sky(dir)
}

// nearest returns the closest hit. On equal distances the earlier primitive
// wins.
func nearest(origin, dir math3d.Vec3, s *scene.Scene) (scene.Intersection, bool) {
	best := scene.NoHit()
	for _, p := range s.Primitives {
		if i := p.Intersect(origin, dir); i.Hit && i.Distance < best.Distance {
			best = i
		}
	}
	return best, best.Hit
}

// shadow returns how strongly the light is blocked at hit, in [0, 1]. The
// first occluder in primitive order decides; nearer occluders cast darker
// shadows.
func (t *Tracer) shadow(hit scene.Intersection, lightDir math3d.Vec3, lightDist float64, s *scene.Scene) float64 {
	if t.Stats != nil {
		t.Stats.ShadowRays++
	}
	if lightDist <= 0 {
		return 0
	}

	origin := offsetOrigin(hit, lightDir, t.Config.Bias)
	for _, p := range s.Primitives {
		if i := p.Intersect(origin, lightDir); i.Hit && i.Distance < lightDist {
			ratio := i.Distance / lightDist
			return 1 - math.Min(1, ratio*ratio)
		}
	}
	return 0
}
