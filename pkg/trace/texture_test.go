package trace

import (
	"math"
	"testing"

	"github.com/taigrr/sunray/pkg/math3d"
	"github.com/taigrr/sunray/pkg/scene"
)

func TestSphericalUV(t *testing.T) {
	tests := []struct {
		name   string
		normal math3d.Vec3
		want   math3d.Vec2
	}{
		{"front", math3d.V3(0, 0, 1), math3d.V2(0.5, 0.5)},
		{"top", math3d.V3(0, 1, 0), math3d.V2(0.5, 0)},
		{"bottom", math3d.V3(0, -1, 0), math3d.V2(0.5, 1)},
		{"right", math3d.V3(1, 0, 0), math3d.V2(0.75, 0.5)},
		{"past pole", math3d.V3(0, 1.0000001, 0), math3d.V2(0.5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SphericalUV(tc.normal)
			if math.Abs(got.X-tc.want.X) > tolerance || math.Abs(got.Y-tc.want.Y) > tolerance {
				t.Errorf("SphericalUV(%v) = %v, want %v", tc.normal, got, tc.want)
			}
		})
	}
}

func TestChecker(t *testing.T) {
	white, black := math3d.White(), math3d.Black()
	p := Checker(10, white, black)

	tests := []struct {
		uv   math3d.Vec2
		want math3d.Color
	}{
		{math3d.V2(0.05, 0.05), white},
		{math3d.V2(0.15, 0.05), black},
		{math3d.V2(0.05, 0.15), black},
		{math3d.V2(0.15, 0.15), white},
		{math3d.V2(0.95, 0.35), white},
		{math3d.V2(-0.15, 0.05), black},
	}

	for _, tc := range tests {
		if got := p(tc.uv, scene.Material{}); got != tc.want {
			t.Errorf("Checker(%v) = %v, want %v", tc.uv, got, tc.want)
		}
	}
}

func TestGradient(t *testing.T) {
	tests := []struct {
		uv   math3d.Vec2
		want math3d.Color
	}{
		{math3d.V2(0, 0), math3d.RGB(0, 0, 0)},
		{math3d.V2(1, 1), math3d.RGB(255, 255, 255)},
		{math3d.V2(0.5, 0.5), math3d.RGB(127, 127, 63)},
		{math3d.V2(0.2, 1), math3d.RGB(51, 255, 51)},
	}

	for _, tc := range tests {
		if got := Gradient(tc.uv, scene.Material{}); got != tc.want {
			t.Errorf("Gradient(%v) = %v, want %v", tc.uv, got, tc.want)
		}
	}
}

func TestEmissive(t *testing.T) {
	m := scene.NewMaterial(scene.TagSun, math3d.RGB(255, 223, 0), 1, scene.Albedo{}, 1)
	if got := Emissive(math3d.V2(0.3, 0.9), m); got != m.Color {
		t.Errorf("Emissive = %v, want %v", got, m.Color)
	}
}

func TestConfigPatternFallback(t *testing.T) {
	cfg := DefaultConfig()
	uv := math3d.V2(0.5, 0.5)
	m := scene.NewMaterial("unknown", math3d.RGB(1, 2, 3), 1, scene.Albedo{}, 1)

	if got, want := cfg.pattern("unknown")(uv, m), Gradient(uv, m); got != want {
		t.Errorf("unknown tag = %v, want gradient %v", got, want)
	}

	m.Name = scene.TagSun
	if got := cfg.pattern(scene.TagSun)(uv, m); got != m.Color {
		t.Errorf("sun tag = %v, want %v", got, m.Color)
	}

	cfg.Patterns["custom"] = func(math3d.Vec2, scene.Material) math3d.Color { return math3d.RGB(9, 9, 9) }
	if got := cfg.pattern("custom")(uv, m); got != math3d.RGB(9, 9, 9) {
		t.Errorf("custom tag = %v", got)
	}
}

func TestSky(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		dir  math3d.Vec3
		want math3d.Color
	}{
		{"straight up", math3d.V3(0, 1, 0), cfg.SkyTop},
		{"straight down", math3d.V3(0, -1, 0), cfg.SkyBottom},
		{"horizon", math3d.V3(0, 0, -1), math3d.RGB(80, 115.5, 181)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.Sky(tc.dir); !colorNear(got, tc.want, tolerance) {
				t.Errorf("Sky(%v) = %v, want %v", tc.dir, got, tc.want)
			}
		})
	}
}
