package main

import (
	"path/filepath"
	"testing"

	"github.com/taigrr/sunray/pkg/math3d"
	"github.com/taigrr/sunray/pkg/scene"
	"github.com/taigrr/sunray/pkg/trace"
)

func defaultGlobals() *globalOptions {
	return &globalOptions{skyTop: "#87cefa", skyBottom: "#191970"}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    math3d.Color
		wantErr bool
	}{
		{"#87cefa", math3d.RGB(135, 206, 250), false},
		{"#191970", math3d.RGB(25, 25, 112), false},
		{"#fff", math3d.RGB(255, 255, 255), false},
		{"#000000", math3d.RGB(0, 0, 0), false},
		{"87cefa", math3d.Color{}, true},
		{"#12345", math3d.Color{}, true},
		{"", math3d.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseHexColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseHexColor(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTracerConfigDefaults(t *testing.T) {
	cfg, err := defaultGlobals().tracerConfig()
	if err != nil {
		t.Fatal(err)
	}
	def := trace.DefaultConfig()
	if cfg.SkyTop != def.SkyTop || cfg.SkyBottom != def.SkyBottom {
		t.Errorf("sky = %v..%v, want %v..%v", cfg.SkyBottom, cfg.SkyTop, def.SkyBottom, def.SkyTop)
	}
	if cfg.MaxDepth != def.MaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, def.MaxDepth)
	}
}

func TestTracerConfigInvalidSky(t *testing.T) {
	g := defaultGlobals()
	g.skyBottom = "navy"
	if _, err := g.tracerConfig(); err == nil {
		t.Error("expected error for invalid --sky-bottom")
	}
}

func TestLoadSceneDefault(t *testing.T) {
	for _, faceNormals := range []bool{false, true} {
		s, name, err := loadScene(sceneOptions{faceNormals: faceNormals})
		if err != nil {
			t.Fatal(err)
		}
		if name != "robot" {
			t.Errorf("name = %q, want robot", name)
		}
		boxes := 0
		for _, p := range s.Primitives {
			if b, ok := p.(*scene.Box); ok {
				boxes++
				if b.FaceNormals != faceNormals {
					t.Errorf("box %s FaceNormals = %v, want %v", b.Material.Name, b.FaceNormals, faceNormals)
				}
			}
		}
		if boxes == 0 {
			t.Error("default scene has no boxes")
		}
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, _, err := loadScene(sceneOptions{path: filepath.Join(t.TempDir(), "missing.glb")})
	if err == nil {
		t.Error("expected error for missing scene file")
	}
}

func TestNewDefaultCamera(t *testing.T) {
	cam := newDefaultCamera()
	if d := cam.Distance(); d != 10 {
		t.Errorf("Distance() = %v, want 10", d)
	}
}
