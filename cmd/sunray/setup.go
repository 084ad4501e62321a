package main

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/sunray/pkg/math3d"
	"github.com/taigrr/sunray/pkg/render"
	"github.com/taigrr/sunray/pkg/scene"
	"github.com/taigrr/sunray/pkg/trace"
)

// sceneOptions select and tweak the scene to render.
type sceneOptions struct {
	path        string
	faceNormals bool
}

// loadScene returns the built-in scene, or the glTF file at o.path.
func loadScene(o sceneOptions) (*scene.Scene, string, error) {
	if o.path == "" {
		s := scene.Default()
		if o.faceNormals {
			for _, p := range s.Primitives {
				if b, ok := p.(*scene.Box); ok {
					b.FaceNormals = true
				}
			}
		}
		return s, "robot", nil
	}

	loader := scene.NewGLTFLoader()
	loader.FaceNormals = o.faceNormals
	s, err := loader.Load(o.path)
	if err != nil {
		return nil, "", fmt.Errorf("load scene: %w", err)
	}
	return s, o.path, nil
}

// tracerConfig builds the tracer configuration from the global flags.
func (o *globalOptions) tracerConfig() (trace.Config, error) {
	cfg := trace.DefaultConfig()

	top, err := parseHexColor(o.skyTop)
	if err != nil {
		return cfg, fmt.Errorf("parse --sky-top: %w", err)
	}
	bottom, err := parseHexColor(o.skyBottom)
	if err != nil {
		return cfg, fmt.Errorf("parse --sky-bottom: %w", err)
	}
	cfg.SkyTop, cfg.SkyBottom = top, bottom
	return cfg, nil
}

// parseHexColor parses "#rrggbb" or "#rgb" into display units.
func parseHexColor(s string) (math3d.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return math3d.Color{}, err
	}
	return math3d.RGB(math.Round(c.R*255), math.Round(c.G*255), math.Round(c.B*255)), nil
}

// newDefaultCamera returns the starting view: ten units back along +Z,
// looking at the origin.
func newDefaultCamera() *render.Camera {
	return render.NewCamera(math3d.V3(0, 0, 10), math3d.Zero3(), math3d.Up())
}

const degToRad = math.Pi / 180
