package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/sunray/pkg/math3d"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// unitCubeDoc returns a document with one mesh whose positions span [-1, 1].
func unitCubeDoc(nodes ...*gltf.Node) *gltf.Document {
	return &gltf.Document{
		Accessors: []*gltf.Accessor{{
			Type: gltf.AccessorVec3,
			Min:  []float64{-1, -1, -1},
			Max:  []float64{1, 1, 1},
		}},
		Meshes: []*gltf.Mesh{{
			Name: "cube",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Material:   intPtr(0),
			}},
		}},
		Materials: []*gltf.Material{{
			Name: "glass",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0.5, 0, 0.25},
				MetallicFactor:  floatPtr(0.3),
				RoughnessFactor: floatPtr(0.5),
			},
			Extras: map[string]any{"ior": 1.5},
		}},
		Nodes: nodes,
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if loader.SpherePrefix != "sphere" {
		t.Errorf("SpherePrefix = %q, want %q", loader.SpherePrefix, "sphere")
	}
	if loader.FaceNormals {
		t.Error("FaceNormals should default to false")
	}
}

func TestGLTFBuildBox(t *testing.T) {
	doc := unitCubeDoc(&gltf.Node{
		Name:        "crate",
		Mesh:        intPtr(0),
		Translation: [3]float64{0, 2, 0},
		Scale:       [3]float64{2, 1, 1},
	})

	loader := NewGLTFLoader()
	loader.FaceNormals = true
	s, err := loader.Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}

	box, ok := s.Primitives[0].(*Box)
	if !ok {
		t.Fatalf("primitive is %T, want *Box", s.Primitives[0])
	}
	if !vecNear(box.Min, math3d.V3(-2, 1, -1), 1e-9) || !vecNear(box.Max, math3d.V3(2, 3, 1), 1e-9) {
		t.Errorf("bounds = %v..%v, want (-2,1,-1)..(2,3,1)", box.Min, box.Max)
	}
	if !box.FaceNormals {
		t.Error("FaceNormals option not applied")
	}

	m := box.Material
	if m.Name != "glass" {
		t.Errorf("material name = %q, want glass", m.Name)
	}
	if m.Color != math3d.RGB(255, 127.5, 0) {
		t.Errorf("color = %v", m.Color)
	}
	if math.Abs(m.Albedo.Transparency()-0.75) > tolerance {
		t.Errorf("transparency = %v, want 0.75", m.Albedo.Transparency())
	}
	if math.Abs(m.Albedo.Reflectivity()-0.3) > tolerance {
		t.Errorf("reflectivity = %v, want 0.3", m.Albedo.Reflectivity())
	}
	if math.Abs(m.Albedo.Specular()-0.5) > tolerance {
		t.Errorf("specular = %v, want 0.5", m.Albedo.Specular())
	}
	if m.RefractiveIndex != 1.5 {
		t.Errorf("ior = %v, want 1.5", m.RefractiveIndex)
	}
}

func TestGLTFBuildSphereAndHierarchy(t *testing.T) {
	doc := unitCubeDoc(
		&gltf.Node{Name: "root", Translation: [3]float64{5, 0, 0}, Children: []int{1}},
		&gltf.Node{Name: "Sphere.001", Mesh: intPtr(0), Scale: [3]float64{0.5, 0.5, 0.5}},
	)

	s, err := NewGLTFLoader().Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}

	sp, ok := s.Primitives[0].(*Sphere)
	if !ok {
		t.Fatalf("primitive is %T, want *Sphere", s.Primitives[0])
	}
	if !vecNear(sp.Center, math3d.V3(5, 0, 0), 1e-9) {
		t.Errorf("center = %v, want (5,0,0)", sp.Center)
	}
	if math.Abs(sp.Radius-0.5) > 1e-9 {
		t.Errorf("radius = %v, want 0.5", sp.Radius)
	}
}

func TestGLTFBuildNoGeometry(t *testing.T) {
	doc := unitCubeDoc(&gltf.Node{Name: "empty"})
	_, err := NewGLTFLoader().Build(doc)
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}

func TestGLTFBuildMissingMaterial(t *testing.T) {
	doc := unitCubeDoc(&gltf.Node{Name: "plain", Mesh: intPtr(0)})
	doc.Materials = nil

	s, err := NewGLTFLoader().Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m := s.Primitives[0].(*Box).Material
	if m.RefractiveIndex != 1 || m.Albedo.Reflectivity() != 0 {
		t.Errorf("default material = %+v", m)
	}
}
