package scene

import (
	"testing"

	"github.com/taigrr/sunray/pkg/math3d"
)

func TestDefaultScene(t *testing.T) {
	s := Default()
	if s.Len() != 8 {
		t.Fatalf("Len = %d, want 8", s.Len())
	}
	if s.Light == nil {
		t.Fatal("default scene has no light")
	}
	if s.Ambient != 0.1 {
		t.Errorf("Ambient = %v, want 0.1", s.Ambient)
	}

	tags := map[string]int{}
	for _, p := range s.Primitives {
		switch v := p.(type) {
		case *Sphere:
			tags[v.Material.Name]++
		case *Box:
			tags[v.Material.Name]++
		}
	}
	if tags[TagGround] != 1 || tags[TagSun] != 1 {
		t.Errorf("tags = %v, want one ground and one sun", tags)
	}
}

func TestSceneAdd(t *testing.T) {
	s := New(NewLight(math3d.V3(0, 5, 0), math3d.White(), 1), 0)
	s.Add(NewSphere(math3d.V3(0, 0, 0), 1, testMaterial("a")))
	s.Add(NewSphere(math3d.V3(0, 0, 2), 1, testMaterial("b")), NewSphere(math3d.V3(0, 0, 4), 1, testMaterial("c")))
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func BenchmarkSphereIntersect(b *testing.B) {
	s := NewSphere(math3d.V3(0, 0, 0), 1, testMaterial("s"))
	o, d := math3d.V3(0, 0, 5), math3d.V3(0.1, 0, -1).Normalize()
	for b.Loop() {
		s.Intersect(o, d)
	}
}

func BenchmarkBoxIntersect(b *testing.B) {
	box := NewBox(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1), testMaterial("b"))
	o, d := math3d.V3(0, 0, 5), math3d.V3(0.1, 0, -1).Normalize()
	for b.Loop() {
		box.Intersect(o, d)
	}
}
