package scene

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/sunray/pkg/math3d"
)

// ErrNoGeometry is returned when a glTF document contains no mesh node with
// usable bounds.
var ErrNoGeometry = errors.New("no geometry in document")

// GLTFLoader builds a Scene from a glTF document. Every node that references
// a mesh becomes one primitive fitted to the mesh's world-space bounds.
type GLTFLoader struct {
	// Options
	SpherePrefix string  // Node or mesh names with this prefix become spheres
	FaceNormals  bool    // Exact face normals for generated boxes
	Ambient      float64 // Ambient level of the resulting scene
	Light        Light   // Initial light; glTF light extensions are ignored
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		SpherePrefix: "sphere",
		Ambient:      0.1,
		Light:        Light{Position: math3d.V3(1, -1, 5), Color: math3d.White(), Intensity: 1},
	}
}

// LoadGLTF loads a .gltf or .glb file with default options.
func LoadGLTF(path string) (*Scene, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens a glTF or GLB file and builds a Scene from it.
func (l *GLTFLoader) Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	s, err := l.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("build scene from %s: %w", path, err)
	}
	return s, nil
}

// Build converts an already decoded document.
func (l *GLTFLoader) Build(doc *gltf.Document) (*Scene, error) {
	light := l.Light
	s := New(&light, l.Ambient)

	for _, idx := range rootNodes(doc) {
		if err := l.processNode(doc, idx, math3d.Identity(), s, 0); err != nil {
			return nil, err
		}
	}

	if s.Len() == 0 {
		return nil, ErrNoGeometry
	}
	return s, nil
}

// maxNodeDepth guards against cyclic node hierarchies in malformed files.
const maxNodeDepth = 64

// processNode walks a node and its children, accumulating transforms.
func (l *GLTFLoader) processNode(doc *gltf.Document, idx int, parent math3d.Mat4, s *Scene, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d: hierarchy deeper than %d", idx, maxNodeDepth)
	}
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node %d: index out of range", idx)
	}

	node := doc.Nodes[idx]
	world := parent.Mul(localMatrix(node))

	if node.Mesh != nil {
		p, err := l.processMesh(doc, node, world)
		if err != nil {
			return fmt.Errorf("process node %q: %w", node.Name, err)
		}
		if p != nil {
			s.Add(p)
		}
	}

	for _, child := range node.Children {
		if err := l.processNode(doc, child, world, s, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// processMesh fits a primitive to the transformed bounds of a mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, node *gltf.Node, world math3d.Mat4) (Primitive, error) {
	if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d: index out of range", *node.Mesh)
	}
	m := doc.Meshes[*node.Mesh]

	var (
		lo, hi   math3d.Vec3
		found    bool
		material *int
	)
	for _, prim := range m.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		pmin, pmax, err := accessorBounds(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		for _, corner := range corners(pmin, pmax) {
			p := world.MulVec3(corner)
			if !found {
				lo, hi, found = p, p, true
				continue
			}
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
		if material == nil {
			material = prim.Material
		}
	}
	if !found {
		return nil, nil
	}

	mat := l.material(doc, material)
	if l.isSphere(node.Name) || l.isSphere(m.Name) {
		center := lo.Add(hi).Scale(0.5)
		half := hi.Sub(lo).Scale(0.5)
		radius := math.Max(half.X, math.Max(half.Y, half.Z))
		return NewSphere(center, radius, mat), nil
	}

	box := NewBox(lo, hi, mat)
	box.FaceNormals = l.FaceNormals
	return box, nil
}

func (l *GLTFLoader) isSphere(name string) bool {
	return l.SpherePrefix != "" && strings.HasPrefix(strings.ToLower(name), strings.ToLower(l.SpherePrefix))
}

// material maps a glTF PBR material onto the Phong albedo model. Factors
// that are absent keep the defaults below rather than glTF's own defaults,
// which would make every surface a perfect mirror.
func (l *GLTFLoader) material(doc *gltf.Document, idx *int) Material {
	m := NewMaterial("default", math3d.RGB(200, 200, 200), 10, Albedo{0.6, 0.3, 0, 0}, 1)
	if idx == nil || *idx < 0 || *idx >= len(doc.Materials) {
		return m
	}

	gm := doc.Materials[*idx]
	if gm.Name != "" {
		m.Name = gm.Name
	}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			m.Color = math3d.RGB(f[0]*255, f[1]*255, f[2]*255)
			m.Albedo[AlbedoTransmit] = clamp01(1 - f[3])
		}
		if r := pbr.RoughnessFactor; r != nil {
			smooth := clamp01(1 - *r)
			m.Albedo[AlbedoSpecular] = smooth
			m.Shininess = math.Max(1, smooth*128)
		}
		if mt := pbr.MetallicFactor; mt != nil {
			m.Albedo[AlbedoReflect] = clamp01(*mt)
		}
	}

	if ior, ok := extrasFloat(gm.Extras, "ior"); ok && ior > 0 {
		m.RefractiveIndex = ior
	}
	return m
}

// rootNodes returns the nodes of the default scene, or every node that is
// not a child of another when the document has no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		si := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			si = *doc.Scene
		}
		return doc.Scenes[si].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// localMatrix returns the node's matrix, or T*R*S when no matrix is set.
func localMatrix(n *gltf.Node) math3d.Mat4 {
	if n.Matrix != [16]float64{} && math3d.Mat4(n.Matrix) != math3d.Identity() {
		return math3d.Mat4(n.Matrix)
	}

	t := math3d.Translate(math3d.V3(n.Translation[0], n.Translation[1], n.Translation[2]))

	r := math3d.Identity()
	if q := n.Rotation; q != [4]float64{} {
		r = math3d.FromQuat(q[0], q[1], q[2], q[3])
	}

	sc := math3d.V3(1, 1, 1)
	if n.Scale != [3]float64{} {
		sc = math3d.V3(n.Scale[0], n.Scale[1], n.Scale[2])
	}

	return t.Mul(r).Mul(math3d.Scale(sc))
}

// accessorBounds reads the min/max that glTF requires on POSITION accessors.
func accessorBounds(doc *gltf.Document, accessorIdx int) (math3d.Vec3, math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return math3d.Vec3{}, math3d.Vec3{}, fmt.Errorf("accessor %d: index out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return math3d.Vec3{}, math3d.Vec3{}, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if len(accessor.Min) < 3 || len(accessor.Max) < 3 {
		return math3d.Vec3{}, math3d.Vec3{}, fmt.Errorf("accessor %d has no bounds", accessorIdx)
	}

	lo := math3d.V3(accessor.Min[0], accessor.Min[1], accessor.Min[2])
	hi := math3d.V3(accessor.Max[0], accessor.Max[1], accessor.Max[2])
	return lo, hi, nil
}

func corners(lo, hi math3d.Vec3) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		math3d.V3(lo.X, lo.Y, lo.Z),
		math3d.V3(hi.X, lo.Y, lo.Z),
		math3d.V3(lo.X, hi.Y, lo.Z),
		math3d.V3(hi.X, hi.Y, lo.Z),
		math3d.V3(lo.X, lo.Y, hi.Z),
		math3d.V3(hi.X, lo.Y, hi.Z),
		math3d.V3(lo.X, hi.Y, hi.Z),
		math3d.V3(hi.X, hi.Y, hi.Z),
	}
}

func extrasFloat(extras any, key string) (float64, bool) {
	m, ok := extras.(map[string]any)
	if !ok {
		return 0, false
	}
	v, ok := m[key].(float64)
	return v, ok
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
