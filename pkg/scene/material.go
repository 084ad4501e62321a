// Package scene holds the primitives, materials and light that make up a
// renderable scene, plus the drivers that build and animate one.
package scene

import "github.com/taigrr/sunray/pkg/math3d"

// Albedo weights the contributions of a surface:
// diffuse, specular, reflective and transmissive, in that order.
// The weights need not sum to 1.
type Albedo [4]float64

// Albedo component indices.
const (
	AlbedoDiffuse = iota
	AlbedoSpecular
	AlbedoReflect
	AlbedoTransmit
)

// Diffuse returns the diffuse weight.
func (a Albedo) Diffuse() float64 { return a[AlbedoDiffuse] }

// Specular returns the specular weight.
func (a Albedo) Specular() float64 { return a[AlbedoSpecular] }

// Reflectivity returns the reflective weight.
func (a Albedo) Reflectivity() float64 { return a[AlbedoReflect] }

// Transparency returns the transmissive weight.
func (a Albedo) Transparency() float64 { return a[AlbedoTransmit] }

// Material describes how a surface is shaded. It is a value type: every
// primitive owns its own copy and intersections carry a copy as well.
type Material struct {
	Name            string       // Texture tag
	Color           math3d.Color // Base color
	Shininess       float64      // Specular exponent (>= 0)
	Albedo          Albedo
	RefractiveIndex float64 // Index of refraction (> 0)
}

// NewMaterial creates a material.
func NewMaterial(name string, color math3d.Color, shininess float64, albedo Albedo, ior float64) Material {
	return Material{
		Name:            name,
		Color:           color,
		Shininess:       shininess,
		Albedo:          albedo,
		RefractiveIndex: ior,
	}
}

// Black returns the zero-contribution material reported when nothing is hit.
func Black() Material {
	return Material{Name: "black"}
}
