package render

import (
	"math"

	"github.com/taigrr/sunray/pkg/math3d"
)

// MaxPitch keeps the orbit away from the poles, where the view direction
// would become parallel to Up.
const MaxPitch = math.Pi/2 - 0.1

// minZoomDistance is the closest the eye may get to the target.
const minZoomDistance = 0.1

// Camera is a look-at camera that orbits a target point.
type Camera struct {
	Eye    math3d.Vec3
	Target math3d.Vec3
	Up     math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height

	// Cached orthonormal basis (computed on demand)
	forward, right, up math3d.Vec3
	dirty              bool
}

// NewCamera creates a camera at eye looking at target.
func NewCamera(eye, target, up math3d.Vec3) *Camera {
	return &Camera{
		Eye:         eye,
		Target:      target,
		Up:          up,
		FOV:         math.Pi / 4, // 45 degrees
		AspectRatio: 1,
		dirty:       true,
	}
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect > 0 {
		c.AspectRatio = aspect
	}
}

// SetEye moves the camera without changing its target.
func (c *Camera) SetEye(eye math3d.Vec3) {
	c.Eye = eye
	c.dirty = true
}

// Basis returns the camera's forward, right and up unit vectors.
func (c *Camera) Basis() (forward, right, up math3d.Vec3) {
	if c.dirty {
		c.computeBasis()
		c.dirty = false
	}
	return c.forward, c.right, c.up
}

func (c *Camera) computeBasis() {
	c.forward = c.Target.Sub(c.Eye).Normalize()
	c.right = c.forward.Cross(c.Up).Normalize()
	c.up = c.right.Cross(c.forward)
}

// Distance returns the distance from the eye to the target.
func (c *Camera) Distance() float64 {
	return c.Eye.Distance(c.Target)
}

// RayForPixel turns normalized device coordinates (x right, y up, both in
// [-1, 1]) into a world-space unit ray direction.
func (c *Camera) RayForPixel(ndcX, ndcY float64) math3d.Vec3 {
	scale := math.Tan(c.FOV * 0.5)
	local := math3d.V3(ndcX*c.AspectRatio*scale, ndcY*scale, -1).Normalize()
	return c.baseChange(local)
}

// baseChange maps a camera-space vector, looking down -Z, into world space.
func (c *Camera) baseChange(v math3d.Vec3) math3d.Vec3 {
	forward, right, up := c.Basis()
	return right.Scale(v.X).Add(up.Scale(v.Y)).Sub(forward.Scale(v.Z)).Normalize()
}

// Orbit rotates the eye around the target at a fixed distance. Yaw turns
// around the vertical axis, pitch tilts toward the poles and is clamped to
// ±MaxPitch.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	rv := c.Eye.Sub(c.Target)
	radius := rv.Len()
	if radius == 0 {
		return
	}

	yaw := math.Atan2(rv.Z, rv.X)
	pitch := math.Atan2(rv.Y, math.Hypot(rv.X, rv.Z))

	yaw = math.Mod(yaw+deltaYaw, 2*math.Pi)
	pitch = math.Max(-MaxPitch, math.Min(MaxPitch, pitch+deltaPitch))

	c.SetEye(c.Target.Add(math3d.V3(
		radius*math.Cos(yaw)*math.Cos(pitch),
		radius*math.Sin(pitch),
		radius*math.Sin(yaw)*math.Cos(pitch),
	)))
}

// Zoom moves the eye toward the target by distance, or away when negative.
// The eye never passes the target.
func (c *Camera) Zoom(distance float64) {
	rv := c.Eye.Sub(c.Target)
	r := rv.Len()
	if r == 0 {
		return
	}
	next := math.Max(minZoomDistance, r-distance)
	c.SetEye(c.Target.Add(rv.Scale(next / r)))
}
