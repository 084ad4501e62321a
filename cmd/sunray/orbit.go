package main

import "github.com/charmbracelet/harmonica"

// OrbitAxis tracks the angular velocity of one orbit axis. Velocity decays
// toward zero through a critically damped spring.
type OrbitAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewOrbitAxis creates an axis whose spring is tuned for the given frame rate.
func NewOrbitAxis(fps int) OrbitAxis {
	return OrbitAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step returns the angle to rotate by this frame and decays the velocity.
func (a *OrbitAxis) Step() float64 {
	delta := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return delta
}

// OrbitState holds the yaw and pitch axes of the camera orbit.
type OrbitState struct {
	Yaw, Pitch OrbitAxis
	fps        int
}

// NewOrbitState creates a resting orbit.
func NewOrbitState(fps int) *OrbitState {
	return &OrbitState{
		Yaw:   NewOrbitAxis(fps),
		Pitch: NewOrbitAxis(fps),
		fps:   fps,
	}
}

// Step advances both axes by one frame and returns the yaw and pitch deltas.
func (o *OrbitState) Step() (yaw, pitch float64) {
	return o.Yaw.Step(), o.Pitch.Step()
}

// ApplyImpulse adds angular velocity.
func (o *OrbitState) ApplyImpulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
}

// Reset stops all motion.
func (o *OrbitState) Reset() {
	o.Yaw = NewOrbitAxis(o.fps)
	o.Pitch = NewOrbitAxis(o.fps)
}
