package scene

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/sunray/pkg/math3d"
)

// Phase is one segment of the day. It applies while the day fraction is
// below Until.
type Phase struct {
	Name      string
	Until     float64
	Color     math3d.Color
	Intensity float64
}

// DayCycle moves the light around a circle in the XY plane and switches its
// color and intensity by time of day.
type DayCycle struct {
	Duration     time.Duration // Length of one full day
	Radius       float64       // Orbit radius of the light
	Phases       []Phase       // Ordered by Until, last one should end at 1
	AmbientDay   float64       // Ambient for the first half of the day
	AmbientNight float64       // Ambient for the second half

	// Blend is the fraction of a day over which a phase fades into the next.
	// Zero switches phases instantly.
	Blend float64
}

// DefaultDayCycle returns a ten second day with dawn, noon and dusk phases.
func DefaultDayCycle() DayCycle {
	return DayCycle{
		Duration: 10 * time.Second,
		Radius:   10,
		Phases: []Phase{
			{Name: "dawn", Until: 0.25, Color: math3d.RGB(255, 223, 186), Intensity: 1.2},
			{Name: "noon", Until: 0.75, Color: math3d.RGB(255, 255, 224), Intensity: 1.5},
			{Name: "dusk", Until: 1, Color: math3d.RGB(255, 140, 0), Intensity: 1.0},
		},
		AmbientDay:   0.1,
		AmbientNight: 0.05,
	}
}

// Factor returns the fraction of the current day that has elapsed, in [0, 1).
func (c DayCycle) Factor(elapsed time.Duration) float64 {
	if c.Duration <= 0 {
		return 0
	}
	f := math.Mod(elapsed.Seconds(), c.Duration.Seconds()) / c.Duration.Seconds()
	if f < 0 {
		f += 1
	}
	return f
}

// Apply updates the light for the given time since start and returns the
// ambient level to render with. The light keeps its Z coordinate.
func (c DayCycle) Apply(l *Light, elapsed time.Duration) float64 {
	f := c.Factor(elapsed)

	angle := f * 2 * math.Pi
	l.Position.X = math.Cos(angle) * c.Radius
	l.Position.Y = math.Sin(angle) * c.Radius

	if len(c.Phases) > 0 {
		l.Color, l.Intensity = c.phaseAt(f)
	}

	if f < 0.5 {
		return c.AmbientDay
	}
	return c.AmbientNight
}

// PhaseName returns the name of the phase active at the given time.
func (c DayCycle) PhaseName(elapsed time.Duration) string {
	if len(c.Phases) == 0 {
		return ""
	}
	return c.Phases[c.phaseIndex(c.Factor(elapsed))].Name
}

func (c DayCycle) phaseIndex(f float64) int {
	for i, p := range c.Phases {
		if f < p.Until {
			return i
		}
	}
	return len(c.Phases) - 1
}

func (c DayCycle) phaseAt(f float64) (math3d.Color, float64) {
	i := c.phaseIndex(f)
	cur := c.Phases[i]
	if c.Blend <= 0 {
		return cur.Color, cur.Intensity
	}

	start := cur.Until - c.Blend
	if f < start {
		return cur.Color, cur.Intensity
	}
	next := c.Phases[(i+1)%len(c.Phases)]
	t := (f - start) / c.Blend
	return blendLab(cur.Color, next.Color, t), cur.Intensity + (next.Intensity-cur.Intensity)*t
}

func blendLab(a, b math3d.Color, t float64) math3d.Color {
	ca := colorful.Color{R: a.R / 255, G: a.G / 255, B: a.B / 255}
	cb := colorful.Color{R: b.R / 255, G: b.G / 255, B: b.B / 255}
	m := ca.BlendLab(cb, t).Clamped()
	return math3d.RGB(m.R*255, m.G*255, m.B*255)
}
