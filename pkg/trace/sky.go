package trace

import "github.com/taigrr/sunray/pkg/math3d"

// Sky returns the background color for a ray that escapes the scene: a
// vertical gradient from SkyBottom straight down to SkyTop straight up.
func (c Config) Sky(dir math3d.Vec3) math3d.Color {
	t := 0.5 * (dir.Y + 1)
	return c.SkyBottom.Lerp(c.SkyTop, t)
}
