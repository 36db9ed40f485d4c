package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// Camera is a perspective camera orbiting its target about the Y axis.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Fov    float64 // vertical, degrees
	Yaw    float64 // orbit angle about the target, radians
}

// DefaultCamera matches the holodeck's establishing shot.
func DefaultCamera() Camera {
	return Camera{
		Eye: mgl64.Vec3{0, 4, 15},
		Fov: 40,
	}
}

// Position returns the eye after applying the orbit.
func (c Camera) Position() mgl64.Vec3 {
	offset := c.Eye.Sub(c.Target)
	return c.Target.Add(mgl64.Rotate3DY(c.Yaw).Mul3x1(offset))
}

// Matrix returns the combined projection and view for a w×h canvas.
func (c Camera) Matrix(w, h int) mgl64.Mat4 {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / (cellAspect * float64(h))
	}
	proj := mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, 0.1, 250)
	view := mgl64.LookAtV(c.Position(), c.Target, mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// project maps a world point to a cell. ok is false for points behind the
// camera, beyond the far plane or off the canvas.
func project(m mgl64.Mat4, p mgl64.Vec3, w, h int) (x, y int, z float64, ok bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, 0, false
	}
	x = int(math.Round((ndc.X() + 1) / 2 * float64(w-1)))
	y = int(math.Round((1 - ndc.Y()) / 2 * float64(h-1)))
	return x, y, ndc.Z(), x >= 0 && y >= 0 && x < w && y < h
}
