// Package camera provides the orbit camera used to inspect voxel meshes.
package camera

import (
	gomath "math"

	"github.com/Faultbox/voxeltex/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera scaled for unit voxels.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        8,
		RotationX:       0.5,
		MinDistance:     2,
		MaxDistance:     256,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// HandleDrag updates rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance from a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on the box and backs off far enough to
// see all of it.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)
	c.Distance = clamp(hi.Sub(lo).Length()*1.5, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.5
	c.RotationY = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
