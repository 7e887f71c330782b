// Package camera provides the orbit camera used to inspect models.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/explode-viewer/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	FOV float32 // Vertical field of view, degrees

	home orbit
}

// orbit is the pose restored by Reset.
type orbit struct {
	center      math.Vec3
	distance    float32
	pitch, yaw  float32
	minDistance float32
	maxDistance float32
}

// NewOrbitCamera creates an orbit camera looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		Distance:        5,
		Pitch:           0.45,
		Yaw:             0.6,
		MinDistance:     0.1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             45,
	}
	c.saveHome()
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp, sp := gomath.Cos(float64(c.Pitch)), gomath.Sin(float64(c.Pitch))
	cy, sy := gomath.Cos(float64(c.Yaw)), gomath.Sin(float64(c.Yaw))

	return c.Center.Add(math.Vec3{
		X: c.Distance * float32(cp*sy),
		Y: c.Distance * float32(sp),
		Z: c.Distance * float32(cp*cy),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	eye := c.Position()
	return mgl32.LookAtV(
		mgl32.Vec3(eye.Array()),
		mgl32.Vec3(c.Center.Array()),
		mgl32.Vec3{0, 1, 0},
	)
}

// ProjectionMatrix returns a perspective projection for the given aspect
// ratio. Clip planes follow the orbit distance so small and large models
// both keep depth precision.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	near := c.Distance * 0.01
	far := c.Distance * 100
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, near, far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds frames the box min..max and makes that framing the pose
// restored by Reset.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	radius := max.Distance(min) / 2
	if radius < 1e-3 {
		radius = 1
	}
	// Distance at which a sphere of this radius fills the vertical FOV.
	half := float64(mgl32.DegToRad(c.FOV)) / 2
	c.Distance = radius / float32(gomath.Sin(half)) * 1.1

	c.MinDistance = radius * 0.05
	c.MaxDistance = c.Distance * 20
	c.Pitch = 0.45
	c.Yaw = 0.6
	c.saveHome()
}

// Reset restores the pose of the last FitToBounds.
func (c *OrbitCamera) Reset() {
	c.Center = c.home.center
	c.Distance = c.home.distance
	c.Pitch = c.home.pitch
	c.Yaw = c.home.yaw
	c.MinDistance = c.home.minDistance
	c.MaxDistance = c.home.maxDistance
}

func (c *OrbitCamera) saveHome() {
	c.home = orbit{
		center:      c.Center,
		distance:    c.Distance,
		pitch:       c.Pitch,
		yaw:         c.Yaw,
		minDistance: c.MinDistance,
		maxDistance: c.MaxDistance,
	}
}
