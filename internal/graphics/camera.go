package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles a target point. It satisfies the culler's Camera
// contract: a world position plus a combined projection*view matrix.
type OrbitCamera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // radians around +Y
	Pitch    float32 // radians above the horizon

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

// NewOrbitCamera creates a camera orbiting the given target.
func NewOrbitCamera(target mgl32.Vec3, distance float32, width, height int) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Distance:    distance,
		Yaw:         math.Pi / 4,
		Pitch:       math.Pi / 6,
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
	}
}

// Position returns the camera's world position.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	return c.Target.Add(mgl32.Vec3{
		c.Distance * cp * float32(math.Cos(float64(c.Yaw))),
		c.Distance * float32(math.Sin(float64(c.Pitch))),
		c.Distance * cp * float32(math.Sin(float64(c.Yaw))),
	})
}

// ViewMatrix returns the look-at view matrix.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ViewProjection returns projection*view for frustum extraction.
func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Orbit rotates the camera around the target, clamping pitch short of the
// poles.
func (c *OrbitCamera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	limit := float32(math.Pi/2 - 0.05)
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

// Zoom moves the camera toward or away from the target.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < 2 {
		c.Distance = 2
	}
	if c.Distance > 800 {
		c.Distance = 800
	}
}

// SetViewport updates the aspect ratio after a window resize.
func (c *OrbitCamera) SetViewport(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}
