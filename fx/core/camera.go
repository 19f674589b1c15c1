package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is what the simulation step reads from the active viewpoint.
type Camera interface {
	GetViewMatrix() mgl32.Mat4
	GetProjectionMatrix() mgl32.Mat4
}

// CameraState is a Y-up yaw/pitch camera with a perspective projection.
type CameraState struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position: mgl32.Vec3{0, 2, 10},
		FovY:     mgl32.DegToRad(60),
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      1000,
	}
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	// Yaw 0 looks down -Z.
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		float32(-math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
	}
}

func (c *CameraState) GetRight() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		0,
		float32(math.Sin(float64(c.Yaw))),
	}
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	target := eye.Add(c.GetForward())
	return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
}

func (c *CameraState) GetProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// SetViewport updates the aspect ratio from a framebuffer size.
func (c *CameraState) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// LookAt points the camera at target by recomputing yaw and pitch.
func (c *CameraState) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() < 1e-6 {
		return
	}
	d = d.Normalize()
	c.Pitch = float32(math.Asin(float64(d.Y())))
	c.Yaw = float32(math.Atan2(float64(d.X()), float64(-d.Z())))
}

// FixedCamera returns fixed matrices; handy for tools and tests.
type FixedCamera struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

func (c FixedCamera) GetViewMatrix() mgl32.Mat4       { return c.View }
func (c FixedCamera) GetProjectionMatrix() mgl32.Mat4 { return c.Projection }
