// Package camera provides the free-look editor camera.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pitch limits in degrees. Keeping pitch off the poles keeps the view
// matrix well defined.
const (
	MinPitch float32 = -89
	MaxPitch float32 = 89
)

// WorldUp is the fixed up axis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// FreeLook is a first-person camera driven by yaw and pitch in degrees.
// Yaw 0, pitch 0 looks down -Z.
type FreeLook struct {
	Position mgl32.Vec3

	// Movement speed in units per second and mouse sensitivity in degrees per pixel.
	Speed       float32
	Sensitivity float32
	// ZoomStep is the distance moved per scroll wheel notch.
	ZoomStep float32

	// Projection
	FOV  float32 // vertical, degrees
	Near float32
	Far  float32

	yaw, pitch float32
	forward    mgl32.Vec3
	dirty      bool
}

// NewFreeLook creates a camera at (0, 0, 10) looking at the origin.
func NewFreeLook() *FreeLook {
	c := &FreeLook{
		Position:    mgl32.Vec3{0, 0, 10},
		Speed:       5.0,
		Sensitivity: 0.1,
		ZoomStep:    0.5,
		FOV:         45.0,
		Near:        0.1,
		Far:         100.0,
	}
	c.Refresh()
	return c
}

// Yaw returns the yaw angle in degrees.
func (c *FreeLook) Yaw() float32 { return c.yaw }

// Pitch returns the pitch angle in degrees.
func (c *FreeLook) Pitch() float32 { return c.pitch }

// SetAngles sets yaw and pitch directly. Pitch is clamped.
func (c *FreeLook) SetAngles(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, MinPitch, MaxPitch)
	c.dirty = true
}

// Rotate applies a mouse delta in pixels. Moving the mouse up (negative dy)
// pitches the view up.
func (c *FreeLook) Rotate(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	c.SetAngles(c.yaw+dx*c.Sensitivity, c.pitch-dy*c.Sensitivity)
}

// Dirty reports whether the cached forward vector is stale.
func (c *FreeLook) Dirty() bool {
	return c.dirty
}

// Refresh recomputes the cached forward vector from yaw and pitch.
func (c *FreeLook) Refresh() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	c.forward = mgl32.Vec3{
		math32.Sin(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		-math32.Cos(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.dirty = false
}

// Forward returns the unit view direction.
func (c *FreeLook) Forward() mgl32.Vec3 {
	if c.dirty {
		c.Refresh()
	}
	return c.forward
}

// Right returns the unit strafe direction.
func (c *FreeLook) Right() mgl32.Vec3 {
	return c.Forward().Cross(WorldUp).Normalize()
}

// Move translates the camera. forward, right and up are axis inputs in
// [-1, 1]; up moves along the world up axis.
func (c *FreeLook) Move(forward, right, up, dt float32) {
	step := c.Speed * dt
	delta := c.Forward().Mul(forward * step).
		Add(c.Right().Mul(right * step)).
		Add(WorldUp.Mul(up * step))
	c.Position = c.Position.Add(delta)
}

// Zoom moves the camera along its view direction by wheel notches.
func (c *FreeLook) Zoom(notches float32) {
	c.Position = c.Position.Add(c.Forward().Mul(notches * c.ZoomStep))
}

// ViewMatrix returns the world-to-view transform.
func (c *FreeLook) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), WorldUp)
}

// ProjectionMatrix returns the perspective projection for an aspect ratio.
func (c *FreeLook) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 || math32.IsNaN(aspect) {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}
