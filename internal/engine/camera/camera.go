// Package camera provides the free-look camera used to inspect the scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Default tuning values.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0

	MaxPitch = 89.0
	MinZoom  = 1.0
	MaxZoom  = 120.0
)

// Camera is a yaw/pitch free-look camera. Zoom is the vertical field of
// view in degrees.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3

	// Euler angles in degrees
	Yaw   float32
	Pitch float32

	Zoom float32

	MovementSpeed    float32
	MouseSensitivity float32
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	c := &Camera{
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		Zoom:             DefaultZoom,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the look-at matrix for the current pose.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// SetPose places the camera. Yaw and pitch are re-derived from front so the
// next pointer delta continues from this orientation instead of snapping
// back to the previous angles.
func (c *Camera) SetPose(position, front, up mgl32.Vec3, zoom float32) {
	c.Position = position
	c.Front = front.Normalize()
	c.WorldUp = up
	c.Up = up
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Zoom = zoom

	c.Pitch = mgl32.RadToDeg(math32.Asin(mgl32.Clamp(c.Front.Y(), -1, 1)))
	c.Yaw = mgl32.RadToDeg(math32.Atan2(c.Front.Z(), c.Front.X()))
}

// ProcessKeyboard moves the camera. dt is the frame time in seconds, which
// keeps the speed independent of frame rate.
func (c *Camera) ProcessKeyboard(dir Direction, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.Up.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.Up.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by a pointer delta in pixels.
// Positive yOffset looks up. Pitch is clamped to avoid flipping over the pole.
func (c *Camera) ProcessMouseMovement(xOffset, yOffset float32) {
	c.Yaw += xOffset * c.MouseSensitivity
	c.Pitch += yOffset * c.MouseSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *Camera) ProcessMouseScroll(yOffset float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-yOffset, MinZoom, MaxZoom)
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
