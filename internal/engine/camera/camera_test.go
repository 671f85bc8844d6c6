package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestNewLooksDownNegativeZ(t *testing.T) {
	c := New()
	if !vecNear(c.Front, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Front = %v, want (0, 0, -1)", c.Front)
	}
	if !vecNear(c.Right, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Right = %v, want (1, 0, 0)", c.Right)
	}
	if c.Zoom != DefaultZoom {
		t.Errorf("Zoom = %v, want %v", c.Zoom, DefaultZoom)
	}
}

func TestProcessKeyboard(t *testing.T) {
	tests := []struct {
		dir  Direction
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -2.5}},
		{Backward, mgl32.Vec3{0, 0, 2.5}},
		{Left, mgl32.Vec3{-2.5, 0, 0}},
		{Right, mgl32.Vec3{2.5, 0, 0}},
		{Up, mgl32.Vec3{0, 2.5, 0}},
		{Down, mgl32.Vec3{0, -2.5, 0}},
	}

	for _, tt := range tests {
		c := New()
		c.ProcessKeyboard(tt.dir, 1.0)
		if !vecNear(c.Position, tt.want) {
			t.Errorf("direction %d: Position = %v, want %v", tt.dir, c.Position, tt.want)
		}
	}
}

func TestProcessKeyboardScalesWithFrameTime(t *testing.T) {
	a := New()
	a.ProcessKeyboard(Forward, 0.5)

	b := New()
	b.ProcessKeyboard(Forward, 0.25)
	b.ProcessKeyboard(Forward, 0.25)

	if !vecNear(a.Position, b.Position) {
		t.Errorf("one 0.5s step %v != two 0.25s steps %v", a.Position, b.Position)
	}
}

func TestPitchIsClamped(t *testing.T) {
	c := New()
	c.ProcessMouseMovement(0, 10000)
	if c.Pitch != MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, MaxPitch)
	}
	c.ProcessMouseMovement(0, -20000)
	if c.Pitch != -MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, -MaxPitch)
	}
}

func TestMouseMovementTurnsRight(t *testing.T) {
	c := New()
	// 900 px * 0.1 sensitivity = 90 degrees of yaw.
	c.ProcessMouseMovement(900, 0)
	if !vecNear(c.Front, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Front = %v, want (1, 0, 0)", c.Front)
	}
}

func TestZoomIsClamped(t *testing.T) {
	c := New()
	c.ProcessMouseScroll(1000)
	if c.Zoom != MinZoom {
		t.Errorf("Zoom = %v, want %v", c.Zoom, MinZoom)
	}
	c.ProcessMouseScroll(-1000)
	if c.Zoom != MaxZoom {
		t.Errorf("Zoom = %v, want %v", c.Zoom, MaxZoom)
	}

	c.Zoom = 50
	c.ProcessMouseScroll(2)
	if c.Zoom != 48 {
		t.Errorf("Zoom = %v, want 48", c.Zoom)
	}
}

func TestSetPoseDerivesAngles(t *testing.T) {
	c := New()
	c.SetPose(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -4}, mgl32.Vec3{0, 1, 0}, 80)

	if c.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position = %v", c.Position)
	}
	if c.Zoom != 80 {
		t.Errorf("Zoom = %v, want 80", c.Zoom)
	}
	if !vecNear(c.Front, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Front should be normalized, got %v", c.Front)
	}
	if d := c.Yaw - DefaultYaw; d > eps || d < -eps {
		t.Errorf("Yaw = %v, want %v", c.Yaw, DefaultYaw)
	}

	// A zero pointer delta must not change where the camera looks.
	before := c.Front
	c.ProcessMouseMovement(0, 0)
	if !vecNear(c.Front, before) {
		t.Errorf("Front moved from %v to %v on zero delta", before, c.Front)
	}
}

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	c := New()
	c.SetPose(mgl32.Vec3{0, 2, 12}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, 50)

	eye := c.ViewMatrix().Mul4x1(c.Position.Vec4(1)).Vec3()
	if !vecNear(eye, mgl32.Vec3{}) {
		t.Errorf("eye in view space = %v, want origin", eye)
	}
}
