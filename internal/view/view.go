// Package view owns the camera and projection the scene is seen through.
//
// The controller has two projection modes. Switching mode also moves the
// camera to a preset pose for that mode; the pairing lives in a transition
// table rather than in the input handling.
package view

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/camera"
)

// Clip planes shared by both projections.
const (
	Near = 0.1
	Far  = 100.0
)

// OrthoHalfExtent is the half size of the orthographic view volume along
// the longer window side.
const OrthoHalfExtent = 5.0

// Shader uniform names.
const (
	uniformView         = "view"
	uniformProjection   = "projection"
	uniformViewPosition = "viewPosition"
)

// Mode is the projection mode.
type Mode int

const (
	Perspective Mode = iota
	Orthographic
)

func (m Mode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Event is a discrete input that changes the projection mode.
type Event int

const (
	EventToggleOrthographic Event = iota
	EventTogglePerspective
)

// Pose is a camera placement applied on a mode switch.
type Pose struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Zoom     float32
}

// Camera presets.
var (
	InitialPose = Pose{
		Position: mgl32.Vec3{0, 2, 12},
		Front:    mgl32.Vec3{0, -0.15, -4},
		Up:       mgl32.Vec3{0, 1, 0},
		Zoom:     50,
	}
	OrthographicPose = Pose{
		Position: mgl32.Vec3{-2, 2, 10},
		Front:    mgl32.Vec3{0, 0, -2},
		Up:       mgl32.Vec3{0, 1, 0},
		Zoom:     100,
	}
	PerspectivePose = Pose{
		Position: mgl32.Vec3{-1.5, 3.5, 8},
		Front:    mgl32.Vec3{0, -0.5, -2},
		Up:       mgl32.Vec3{0, 1, 0},
		Zoom:     80,
	}
)

// Transition is the outcome of an event in a given mode.
type Transition struct {
	Mode Mode
	Pose Pose
}

type transitionKey struct {
	from  Mode
	event Event
}

// transitions maps (mode, event) to the next mode and the pose to apply.
// Repeating the current mode's event re-applies its preset.
var transitions = map[transitionKey]Transition{
	{Perspective, EventToggleOrthographic}:  {Orthographic, OrthographicPose},
	{Perspective, EventTogglePerspective}:   {Perspective, PerspectivePose},
	{Orthographic, EventToggleOrthographic}: {Orthographic, OrthographicPose},
	{Orthographic, EventTogglePerspective}:  {Perspective, PerspectivePose},
}

// Key is a key the controller polls.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyO
	KeyP
	KeyEscape
)

// KeyState reports which keys are held this frame.
type KeyState interface {
	Down(k Key) bool
}

// KeySet is a KeyState backed by a map.
type KeySet map[Key]bool

// Down implements KeyState.
func (s KeySet) Down(k Key) bool { return s[k] }

// Uniforms is the part of the shader sink the controller writes.
type Uniforms interface {
	SetMat4(name string, m mgl32.Mat4)
	SetVec3(name string, v mgl32.Vec3)
}

// Config holds controller tuning. Zero values use the camera defaults.
type Config struct {
	MovementSpeed    float32
	MouseSensitivity float32
	Logger           *zap.Logger
}

// Controller is the view controller. It is not safe for concurrent use;
// all calls come from the render loop.
type Controller struct {
	camera *camera.Camera
	mode   Mode
	log    *zap.Logger

	// Pointer tracking
	lastX, lastY float64
	firstMove    bool

	closeRequested bool
}

// New creates a controller in perspective mode at the initial pose.
func New(cfg Config) *Controller {
	cam := camera.New()
	if cfg.MovementSpeed > 0 {
		cam.MovementSpeed = cfg.MovementSpeed
	}
	if cfg.MouseSensitivity > 0 {
		cam.MouseSensitivity = cfg.MouseSensitivity
	}

	c := &Controller{
		camera:    cam,
		mode:      Perspective,
		log:       cfg.Logger,
		firstMove: true,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.applyPose(InitialPose)
	return c
}

// Mode returns the current projection mode.
func (c *Controller) Mode() Mode { return c.mode }

// Camera returns the controlled camera.
func (c *Controller) Camera() *camera.Camera { return c.camera }

// CloseRequested reports whether escape has been pressed.
func (c *Controller) CloseRequested() bool { return c.closeRequested }

func (c *Controller) applyPose(p Pose) {
	c.camera.SetPose(p.Position, p.Front, p.Up, p.Zoom)
}

// Fire applies the transition for event and returns it.
func (c *Controller) Fire(event Event) Transition {
	t, ok := transitions[transitionKey{c.mode, event}]
	if !ok {
		c.log.Warn("no transition", zap.Stringer("mode", c.mode), zap.Int("event", int(event)))
		return Transition{Mode: c.mode}
	}
	if t.Mode != c.mode {
		c.log.Debug("projection changed", zap.Stringer("from", c.mode), zap.Stringer("to", t.Mode))
	}
	c.mode = t.Mode
	c.applyPose(t.Pose)
	// Motion made before the preset, including any accumulated while
	// orthographic, must not reach the new pose.
	c.ResetPointer()
	return t
}

// OnPointerMove turns the camera by the pointer delta since the last call.
// It is ignored in orthographic mode. The first call after creation, a
// transition or ResetPointer only records the position.
func (c *Controller) OnPointerMove(x, y float64) {
	if c.mode == Orthographic {
		return
	}
	if c.firstMove {
		c.lastX, c.lastY = x, y
		c.firstMove = false
	}

	dx := x - c.lastX
	dy := c.lastY - y // screen y grows downward
	c.lastX, c.lastY = x, y

	c.camera.ProcessMouseMovement(float32(dx), float32(dy))
}

// ResetPointer makes the next pointer move a reference point again.
func (c *Controller) ResetPointer() {
	c.firstMove = true
}

// OnScroll zooms the camera.
func (c *Controller) OnScroll(yOffset float64) {
	c.camera.ProcessMouseScroll(float32(yOffset))
}

var movementKeys = []struct {
	key Key
	dir camera.Direction
}{
	{KeyW, camera.Forward},
	{KeyS, camera.Backward},
	{KeyA, camera.Left},
	{KeyD, camera.Right},
	{KeyQ, camera.Up},
	{KeyE, camera.Down},
}

// OnKeyboardPoll handles held keys for one frame of dt seconds.
func (c *Controller) OnKeyboardPoll(keys KeyState, dt float32) {
	if keys.Down(KeyEscape) {
		c.closeRequested = true
	}

	for _, mk := range movementKeys {
		if keys.Down(mk.key) {
			c.camera.ProcessKeyboard(mk.dir, dt)
		}
	}

	if keys.Down(KeyO) {
		c.Fire(EventToggleOrthographic)
	}
	if keys.Down(KeyP) {
		c.Fire(EventTogglePerspective)
	}
}

// OrthoExtents returns the half width and half height of the orthographic
// view volume for a window. The longer side spans OrthoHalfExtent and the
// shorter side is scaled by the aspect ratio.
func OrthoExtents(width, height int) (halfW, halfH float32) {
	halfW, halfH = OrthoHalfExtent, OrthoHalfExtent
	switch {
	case width > height && width > 0:
		halfH = OrthoHalfExtent * float32(height) / float32(width)
	case height > width && height > 0:
		halfW = OrthoHalfExtent * float32(width) / float32(height)
	}
	return halfW, halfH
}

// ComputeFrameMatrices returns the view and projection matrices for a
// window of the given size.
func (c *Controller) ComputeFrameMatrices(width, height int) (view, projection mgl32.Mat4) {
	view = c.camera.ViewMatrix()

	if c.mode == Orthographic {
		hw, hh := OrthoExtents(width, height)
		return view, mgl32.Ortho(-hw, hw, -hh, hh, Near, Far)
	}

	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return view, mgl32.Perspective(mgl32.DegToRad(c.camera.Zoom), aspect, Near, Far)
}

// PushFrameUniforms writes the per-frame view uniforms.
func PushFrameUniforms(u Uniforms, view, projection mgl32.Mat4, position mgl32.Vec3) {
	u.SetMat4(uniformView, view)
	u.SetMat4(uniformProjection, projection)
	u.SetVec3(uniformViewPosition, position)
}

// Update polls keys, then computes and pushes the frame matrices.
func (c *Controller) Update(keys KeyState, dt float32, width, height int, u Uniforms) {
	c.OnKeyboardPoll(keys, dt)
	view, projection := c.ComputeFrameMatrices(width, height)
	PushFrameUniforms(u, view, projection, c.camera.Position)
}
