// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Input collects one frame of SDL events. Pointer motion arrives as
// relative deltas and is accumulated into a virtual pointer position, so
// consumers see absolute coordinates as if the cursor could move forever.
type Input struct {
	quit         bool
	focusGained  bool
	pointerMoved bool
	pointerX     float64
	pointerY     float64
	scrollY      float64
	pressed      []sdl.Scancode
	keys         []uint8
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		pressed: make([]sdl.Scancode, 0, 8),
	}
}

// Update polls SDL events for this frame. Returns true if the window was
// closed.
func (i *Input) Update() bool {
	i.pressed = i.pressed[:0]
	i.focusGained = false
	i.pointerMoved = false
	i.scrollY = 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_FOCUS_GAINED {
				i.focusGained = true
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.pressed = append(i.pressed, e.Keysym.Scancode)
			}

		case *sdl.MouseMotionEvent:
			i.pointerX += float64(e.XRel)
			i.pointerY += float64(e.YRel)
			i.pointerMoved = true

		case *sdl.MouseWheelEvent:
			y := float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			i.scrollY += y
		}
	}

	// Held-key snapshot, valid until the next PollEvent.
	i.keys = sdl.GetKeyboardState()
	return i.quit
}

// KeyDown reports whether a key is held.
func (i *Input) KeyDown(sc sdl.Scancode) bool {
	return int(sc) < len(i.keys) && i.keys[sc] != 0
}

// IsKeyPressed reports whether a key went down this frame.
func (i *Input) IsKeyPressed(sc sdl.Scancode) bool {
	for _, p := range i.pressed {
		if p == sc {
			return true
		}
	}
	return false
}

// Pointer returns the virtual pointer position and whether it moved this
// frame.
func (i *Input) Pointer() (x, y float64, moved bool) {
	return i.pointerX, i.pointerY, i.pointerMoved
}

// Scroll returns the vertical wheel movement of this frame.
func (i *Input) Scroll() float64 {
	return i.scrollY
}

// FocusGained reports whether the window regained focus this frame.
func (i *Input) FocusGained() bool {
	return i.focusGained
}
