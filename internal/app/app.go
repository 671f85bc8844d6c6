// Package app wires the window, renderer and the two scene managers into the
// frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/config"
	"github.com/Faultbox/stilllife/internal/engine/debug"
	"github.com/Faultbox/stilllife/internal/engine/input"
	"github.com/Faultbox/stilllife/internal/engine/renderer"
	"github.com/Faultbox/stilllife/internal/engine/shader"
	"github.com/Faultbox/stilllife/internal/engine/texture"
	"github.com/Faultbox/stilllife/internal/engine/window"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/internal/scene"
	"github.com/Faultbox/stilllife/internal/view"
)

// keyBindings maps controller keys to physical keys.
var keyBindings = map[view.Key]sdl.Scancode{
	view.KeyW:      sdl.SCANCODE_W,
	view.KeyA:      sdl.SCANCODE_A,
	view.KeyS:      sdl.SCANCODE_S,
	view.KeyD:      sdl.SCANCODE_D,
	view.KeyQ:      sdl.SCANCODE_Q,
	view.KeyE:      sdl.SCANCODE_E,
	view.KeyO:      sdl.SCANCODE_O,
	view.KeyP:      sdl.SCANCODE_P,
	view.KeyEscape: sdl.SCANCODE_ESCAPE,
}

// keyState adapts SDL keyboard state to the view controller.
type keyState struct {
	in *input.Input
}

func (k keyState) Down(key view.Key) bool {
	sc, ok := keyBindings[key]
	return ok && k.in.KeyDown(sc)
}

// App is the running viewer.
type App struct {
	config *config.Config
	log    *zap.Logger

	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	program    *shader.Program
	meshes     *renderer.MeshLibrary
	scene      *scene.Manager
	view       *view.Controller
	screenshot *debug.ScreenshotCapture

	running bool
}

// New creates the window and GL context and prepares the scene. Any
// failure here aborts before the first frame.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}

	desc, err := loadDescription(cfg)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:          cfg.Window.Title,
		Width:          cfg.Window.Width,
		Height:         cfg.Window.Height,
		Fullscreen:     cfg.Window.Fullscreen,
		VSync:          cfg.Window.VSync,
		CapturePointer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Must follow window creation, the GL context has to exist.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [4]float32{0, 0, 0, 1},
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.program, err = shader.NewPhong(logger.Named("shader"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to compile shaders: %w", err)
	}
	a.program.Use()
	a.log.Debug("shader program linked", zap.Uint32("program", a.program.ID()))

	a.meshes = renderer.NewMeshLibrary()
	a.scene = scene.New(scene.Config{
		Uniforms:    a.program,
		Decoder:     texture.NewDecoder(),
		Textures:    renderer.NewTextureStore(),
		Meshes:      a.meshes,
		ResolvePath: cfg.TexturePath,
		Logger:      logger.Named("scene"),
	})
	if err := a.scene.PrepareScene(desc); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to prepare scene: %w", err)
	}

	a.view = view.New(view.Config{
		MovementSpeed:    cfg.Camera.MovementSpeed,
		MouseSensitivity: cfg.Camera.MouseSensitivity,
		Logger:           logger.Named("view"),
	})

	a.input = input.New()
	a.screenshot = debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix)

	a.log.Info("viewer initialized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return a, nil
}

func loadDescription(cfg *config.Config) (*scene.Description, error) {
	if cfg.Scene.File == "" {
		return scene.DefaultDescription()
	}
	return scene.LoadDescription(cfg.Scene.File)
}

// Run drives the frame loop until the window closes or escape is pressed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleInput()

		width, height := a.renderer.Size()
		a.renderer.Begin()
		a.view.Update(keyState{a.input}, dt, width, height, a.program)
		a.scene.RenderFrame()

		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.captureScreenshot()
		}

		a.window.SwapBuffers()

		if a.view.CloseRequested() {
			a.running = false
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Stringer("projection", a.view.Mode()),
			)
			a.window.SetTitle(fmt.Sprintf("%s - %d fps - %s", a.config.Window.Title, frameCount, a.view.Mode()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleInput forwards pointer and wheel events to the view controller.
func (a *App) handleInput() {
	if a.input.FocusGained() {
		a.view.ResetPointer()
	}
	if x, y, moved := a.input.Pointer(); moved {
		a.view.OnPointerMove(x, y)
	}
	if s := a.input.Scroll(); s != 0 {
		a.view.OnScroll(s)
	}
}

func (a *App) captureScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.scene != nil {
		a.scene.Close()
	}
	if a.meshes != nil {
		a.meshes.Close()
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
