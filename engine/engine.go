package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Carmen-Shannon/flycam/engine/config"
	"github.com/Carmen-Shannon/flycam/engine/profiler"
	"github.com/Carmen-Shannon/flycam/engine/renderer"
	"github.com/Carmen-Shannon/flycam/engine/scene"
	"github.com/Carmen-Shannon/flycam/engine/window"
)

// engine implements the Engine interface.
// Drives update and render from the window's message loop on the calling goroutine.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderCallback   func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	now       func() time.Time
	start     time.Time
	lastFrame time.Time
}

// Engine is the main entry point for the demo.
// It owns the window, the renderer and the scene and runs the frame loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the graphics context.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Scene returns the scene driven each frame.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called after each frame is presented.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run wires input and resize events into the scene and renderer, then runs the message loop
	// until the window closes or Escape is pressed. Each iteration updates the scene with the
	// frame delta and the time since Run started, then renders it. GPU resources are released
	// and the window is closed before Run returns.
	//
	// Returns:
	//   - error: an error if the window could not be closed cleanly
	Run() error

	// Quit asks the loop to stop after the current frame. Safe to call multiple times.
	Quit()
}

// NewEngine creates the window, renderer and scene described by cfg unless options supply them.
// Profiling and the frame limit default to the cfg values.
//
// Parameters:
//   - cfg: the configuration to build from
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: a startup error from window, device, shader or asset setup
func NewEngine(cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		profilingEnabled: cfg.Engine.Profiling,
		now:              time.Now,
	}
	e.SetRenderFrameLimit(float64(cfg.Engine.FrameLimit))

	for _, opt := range options {
		opt(e)
	}

	if e.scene != nil && e.renderer == nil {
		e.renderer = e.scene.Renderer()
	}

	if e.window == nil {
		w, err := window.NewWindow(cfg.WindowOptions()...)
		if err != nil {
			return nil, err
		}
		e.window = w
	}

	if e.renderer == nil {
		r, err := renderer.NewRenderer(e.window, cfg.RendererOptions()...)
		if err != nil {
			e.window.Close()
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
		e.renderer = r
	}

	if e.scene == nil {
		s, err := scene.NewScene(e.renderer, cfg.SceneOptions()...)
		if err != nil {
			e.renderer.Release()
			e.window.Close()
			return nil, fmt.Errorf("failed to create scene: %w", err)
		}
		e.scene = s
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Run() error {
	e.window.SetResizeCallback(func(width, height int) {
		if err := e.renderer.Resize(width, height); err != nil {
			log.Printf("[Engine] resize to %dx%d failed: %v", width, height, err)
		}
	})
	e.window.SetKeyCallback(func(keyCode int, pressed bool) {
		e.scene.HandleKey(keyCode, pressed)
	})
	e.window.SetMouseMotionCallback(e.scene.HandleMouseMotion)
	e.window.SetUpdateCallback(e.frame)

	e.start = e.now()
	e.lastFrame = e.start
	e.profiler.Reset(e.start)

	e.window.ProcessMessages()

	e.scene.Release()
	e.renderer.Release()
	return e.window.Close()
}

func (e *engine) Quit() {
	e.window.RequestClose()
}

// frame runs one loop iteration: surface sync, update, render, profiling and frame pacing.
func (e *engine) frame() {
	e.syncSurface()

	now := e.now()
	dt := now.Sub(e.lastFrame).Seconds()
	e.lastFrame = now

	e.scene.Update(dt, now.Sub(e.start).Seconds())

	if err := e.scene.Render(); err != nil {
		if errors.Is(err, renderer.ErrSurfaceLost) {
			e.recoverSurface()
		} else {
			log.Printf("[Engine] frame error: %v", err)
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(float32(dt))
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(e.now())
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// syncSurface resizes the surface when it no longer matches the window framebuffer.
func (e *engine) syncSurface() {
	width, height := max(e.window.Width(), 1), max(e.window.Height(), 1)
	if w, h := e.renderer.SurfaceSize(); w == width && h == height {
		return
	}
	if err := e.renderer.Resize(width, height); err != nil {
		log.Printf("[Engine] surface resize to %dx%d failed: %v", width, height, err)
	}
}

// recoverSurface reconfigures the surface at the current window size after it was lost.
func (e *engine) recoverSurface() {
	width, height := e.window.Width(), e.window.Height()
	if err := e.renderer.Resize(width, height); err != nil {
		log.Printf("[Engine] surface recovery at %dx%d failed: %v", width, height, err)
	}
}
