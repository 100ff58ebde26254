package engine

import (
	"time"

	"github.com/Carmen-Shannon/flycam/engine/profiler"
	"github.com/Carmen-Shannon/flycam/engine/renderer"
	"github.com/Carmen-Shannon/flycam/engine/scene"
	"github.com/Carmen-Shannon/flycam/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default one second profiler.
//
// Parameters:
//   - p: the profiler to tick each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the graphics context instead of creating one on the window surface.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene driven each frame. Without WithRenderer the scene's renderer is used.
//
// Parameters:
//   - s: the Scene to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}

// WithClock replaces time.Now as the source of frame timestamps.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
	}
}
