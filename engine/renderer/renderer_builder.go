package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackend replaces the wgpu backend, e.g. with NewHeadlessBackend for GPU-free runs.
//
// Parameters:
//   - backend: the backend to drive
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithClearColor sets the color the render pass clears to.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color to a renderer
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
