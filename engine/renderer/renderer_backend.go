package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrSurfaceLost is returned by BeginFrame when the backend reports a lost or outdated surface.
	// The caller should Resize to the current window size and skip the frame.
	ErrSurfaceLost = errors.New("renderer: surface lost or outdated")

	// ErrNotConfigured is returned by BeginFrame before the first Resize.
	ErrNotConfigured = errors.New("renderer: surface not configured")

	// ErrFrameInProgress is returned by BeginFrame when the previous frame was not presented.
	ErrFrameInProgress = errors.New("renderer: previous frame not presented")
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// SurfaceSource is the window side of surface creation.
type SurfaceSource interface {
	// SurfaceDescriptor returns the platform surface descriptor for the window.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// DrawCommand is one indexed draw as issued to a backend. InstanceOffset and InstanceSize select
// the byte range of the instance buffer bound at vertex slot 1.
type DrawCommand struct {
	Pipeline       pipeline.Pipeline
	Mesh           bind_group_provider.BindGroupProvider
	Instances      bind_group_provider.BindGroupProvider
	InstanceOffset uint64
	InstanceSize   uint64
	BindGroups     []bind_group_provider.BindGroupProvider
}

// RendererBackend is the GPU API behind a Renderer. The wgpu backend drives a real device; the
// headless backend records calls so frame logic can run without one.
type RendererBackend interface {
	// ConfigureSurface (re)configures the presentation surface and the depth attachment.
	//
	// Parameters:
	//   - width: surface width in pixels, at least 1
	//   - height: surface height in pixels, at least 1
	//
	// Returns:
	//   - error: an error if the surface or depth texture could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline builds the GPU pipeline for p and stores it on p.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: an error if module, layout or pipeline creation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index data into new buffers on provider.
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer creates an instance vertex buffer of size bytes on provider.
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, size, stride uint64) error

	// InitBindGroup creates the layout, any missing uniform buffers and the bind group on provider.
	// Textures and samplers must already be set for their bindings.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads pixels into a new texture bound at binding on provider.
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler bound at binding on provider.
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues the writes. InstanceBinding targets the provider's instance buffer.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and begins the single render pass.
	//
	// Parameters:
	//   - clear: the color the pass clears to
	//
	// Returns:
	//   - error: ErrSurfaceLost when the backend can tell the surface is gone, any other acquisition error as is
	BeginFrame(clear wgpu.Color) error

	// DrawCall encodes one draw into the current pass.
	DrawCall(cmd DrawCommand)

	// EndFrame ends the pass and submits the command buffer.
	EndFrame() error

	// Present shows the frame and releases the surface texture.
	Present()

	// Release frees the device level objects.
	Release()
}
