package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backend RendererBackend

	configured bool
	width      int
	height     int
	clearColor wgpu.Color

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

// Renderer is the graphics context: it owns the backend, the registered pipelines and the
// Unconfigured → Configured surface state, and forwards resource and frame calls to the backend.
type Renderer interface {
	// Resize clamps both dimensions to at least 1, reconfigures the surface and depth buffer and
	// marks the renderer configured.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the backend could not configure the surface
	Resize(width, height int) error

	// Configured reports whether Resize has succeeded at least once.
	Configured() bool

	// SurfaceSize returns the configured surface size, zero before the first Resize.
	SurfaceSize() (int, int)

	// AspectRatio returns width / height of the configured surface, 1 before the first Resize.
	AspectRatio() float32

	// Pipeline retrieves a registered pipeline.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil if not registered
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines builds the GPU pipeline for each description and caches it by key.
	// Keys that are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first pipeline creation error
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// InitMeshBuffers uploads static vertex and index data for a mesh.
	//
	// Parameters:
	//   - provider: the provider that receives the buffers
	//   - vertexData: the serialized vertices
	//   - indexData: the serialized uint32 indices
	//   - indexCount: the number of indices drawn
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer creates a per-instance vertex buffer holding count records of stride bytes.
	//
	// Parameters:
	//   - provider: the provider that receives the buffer
	//   - count: the number of instance records
	//   - stride: the byte size of one record
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, count int, stride uint64) error

	// InitBindGroup creates uniform buffers sized from the descriptor's MinBindingSize, then the
	// bind group. Textures and samplers must be initialized first.
	//
	// Parameters:
	//   - provider: the provider that receives the bind group
	//   - descriptor: the reflected layout descriptor
	//
	// Returns:
	//   - error: an error if a resource is missing or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads decoded pixels as a texture at binding.
	//
	// Parameters:
	//   - provider: the provider that receives the texture
	//   - binding: the binding index of the texture
	//   - stagingData: the pixels, size and format
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler at binding.
	//
	// Parameters:
	//   - provider: the provider that receives the sampler
	//   - binding: the binding index of the sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues buffer writes to the GPU.
	//
	// Parameters:
	//   - writes: the writes to apply in order
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next frame and begins the render pass.
	//
	// Returns:
	//   - error: ErrNotConfigured, ErrSurfaceLost, or another acquisition error
	BeginFrame() error

	// DrawCall draws the mesh with the pipeline registered under pipelineKey, binding the instance
	// record at instanceIndex as a one-instance slice of the instance buffer.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline to draw with
	//   - mesh: the provider holding vertex and index buffers
	//   - instances: the provider holding the instance buffer
	//   - instanceIndex: the record to bind
	//   - bindGroups: bind groups set at indices 0..n-1
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	DrawCall(pipelineKey string, mesh, instances bind_group_provider.BindGroupProvider, instanceIndex int, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the frame's commands.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the frame.
	Present()

	// Release frees every registered pipeline and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer. Without WithBackend a wgpu backend is created on the surface
// of src. When src is non-nil the surface is configured to its size before returning.
//
// Parameters:
//   - src: the window providing the surface, may be nil with a custom backend
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: a startup error from adapter, device or surface setup
func NewRenderer(src SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		clearColor:    wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		presentMode:   PresentModeVSync,
	}

	// options first so forceFallbackAdapter is known before the adapter is requested
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		if src == nil {
			return nil, fmt.Errorf("renderer: no surface source for the wgpu backend")
		}
		backend, err := newWGPURendererBackend(src.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	}
	r.backend.SetPresentMode(r.presentMode)

	if src != nil {
		if err := r.Resize(src.Width(), src.Height()); err != nil {
			r.backend.Release()
			return nil, err
		}
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	width, height = max(width, 1), max(height, 1)
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.configured = true
	return nil
}

func (r *renderer) Configured() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.configured
}

func (r *renderer) SurfaceSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) AspectRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.configured {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, count int, stride uint64) error {
	if count <= 0 {
		return fmt.Errorf("instance buffer %q: count %d must be positive", provider.Label(), count)
	}
	return r.backend.InitInstanceBuffer(provider, uint64(count)*stride, stride)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, binding, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, binding, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	if !r.Configured() {
		return ErrNotConfigured
	}
	return r.backend.BeginFrame(r.clearColor)
}

func (r *renderer) DrawCall(pipelineKey string, mesh, instances bind_group_provider.BindGroupProvider, instanceIndex int, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	offset, size := instanceSlice(instances.InstanceStride(), instanceIndex)
	r.backend.DrawCall(DrawCommand{
		Pipeline:       p,
		Mesh:           mesh,
		Instances:      instances,
		InstanceOffset: offset,
		InstanceSize:   size,
		BindGroups:     bindGroups,
	})
	return nil
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pipelineCache {
		p.Release()
	}
	r.pipelineCache = make(map[string]pipeline.Pipeline)
	r.backend.Release()
	r.configured = false
}

// instanceSlice returns the byte range [stride·i, stride·(i+1)) of record i.
func instanceSlice(stride uint64, index int) (uint64, uint64) {
	return stride * uint64(index), stride
}
