package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// HeadlessBackend is a RendererBackend without a device. It records surface sizes, pipelines,
// buffer writes and draw calls, and stores sizes on providers in place of GPU handles.
type HeadlessBackend struct {
	mu *sync.Mutex

	surfaceSizes [][2]int
	pipelines    []string
	writes       []bind_group_provider.BufferWrite
	draws        []DrawCommand
	frames       int
	presented    int
	presentMode  PresentMode
	clearColor   wgpu.Color
	inFrame      bool

	// frameErr is returned by the next BeginFrame, then cleared
	frameErr error
}

var _ RendererBackend = &HeadlessBackend{}

// NewHeadlessBackend creates an empty HeadlessBackend.
//
// Returns:
//   - *HeadlessBackend: the recording backend
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{mu: &sync.Mutex{}}
}

// FailNextFrame makes the next BeginFrame return err.
//
// Parameters:
//   - err: the acquisition error to simulate
func (h *HeadlessBackend) FailNextFrame(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frameErr = err
}

// SurfaceSizes returns every size passed to ConfigureSurface, in order.
func (h *HeadlessBackend) SurfaceSizes() [][2]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][2]int(nil), h.surfaceSizes...)
}

// Pipelines returns the keys of the registered pipelines, in order.
func (h *HeadlessBackend) Pipelines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.pipelines...)
}

// Writes returns every buffer write, in order.
func (h *HeadlessBackend) Writes() []bind_group_provider.BufferWrite {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]bind_group_provider.BufferWrite(nil), h.writes...)
}

// Draws returns the draw calls of the most recent frame.
func (h *HeadlessBackend) Draws() []DrawCommand {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]DrawCommand(nil), h.draws...)
}

// Frames returns how many frames began successfully.
func (h *HeadlessBackend) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Presented returns how many frames were presented.
func (h *HeadlessBackend) Presented() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presented
}

// PresentMode returns the last present mode set.
func (h *HeadlessBackend) PresentMode() PresentMode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presentMode
}

// ClearColor returns the clear color of the most recent frame.
func (h *HeadlessBackend) ClearColor() wgpu.Color {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clearColor
}

func (h *HeadlessBackend) ConfigureSurface(width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaceSizes = append(h.surfaceSizes, [2]int{width, height})
	return nil
}

func (h *HeadlessBackend) SetPresentMode(mode PresentMode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presentMode = mode
}

func (h *HeadlessBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pipelines = append(h.pipelines, p.PipelineKey())
	return nil
}

func (h *HeadlessBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetMeshBuffers(nil, nil, indexCount)
	return nil
}

func (h *HeadlessBackend) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, size, stride uint64) error {
	provider.SetInstanceBuffer(nil, stride)
	return nil
}

func (h *HeadlessBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	for _, entry := range descriptor.Entries {
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			provider.SetBuffer(int(entry.Binding), nil, entry.Buffer.MinBindingSize)
		}
	}
	return nil
}

func (h *HeadlessBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	return nil
}

func (h *HeadlessBackend) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (h *HeadlessBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writes = append(h.writes, writes...)
}

func (h *HeadlessBackend) BeginFrame(clear wgpu.Color) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.frameErr; err != nil {
		h.frameErr = nil
		return err
	}
	if h.inFrame {
		return ErrFrameInProgress
	}
	h.inFrame = true
	h.frames++
	h.clearColor = clear
	h.draws = h.draws[:0]
	return nil
}

func (h *HeadlessBackend) DrawCall(cmd DrawCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.draws = append(h.draws, cmd)
}

func (h *HeadlessBackend) EndFrame() error {
	return nil
}

func (h *HeadlessBackend) Present() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.inFrame {
		return
	}
	h.inFrame = false
	h.presented++
}

func (h *HeadlessBackend) Release() {}
