package pipeline

import (
	"github.com/Carmen-Shannon/flycam/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the render state a backend needs to build the GPU pipeline, and the pipeline once built.
type pipeline struct {
	// pipelineKey is the unique identifier entities use to select this pipeline
	pipelineKey string

	// shader holds both the vertex and fragment entry points
	shader shader.Shader

	// renderPipeline is nil until a backend builds it
	renderPipeline *wgpu.RenderPipeline

	depthFormat       wgpu.TextureFormat
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a render pipeline: its shader and the fixed-function state around it.
// Backends read the description to create the GPU object and store it back with SetRenderPipeline.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader module providing both entry points.
	//
	// Returns:
	//   - shader.Shader: the pipeline's shader
	Shader() shader.Shader

	// RenderPipeline returns the GPU pipeline, or nil before it is built.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the built pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// DepthFormat returns the depth attachment format.
	DepthFormat() wgpu.TextureFormat

	// DepthWriteEnabled returns whether fragments write depth.
	DepthWriteEnabled() bool

	// DepthCompare returns the depth test function.
	DepthCompare() wgpu.CompareFunction

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order treated as front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the color target blend state.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, REPLACE unless overridden
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the built GPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline if one was built.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. Defaults: triangle list, counter-clockwise
// front faces, back face culling, REPLACE blending, all channels written, Depth32Float with depth
// writes and a Less compare.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the shader providing the vertex and fragment entry points
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline description
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		depthFormat:       wgpu.TextureFormatDepth32Float,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLess,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState:        replaceBlend(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	return p.depthCompare
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}

// replaceBlend writes source color and alpha over the destination unchanged.
func replaceBlend() *wgpu.BlendState {
	replace := wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorZero,
		Operation: wgpu.BlendOperationAdd,
	}
	return &wgpu.BlendState{Color: replace, Alpha: replace}
}
