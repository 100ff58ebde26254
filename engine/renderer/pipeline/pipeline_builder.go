package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithDepthFormat sets the depth attachment format.
//
// Parameters:
//   - format: the depth texture format the render pass attaches
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth format
func WithDepthFormat(format wgpu.TextureFormat) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthFormat = format
	}
}

// WithDepthWriteEnabled sets whether depth writing is enabled for this pipeline.
//
// Parameters:
//   - enabled: a boolean indicating whether depth writing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth write enabled state for this pipeline
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithDepthCompare sets the depth test function.
//
// Parameters:
//   - compare: the comparison used against the stored depth
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth compare function
func WithDepthCompare(compare wgpu.CompareFunction) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthCompare = compare
	}
}

// WithCullMode sets the cull mode for this pipeline.
//
// Parameters:
//   - mode: the cull mode to use for this pipeline (e.g., wgpu.CullModeNone, wgpu.CullModeFront, wgpu.CullModeBack)
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the primitive topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace sets the front face winding order for this pipeline.
//
// Parameters:
//   - frontFace: the winding order treated as front facing
//
// Returns:
//   - PipelineBuilderOption: a function that sets the front face winding order for this pipeline
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask sets the color write mask for this pipeline.
//
// Parameters:
//   - mask: the color channels written by the pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the color write mask for this pipeline
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = mask
	}
}

// WithBlendState overrides the REPLACE blend state.
//
// Parameters:
//   - blendState: the blend state to use, nil disables blending
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend state for this pipeline
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = blendState
	}
}
