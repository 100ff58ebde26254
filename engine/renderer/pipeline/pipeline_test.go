package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("cube", nil)

	if p.PipelineKey() != "cube" {
		t.Errorf("PipelineKey() = %q", p.PipelineKey())
	}
	if p.DepthFormat() != wgpu.TextureFormatDepth32Float || p.DepthCompare() != wgpu.CompareFunctionLess || !p.DepthWriteEnabled() {
		t.Errorf("depth state = %v %v %v", p.DepthFormat(), p.DepthCompare(), p.DepthWriteEnabled())
	}
	if p.CullMode() != wgpu.CullModeBack || p.FrontFace() != wgpu.FrontFaceCCW {
		t.Errorf("raster state = %v %v", p.CullMode(), p.FrontFace())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Errorf("topology %v, write mask %v", p.Topology(), p.WriteMask())
	}

	b := p.BlendState()
	if b == nil || b.Color.SrcFactor != wgpu.BlendFactorOne || b.Color.DstFactor != wgpu.BlendFactorZero {
		t.Errorf("blend state = %+v, want REPLACE", b)
	}
	if p.RenderPipeline() != nil {
		t.Error("RenderPipeline() must be nil before a backend builds it")
	}
	p.Release()
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("wire", nil,
		WithCullMode(wgpu.CullModeNone),
		WithFrontFace(wgpu.FrontFaceCW),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithDepthWriteEnabled(false),
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
		WithBlendState(nil),
		WithDepthFormat(wgpu.TextureFormatDepth24Plus),
		WithWriteMask(wgpu.ColorWriteMaskRed|wgpu.ColorWriteMaskAlpha),
	)
	if p.CullMode() != wgpu.CullModeNone || p.FrontFace() != wgpu.FrontFaceCW {
		t.Errorf("raster options not applied")
	}
	if p.Topology() != wgpu.PrimitiveTopologyLineList {
		t.Errorf("Topology() = %v", p.Topology())
	}
	if p.DepthWriteEnabled() || p.DepthCompare() != wgpu.CompareFunctionLessEqual {
		t.Errorf("depth options not applied")
	}
	if p.BlendState() != nil {
		t.Errorf("BlendState() = %+v, want nil", p.BlendState())
	}
	if p.DepthFormat() != wgpu.TextureFormatDepth24Plus {
		t.Errorf("DepthFormat() = %v", p.DepthFormat())
	}
	if p.WriteMask() != wgpu.ColorWriteMaskRed|wgpu.ColorWriteMaskAlpha {
		t.Errorf("WriteMask() = %v", p.WriteMask())
	}
}
