package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// depthFormat is the format of the depth attachment every pipeline renders against.
const depthFormat = wgpu.TextureFormatDepth32Float

// srgbFormats are the surface formats preferred over the first offered one.
var srgbFormats = map[wgpu.TextureFormat]bool{
	wgpu.TextureFormatBGRA8UnormSrgb: true,
	wgpu.TextureFormatRGBA8UnormSrgb: true,
}

type wgpuRendererBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat    wgpu.TextureFormat
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	presentMode wgpu.PresentMode

	// Frame state between BeginFrame and Present
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackend{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (*wgpuRendererBackend, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)
	if b.surface == nil {
		b.Release()
		return nil, errors.New("renderer: surface creation failed")
	}

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	limits := wgpu.DefaultLimits()
	limits.MaxBindGroups = 8

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	caps := b.surface.GetCapabilities(b.adapter)
	if len(caps.Formats) == 0 {
		b.Release()
		return nil, errors.New("renderer: surface reports no formats")
	}
	b.surfaceFormat = selectSurfaceFormat(caps.Formats)
	return b, nil
}

// selectSurfaceFormat prefers an sRGB format and otherwise takes the first one offered.
func selectSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if srgbFormats[f] {
			return f
		}
	}
	return formats[0]
}

// orDefault returns v, or fallback when v is the zero value.
func orDefault[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	caps := b.surface.GetCapabilities(b.adapter)
	alphaMode := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alphaMode = caps.AlphaModes[0]
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   alphaMode,
	})

	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	view, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		return fmt.Errorf("create depth view: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView = view
	return nil
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	s := p.Shader()
	if s == nil {
		return errors.New("a shader must be set to create a render pipeline")
	}

	module, err := b.device.CreateShaderModule(s.Module())
	if err != nil {
		return err
	}
	defer module.Release()

	descriptors := s.BindGroupLayoutDescriptors()
	maxGroup := -1
	for g := range descriptors {
		maxGroup = max(maxGroup, g)
	}
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g := 0; g <= maxGroup; g++ {
		desc := descriptors[g]
		layout, layoutErr := b.device.CreateBindGroupLayout(&desc)
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		bindGroupLayouts[g] = layout
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		return err
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: s.VertexEntryPoint(),
			Buffers:    s.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: s.FragmentEntryPoint(),
			Targets: []wgpu.ColorTargetState{{
				Format:    b.surfaceFormat,
				Blend:     p.BlendState(),
				WriteMask: p.WriteMask(),
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            p.DepthFormat(),
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      p.DepthCompare(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vb, err := b.createFilledBuffer(provider.Label()+" Vertex Buffer", wgpu.BufferUsageVertex, vertexData)
	if err != nil {
		return err
	}
	ib, err := b.createFilledBuffer(provider.Label()+" Index Buffer", wgpu.BufferUsageIndex, indexData)
	if err != nil {
		vb.Release()
		return err
	}
	provider.SetMeshBuffers(vb, ib, indexCount)
	return nil
}

func (b *wgpuRendererBackend) createFilledBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: no data", label)
	}
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

func (b *wgpuRendererBackend) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, size, stride uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Instance Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	provider.SetInstanceBuffer(buf, stride)
	return nil
}

func (b *wgpuRendererBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		var err error
		layout, err = b.device.CreateBindGroupLayout(&descriptor)
		if err != nil {
			return err
		}
		provider.SetBindGroupLayout(layout)
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			tv := provider.TextureView(binding)
			if tv == nil {
				return fmt.Errorf("%s: texture binding %d has no texture view", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: tv}
		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			samp := provider.Sampler(binding)
			if samp == nil {
				return fmt.Errorf("%s: sampler binding %d has no sampler", provider.Label(), binding)
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: samp}
		default:
			buf := provider.Buffer(binding)
			if buf == nil {
				usage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
				if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
					usage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
				}
				var err error
				buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
					Label: provider.Label() + " Buffer",
					Size:  entry.Buffer.MinBindingSize,
					Usage: usage,
				})
				if err != nil {
					return err
				}
				provider.SetBuffer(binding, buf, entry.Buffer.MinBindingSize)
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := wgpu.Extent3D{
		Width:              stagingData.Width,
		Height:             stagingData.Height,
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         fmt.Sprintf("%s Texture %d", provider.Label(), binding),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        orDefault(stagingData.Format, wgpu.TextureFormatRGBA8UnormSrgb),
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	provider.SetTexture(binding, tex, view)
	return nil
}

func (b *wgpuRendererBackend) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         fmt.Sprintf("%s Sampler %d", provider.Label(), binding),
		AddressModeU:  samplerStagingData.AddressModeU,
		AddressModeV:  samplerStagingData.AddressModeV,
		AddressModeW:  samplerStagingData.AddressModeW,
		MagFilter:     samplerStagingData.MagFilter,
		MinFilter:     samplerStagingData.MinFilter,
		MipmapFilter:  samplerStagingData.MipmapFilter,
		LodMinClamp:   samplerStagingData.LodMinClamp,
		LodMaxClamp:   orDefault(samplerStagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: orDefault(samplerStagingData.MaxAnisotropy, 1),
	})
	if err != nil {
		return err
	}
	provider.SetSampler(binding, samp)
	return nil
}

func (b *wgpuRendererBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if w.Binding == bind_group_provider.InstanceBinding {
			buf = w.Provider.InstanceBuffer()
		}
		if buf == nil {
			continue
		}
		if err := b.queue.WriteBuffer(buf, w.Offset, w.Data); err != nil {
			log.Printf("[Renderer] write %s binding %d: %v", w.Provider.Label(), w.Binding, err)
		}
	}
}

func (b *wgpuRendererBackend) BeginFrame(clear wgpu.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return ErrFrameInProgress
	}

	// The binding reports no acquisition status, so outdated surfaces are avoided by the caller
	// resizing to the window size before each frame.
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clear,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackend) DrawCall(cmd DrawCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	b.framePass.SetPipeline(cmd.Pipeline.RenderPipeline())
	for i, bg := range cmd.BindGroups {
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, cmd.Mesh.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetVertexBuffer(1, cmd.Instances.InstanceBuffer(), cmd.InstanceOffset, cmd.InstanceSize)
	b.framePass.SetIndexBuffer(cmd.Mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(cmd.Mesh.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuRendererBackend) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return nil
	}

	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrame()
		return err
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrame()
}

func (b *wgpuRendererBackend) releaseFrame() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrame()
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
