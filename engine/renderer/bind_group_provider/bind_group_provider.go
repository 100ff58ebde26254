package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	label string

	// GPU handles below are populated by the renderer backend. A headless backend leaves them nil.
	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	bufferSizes     map[int]uint64
	textures        map[int]*wgpu.Texture
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	vertexBuffer   *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	instanceBuffer *wgpu.Buffer
	indexCount     int
	instanceStride uint64
}

// BindGroupProvider holds the GPU resources a single draw input needs: a uniform bind group,
// a material bind group, or the vertex/index/instance buffers of a mesh.
//
// The scene creates providers and hands them to the renderer, which allocates the GPU objects and
// stores them back here:
//  1. renderer.InitTextureView / InitSampler for material bindings
//  2. renderer.InitBindGroup with the layout reflected from the shader
//  3. renderer.InitMeshBuffers / InitInstanceBuffer for geometry
//  4. renderer.WriteBuffers each frame for uniform and instance data
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider and clears the handles.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group, or nil before initialization.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created from, or nil.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer at a binding index, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns every buffer keyed by binding index.
	//
	// Returns:
	//   - map[int]*wgpu.Buffer: buffers keyed by binding index
	Buffers() map[int]*wgpu.Buffer

	// BufferSize returns the allocated size in bytes of the buffer at a binding index.
	// The renderer records the size even when no GPU handle exists.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - uint64: the size in bytes, 0 when the binding holds no buffer
	BufferSize(binding int) uint64

	// TextureView returns the texture view at a binding index, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at a binding index, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the mesh vertex buffer, or nil.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the mesh index buffer, or nil.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn from the index buffer.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// InstanceBuffer returns the per-instance vertex buffer, or nil.
	//
	// Returns:
	//   - *wgpu.Buffer: the instance buffer or nil
	InstanceBuffer() *wgpu.Buffer

	// InstanceStride returns the byte size of one instance record in the instance buffer.
	//
	// Returns:
	//   - uint64: the stride in bytes
	InstanceStride() uint64

	// SetBindGroup stores the bind group created by the renderer.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout created by the renderer.
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a buffer and its size at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer, nil for a headless allocation
	//   - size: the allocated size in bytes
	SetBuffer(binding int, buf *wgpu.Buffer, size uint64)

	// SetTexture stores a texture and its view at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - tex: the created texture
	//   - tv: the view over tex
	SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView)

	// SetSampler stores a sampler at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - s: the created sampler
	SetSampler(binding int, s *wgpu.Sampler)

	// SetMeshBuffers stores the vertex and index buffers of a mesh.
	//
	// Parameters:
	//   - vertexBuffer: the vertex buffer
	//   - indexBuffer: the index buffer
	//   - indexCount: the number of indices
	SetMeshBuffers(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int)

	// SetInstanceBuffer stores the per-instance vertex buffer.
	//
	// Parameters:
	//   - buf: the instance buffer
	//   - stride: the byte size of one instance record
	SetInstanceBuffer(buf *wgpu.Buffer, stride uint64)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty BindGroupProvider.
//
// Parameters:
//   - label: the debug label, also used as the prefix of GPU object labels
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		bufferSizes:  make(map[int]uint64),
		textures:     make(map[int]*wgpu.Texture),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) BufferSize(binding int) uint64 {
	return p.bufferSizes[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) InstanceBuffer() *wgpu.Buffer {
	return p.instanceBuffer
}

func (p *bindGroupProvider) InstanceStride() uint64 {
	return p.instanceStride
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer, size uint64) {
	p.buffers[binding] = buf
	p.bufferSizes[binding] = size
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView) {
	p.textures[binding] = tex
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetMeshBuffers(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int) {
	p.vertexBuffer = vertexBuffer
	p.indexBuffer = indexBuffer
	p.indexCount = indexCount
}

func (p *bindGroupProvider) SetInstanceBuffer(buf *wgpu.Buffer, stride uint64) {
	p.instanceBuffer = buf
	p.instanceStride = stride
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
		delete(p.bufferSizes, i)
	}
	for _, buf := range []*wgpu.Buffer{p.vertexBuffer, p.indexBuffer, p.instanceBuffer} {
		if buf != nil {
			buf.Release()
		}
	}
	p.vertexBuffer, p.indexBuffer, p.instanceBuffer = nil, nil, nil
	p.indexCount = 0
}
