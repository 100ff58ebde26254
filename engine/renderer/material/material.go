package material

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/flycam/common"
	"github.com/Carmen-Shannon/flycam/engine/renderer"
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group layout of a material, matching the t_diffuse/s_diffuse/t_normal/s_normal declarations.
const (
	DiffuseTextureBinding = 0
	DiffuseSamplerBinding = 1
	NormalTextureBinding  = 2
	NormalSamplerBinding  = 3
)

var (
	// SandDiffuse is the embedded sand color map.
	//
	//go:embed assets/sand_diffuse.png
	SandDiffuse []byte

	// SandNormal is the embedded tangent space normal map matching SandDiffuse.
	//
	//go:embed assets/sand_normal.png
	SandNormal []byte
)

// ErrNotDecoded is returned by Init when Decode has not succeeded yet.
var ErrNotDecoded = errors.New("material: textures not decoded")

// material is the implementation of the Material interface.
type material struct {
	name          string
	diffuse       *common.ImportedTexture
	normal        *common.ImportedTexture
	diffuseStage  common.TextureStagingData
	normalStage   common.TextureStagingData
	decoded       bool
	sampler       common.SamplerStagingData
	workers       int
	provider      bind_group_provider.BindGroupProvider
	maxTextureDim int
}

// Material is a surface made of a color texture and a tangent space normal map. It decodes both
// images off the main thread and uploads them into a four-binding bind group.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseTexture retrieves the encoded color texture.
	//
	// Returns:
	//   - *common.ImportedTexture: the diffuse texture, or nil
	DiffuseTexture() *common.ImportedTexture

	// NormalTexture retrieves the encoded normal map.
	//
	// Returns:
	//   - *common.ImportedTexture: the normal texture, or nil
	NormalTexture() *common.ImportedTexture

	// SamplerData returns the sampler configuration shared by both textures.
	SamplerData() common.SamplerStagingData

	// Decode decodes both textures in parallel and joins before returning. No workers outlive the call.
	// The diffuse map is staged as sRGB, the normal map as linear data.
	//
	// Returns:
	//   - error: the joined decode errors, nil if both succeeded
	Decode() error

	// StagingData returns the decoded pixels, valid after Decode.
	//
	// Returns:
	//   - common.TextureStagingData: the diffuse texture
	//   - common.TextureStagingData: the normal texture
	StagingData() (common.TextureStagingData, common.TextureStagingData)

	// Init uploads the textures and samplers and creates the bind group.
	//
	// Parameters:
	//   - r: the renderer owning the device
	//   - descriptor: the reflected layout of the material bind group
	//
	// Returns:
	//   - error: ErrNotDecoded before Decode, or an upload error
	Init(r renderer.Renderer, descriptor wgpu.BindGroupLayoutDescriptor) error

	// BindGroupProvider retrieves the provider holding the material's GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Release frees the GPU resources.
	Release()
}

var _ Material = &material{}

// DefaultSampler is the sampler policy for material textures: clamped, linear magnification,
// nearest minification and mip selection.
//
// Returns:
//   - common.SamplerStagingData: the sampler configuration
func DefaultSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeNearest,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	}
}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name:    "material",
		sampler: DefaultSampler(),
		workers: 2,
	}
	for _, opt := range options {
		opt(m)
	}
	for _, tex := range []*common.ImportedTexture{m.diffuse, m.normal} {
		if tex != nil {
			tex.MaxSize = m.maxTextureDim
		}
	}
	m.provider = bind_group_provider.NewBindGroupProvider(m.name + " Material")
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseTexture() *common.ImportedTexture {
	return m.diffuse
}

func (m *material) NormalTexture() *common.ImportedTexture {
	return m.normal
}

func (m *material) SamplerData() common.SamplerStagingData {
	return m.sampler
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.provider
}

func (m *material) StagingData() (common.TextureStagingData, common.TextureStagingData) {
	return m.diffuseStage, m.normalStage
}

func (m *material) Decode() error {
	jobs := []struct {
		tex    *common.ImportedTexture
		format wgpu.TextureFormat
		out    *common.TextureStagingData
	}{
		{m.diffuse, wgpu.TextureFormatRGBA8UnormSrgb, &m.diffuseStage},
		{m.normal, wgpu.TextureFormatRGBA8Unorm, &m.normalStage},
	}

	// Workers return once tasks is closed and drained.
	tasks := make(chan worker.Task, len(jobs))
	stop := make(chan int, m.workers)
	for id := range min(m.workers, len(jobs)) {
		worker.NewWorker(id, tasks, stop, 1*time.Second, nil).Start()
	}
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		tasks <- worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				pixels, w, h, err := job.tex.Decode()
				if err != nil {
					errs[i] = fmt.Errorf("material %q: %w", m.name, err)
					return nil, errs[i]
				}
				*job.out = common.TextureStagingData{Pixels: pixels, Width: w, Height: h, Format: job.format}
				return nil, nil
			},
		}
	}
	close(tasks)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	m.decoded = true
	return nil
}

func (m *material) Init(r renderer.Renderer, descriptor wgpu.BindGroupLayoutDescriptor) error {
	if !m.decoded {
		return ErrNotDecoded
	}

	if err := r.InitTextureView(m.provider, DiffuseTextureBinding, m.diffuseStage); err != nil {
		return fmt.Errorf("material %q diffuse: %w", m.name, err)
	}
	if err := r.InitTextureView(m.provider, NormalTextureBinding, m.normalStage); err != nil {
		return fmt.Errorf("material %q normal: %w", m.name, err)
	}
	for _, binding := range []int{DiffuseSamplerBinding, NormalSamplerBinding} {
		if err := r.InitSampler(m.provider, binding, m.sampler); err != nil {
			return fmt.Errorf("material %q sampler %d: %w", m.name, binding, err)
		}
	}
	if err := r.InitBindGroup(m.provider, descriptor); err != nil {
		return fmt.Errorf("material %q bind group: %w", m.name, err)
	}
	return nil
}

func (m *material) Release() {
	m.provider.Release()
}
