package material

import "github.com/Carmen-Shannon/flycam/common"

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuseTexture sets the encoded color texture.
//
// Parameters:
//   - data: PNG, JPEG, BMP or WebP bytes
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse texture option to a material
func WithDiffuseTexture(data []byte) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse = &common.ImportedTexture{Name: "diffuse", Data: data}
	}
}

// WithNormalTexture sets the encoded tangent space normal map.
//
// Parameters:
//   - data: PNG, JPEG, BMP or WebP bytes
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal texture option to a material
func WithNormalTexture(data []byte) MaterialBuilderOption {
	return func(m *material) {
		m.normal = &common.ImportedTexture{Name: "normal", Data: data}
	}
}

// WithMaxTextureSize caps the larger side of decoded textures.
//
// Parameters:
//   - size: the largest allowed dimension in pixels, 0 for no cap
//
// Returns:
//   - MaterialBuilderOption: a function that applies the size cap to a material
func WithMaxTextureSize(size int) MaterialBuilderOption {
	return func(m *material) {
		m.maxTextureDim = size
	}
}

// WithSampler overrides the default sampler policy.
//
// Parameters:
//   - sampler: the sampler configuration for both textures
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sampler option to a material
func WithSampler(sampler common.SamplerStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.sampler = sampler
	}
}

// WithDecodeWorkers sets the worker count of the decode pool.
//
// Parameters:
//   - n: the number of workers, at least 1
//
// Returns:
//   - MaterialBuilderOption: a function that applies the worker count to a material
func WithDecodeWorkers(n int) MaterialBuilderOption {
	return func(m *material) {
		m.workers = max(1, n)
	}
}
