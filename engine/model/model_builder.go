package model

import "github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh is an option builder that sets the CPU-side geometry of the Model.
// A nil mesh is ignored.
//
// Parameters:
//   - mesh: the mesh to use
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh *Mesh) ModelBuilderOption {
	return func(m *model) {
		if mesh != nil {
			m.mesh = mesh
		}
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider used to hold GPU mesh buffers.
//
// Parameters:
//   - provider: the provider to use
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
