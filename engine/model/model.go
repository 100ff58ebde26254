package model

import (
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name         string
	mesh         *Mesh
	meshProvider bind_group_provider.BindGroupProvider
}

// Model defines the interface for a drawable mesh.
// A Model pairs the CPU-side Mesh with the BindGroupProvider that holds its GPU vertex and index buffers
// once the renderer has uploaded them.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the CPU-side geometry.
	//
	// Returns:
	//   - *Mesh: the mesh, never nil
	Mesh() *Mesh

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the serialized vertex buffer contents.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the serialized index buffer contents.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices drawn for this model.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

var _ Model = &model{}

// NewModel creates a new Model. Without WithMesh the model starts with an empty mesh.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the new Model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mesh: &Mesh{},
	}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(
			m.name+" Mesh",
			bind_group_provider.WithIndexCount(m.mesh.IndexCount()),
		)
	}
	return m
}

// NewCube creates a Model holding a single cube.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - Model: the cube model
func NewCube(name string) Model {
	mesh := &Mesh{}
	GenerateCube(mesh)
	return NewModel(WithName(name), WithMesh(mesh))
}

// NewPlane creates a Model holding a subdivided unit plane.
//
// Parameters:
//   - name: the model identifier
//   - resolution: grid cells along each side
//
// Returns:
//   - Model: the plane model
//   - error: ErrZeroResolution if resolution is 0
func NewPlane(name string, resolution uint32) (Model, error) {
	mesh := &Mesh{}
	if err := GeneratePlane(mesh, resolution); err != nil {
		return nil, err
	}
	return NewModel(WithName(name), WithMesh(mesh)), nil
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() *Mesh {
	return m.mesh
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.mesh.VertexBytes()
}

func (m *model) IndexData() []byte {
	return m.mesh.IndexBytes()
}

func (m *model) IndexCount() int {
	return m.mesh.IndexCount()
}
