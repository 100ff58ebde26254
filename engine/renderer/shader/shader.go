package shader

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNoVertexEntry is returned when a render shader has no @vertex function.
	ErrNoVertexEntry = errors.New("shader: no @vertex entry point")

	// ErrNoFragmentEntry is returned when a render shader has no @fragment function.
	ErrNoFragmentEntry = errors.New("shader: no @fragment entry point")
)

// shader is the implementation of the Shader interface.
// It holds the expanded source and everything reflected from it for pipeline creation.
type shader struct {
	key                        string
	source                     string
	vertexEntry                string
	fragmentEntry              string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader is a single WGSL module holding one @vertex and one @fragment entry point, together with
// the vertex buffer and bind group layouts reflected from its source.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL source after include expansion.
	//
	// Returns:
	//   - string: the expanded WGSL source
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// VertexLayouts returns one layout per vertex buffer slot, ordered by the vertex entry point's
	// parameters. Instance structs use the per-instance step mode.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts indexed by slot
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor retrieves the layout descriptor for one group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty one if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all reflected layout descriptors.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not declared
	BindGroupVarName(group, binding int) string

	// Module returns the descriptor used to compile this shader on a device.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor carrying the expanded WGSL
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader expands includes in source and reflects the entry points and layouts from the result.
//
// Parameters:
//   - key: a unique identifier for the shader, also used as the module label
//   - source: raw WGSL source, may contain @include(name) lines
//   - options: functional options applied before processing
//
// Returns:
//   - Shader: the parsed shader
//   - error: an include or entry point error
func NewShader(key, source string, options ...ShaderBuilderOption) (Shader, error) {
	s := &shader{
		key: key,
		pp:  NewPreProcessor(),
	}
	for _, opt := range options {
		opt(s)
	}

	expanded, err := s.pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", key, err)
	}
	s.source = expanded

	if err := s.reflect(); err != nil {
		return nil, fmt.Errorf("shader %q: %w", key, err)
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label:          key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: s.source},
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if bindings, ok := s.bindingVarNames[group]; ok {
		return bindings[binding]
	}
	return ""
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

// reflect fills entry points and layouts from the expanded source.
func (s *shader) reflect() error {
	clean := stripComments(s.source)

	entry, params := parseVertexEntry(clean)
	if entry == "" {
		return ErrNoVertexEntry
	}
	s.vertexEntry = entry

	s.fragmentEntry = parseFragmentEntry(clean)
	if s.fragmentEntry == "" {
		return ErrNoFragmentEntry
	}

	structs := parseStructBlocks(clean)
	s.vertexLayouts = parseVertexLayouts(structs, params)
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(clean, structs, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	return nil
}
