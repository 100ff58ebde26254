package shader

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithInclude registers an extra include for this shader, overriding a default of the same name.
//
// Parameters:
//   - name: the include name used inside @include(...)
//   - source: the WGSL text substituted for it
//
// Returns:
//   - ShaderBuilderOption: a function that registers the include
func WithInclude(name, source string) ShaderBuilderOption {
	return func(s *shader) {
		s.pp.Register(name, source)
	}
}

// WithPreProcessor replaces the default pre-processor.
//
// Parameters:
//   - pp: the pre-processor to expand includes with
//
// Returns:
//   - ShaderBuilderOption: a function that sets the pre-processor
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(s *shader) {
		s.pp = pp
	}
}
