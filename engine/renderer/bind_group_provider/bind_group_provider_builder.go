package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithIndexCount presets the index count before mesh buffers are uploaded.
//
// Parameters:
//   - count: the number of indices
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index count
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}

// WithInstanceStride presets the instance record size for an instance buffer provider.
//
// Parameters:
//   - stride: the byte size of one instance record
//
// Returns:
//   - BindGroupProviderOption: a function that sets the instance stride
func WithInstanceStride(stride uint64) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.instanceStride = stride
	}
}
