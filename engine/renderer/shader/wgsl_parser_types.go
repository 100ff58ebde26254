package shader

import "github.com/cogentcore/webgpu/wgpu"

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// wgslTypeLayout holds the byte size and alignment of a WGSL type in the uniform address space.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// parsedField is a single member of a WGSL struct.
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct is a WGSL struct block.
type parsedStruct struct {
	name   string
	fields []parsedField
}

// parsedParam is a single parameter of an entry point signature.
type parsedParam struct {
	name     string
	typeName string
}
