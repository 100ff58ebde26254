package shader

import (
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// uniformLayoutMap holds size and alignment of the WGSL types that can appear in a uniform struct.
var uniformLayoutMap = map[string]wgslTypeLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2f":       {8, 8},
	"vec3<f32>":   {12, 16},
	"vec3f":       {12, 16},
	"vec4<f32>":   {16, 16},
	"vec4f":       {16, 16},
	"vec4<u32>":   {16, 16},
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
	"mat4x4f":     {64, 16},
}

// roundUpAlign rounds value up to the next multiple of a power-of-two alignment.
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves a type name against the primitive table, then known structs, then
// fixed-size arrays of either.
//
// Parameters:
//   - typeName: the WGSL type, e.g. "vec4<f32>", "CameraUniform", "array<vec4<f32>, 4>"
//   - knownTypes: struct layouts resolved so far
//
// Returns:
//   - wgslTypeLayout: the resolved layout
//   - bool: false for unknown or runtime-sized types
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if layout, ok := uniformLayoutMap[typeName]; ok {
		return layout, true
	}
	if layout, ok := knownTypes[typeName]; ok {
		return layout, true
	}

	if strings.HasPrefix(typeName, "array<") && strings.HasSuffix(typeName, ">") {
		parts := splitAtTopLevelCommas(typeName[6 : len(typeName)-1])
		if len(parts) != 2 {
			return wgslTypeLayout{}, false
		}
		elem, ok := resolveTypeLayout(strings.TrimSpace(parts[0]), knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}
		count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return wgslTypeLayout{}, false
		}
		// uniform arrays use a 16 byte element stride
		stride := roundUpAlign(16, roundUpAlign(elem.align, elem.size))
		return wgslTypeLayout{count * stride, max(elem.align, 16)}, true
	}

	return wgslTypeLayout{}, false
}

// computeStructLayout lays out the members of one struct in order, skipping builtins.
func computeStructLayout(ps parsedStruct, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	var offset uint64
	maxAlign := uint64(1)

	for _, field := range ps.fields {
		if field.isBuiltin {
			continue
		}
		fl, ok := resolveTypeLayout(field.typeName, knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}
		offset = roundUpAlign(fl.align, offset) + fl.size
		maxAlign = max(maxAlign, fl.align)
	}

	return wgslTypeLayout{roundUpAlign(maxAlign, offset), maxAlign}, true
}

// computeStructSizes resolves every struct layout, repeating passes until structs that embed other
// structs settle. Structs that never resolve are left out of the result.
func computeStructSizes(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	remaining := append([]parsedStruct(nil), structs...)

	for len(remaining) > 0 {
		next := remaining[:0]
		for _, ps := range remaining {
			if layout, ok := computeStructLayout(ps, resolved); ok {
				resolved[ps.name] = layout
			} else {
				next = append(next, ps)
			}
		}
		if len(next) == len(remaining) {
			break
		}
		remaining = next
	}

	return resolved
}

// classifyResource builds the layout entry for one @group/@binding declaration.
//
// Parameters:
//   - binding: the @binding index
//   - visibility: the stages the entry is visible to
//   - addressSpace: the var<...> qualifier, empty for textures and samplers
//   - typeName: the declared WGSL type
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated entry
func classifyResource(binding uint32, visibility wgpu.ShaderStage, addressSpace, typeName string) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
	}

	switch {
	case addressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(addressSpace, "storage"):
		if strings.Contains(addressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		} else {
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		}
	case typeName == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case typeName == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(typeName, "texture_depth_"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		entry.Texture.ViewDimension = wgslTextureDimMap[typeName]
	case strings.HasPrefix(typeName, "texture_"):
		base, param := splitTypeParams(typeName)
		entry.Texture.ViewDimension = wgslTextureDimMap[base]
		entry.Texture.SampleType = wgslSampleTypeMap[param]
	}

	return entry
}

// splitTypeParams splits "texture_2d<f32>" into ("texture_2d", "f32").
func splitTypeParams(typeName string) (string, string) {
	base, params, ok := strings.Cut(typeName, "<")
	if !ok {
		return typeName, ""
	}
	return base, strings.TrimSpace(strings.TrimSuffix(params, ">"))
}

// stripComments removes nested block comments and line comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// isVertexInputStruct reports whether every member carries @location and none is a builtin,
// which separates vertex inputs from vertex outputs.
func isVertexInputStruct(ps parsedStruct) bool {
	if len(ps.fields) == 0 {
		return false
	}
	for _, f := range ps.fields {
		if f.isBuiltin || f.location < 0 {
			return false
		}
	}
	return true
}

// buildVertexBufferLayout packs the struct members tightly in declaration order.
//
// Parameters:
//   - ps: a vertex input struct
//
// Returns:
//   - wgpu.VertexBufferLayout: per-vertex layout with the packed stride
//   - bool: false if a member type has no vertex format
func buildVertexBufferLayout(ps parsedStruct) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
	var offset uint64

	for _, f := range ps.fields {
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}

// splitAtTopLevelCommas splits on commas outside angle brackets, so array<T, N> stays whole.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
