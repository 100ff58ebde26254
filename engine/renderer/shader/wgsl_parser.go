package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// wgslVertexFormatMap maps WGSL type names to their corresponding wgpu vertex format and byte size
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec2<u32>": {wgpu.VertexFormatUint32x2, 8},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
	"vec2<i32>": {wgpu.VertexFormatSint32x2, 8},
	"vec4<i32>": {wgpu.VertexFormatSint32x4, 16},
}

// wgslTextureDimMap maps sampled texture base names to their view dimension
var wgslTextureDimMap = map[string]wgpu.TextureViewDimension{
	"texture_2d":       wgpu.TextureViewDimension2D,
	"texture_2d_array": wgpu.TextureViewDimension2DArray,
	"texture_3d":       wgpu.TextureViewDimension3D,
	"texture_cube":     wgpu.TextureViewDimensionCube,
	"texture_depth_2d": wgpu.TextureViewDimension2D,
}

// wgslSampleTypeMap maps WGSL scalar type parameters to their wgpu texture sample type
var wgslSampleTypeMap = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct member: optional attributes, name, colon, type
	fieldRegex = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex captures the name and parameter list of the @vertex function
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\s+fn\s+(\w+)\s*\(([^)]*)\)`)

	// fragmentEntryRegex captures the name of the @fragment function
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\s+fn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name and type
	// from declarations like: @group(0) @binding(0) var<uniform> camera: CameraUniform;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseVertexEntry returns the @vertex entry point name and its parameters in declaration order.
//
// Parameters:
//   - source: WGSL source with comments stripped
//
// Returns:
//   - string: the entry point name, empty when absent
//   - []parsedParam: the parameters in order
func parseVertexEntry(source string) (string, []parsedParam) {
	m := vertexEntryRegex.FindStringSubmatch(source)
	if m == nil {
		return "", nil
	}
	var params []parsedParam
	for _, raw := range splitAtTopLevelCommas(m[2]) {
		fm := fieldRegex.FindStringSubmatch(strings.TrimSpace(raw))
		if fm == nil {
			continue
		}
		params = append(params, parsedParam{name: fm[1], typeName: strings.TrimSpace(fm[2])})
	}
	return m[1], params
}

// parseFragmentEntry returns the @fragment entry point name, or empty when absent.
func parseFragmentEntry(source string) string {
	if m := fragmentEntryRegex.FindStringSubmatch(source); m != nil {
		return m[1]
	}
	return ""
}

// parseVertexLayouts builds one vertex buffer layout per struct-typed parameter of the vertex entry
// point, in parameter order, so parameter i is fed from vertex buffer slot i. Structs whose name
// contains "Instance" advance per instance; all others advance per vertex. Parameters that are not
// pure @location structs (builtins, scalars) do not occupy a slot.
//
// Parameters:
//   - structs: all structs parsed from the source
//   - params: the vertex entry point parameters
//
// Returns:
//   - []wgpu.VertexBufferLayout: layouts indexed by buffer slot
func parseVertexLayouts(structs []parsedStruct, params []parsedParam) []wgpu.VertexBufferLayout {
	byName := make(map[string]parsedStruct, len(structs))
	for _, ps := range structs {
		byName[ps.name] = ps
	}

	var layouts []wgpu.VertexBufferLayout
	for _, p := range params {
		ps, ok := byName[p.typeName]
		if !ok || !isVertexInputStruct(ps) {
			continue
		}
		layout, ok := buildVertexBufferLayout(ps)
		if !ok {
			continue
		}
		if strings.Contains(ps.name, "Instance") {
			layout.StepMode = wgpu.VertexStepModeInstance
		}
		layouts = append(layouts, layout)
	}
	return layouts
}

// parseBindGroupLayouts extracts every @group(N) @binding(M) declaration and returns the layout
// descriptors keyed by group, entries sorted by binding. Uniform buffers get MinBindingSize from
// the bound struct's layout so the renderer can size the buffers without extra input.
//
// Parameters:
//   - source: WGSL source with comments stripped
//   - structs: all structs parsed from the source
//   - visibility: the shader stages every entry is visible to
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: layout descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding
func parseBindGroupLayouts(source string, structs []parsedStruct, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string) {
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	varNames := make(map[int]map[int]string)
	structSizes := computeStructSizes(structs)

	for _, m := range bindGroupDeclRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		addressSpace := strings.TrimSpace(m[3])
		typeName := strings.TrimSpace(m[5])

		entry := classifyResource(uint32(binding), visibility, addressSpace, typeName)
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if layout, ok := resolveTypeLayout(typeName, structSizes); ok {
				entry.Buffer.MinBindingSize = layout.size
			}
		}
		groups[group] = append(groups[group], entry)

		if varNames[group] == nil {
			varNames[group] = make(map[int]string)
		}
		varNames[group][binding] = strings.TrimSpace(m[4])
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
	}
	return result, varNames
}

// parseStructBlocks finds all struct blocks in the source and parses their members.
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))
	for _, m := range matches {
		structs = append(structs, parsedStruct{
			name:   m[1],
			fields: parseStructFields(m[2]),
		})
	}
	return structs
}

// parseStructFields splits a struct body into members, recording @location and @builtin attributes.
func parseStructFields(body string) []parsedField {
	parts := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fm := fieldRegex.FindStringSubmatch(part)
		if fm == nil {
			continue
		}

		field := parsedField{
			name:      fm[1],
			typeName:  strings.TrimSpace(fm[2]),
			location:  -1,
			isBuiltin: builtinRegex.MatchString(part),
		}
		if lm := locationRegex.FindStringSubmatch(part); lm != nil {
			if loc, err := strconv.Atoi(lm[1]); err == nil {
				field.location = loc
			}
		}
		fields = append(fields, field)
	}
	return fields
}
