package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertex layout exactly (56 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertexSize is the byte stride of one vertex in the vertex buffer.
const GPUVertexSize = 56

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 56 bytes (no padding).
type GPUVertex struct {
	Position [4]float32 // offset  0: homogeneous model-space position (16 bytes)
	Color    [4]float32 // offset 16: per-vertex RGBA color (16 bytes)
	Normal   [4]float32 // offset 32: surface normal, w = 1 (16 bytes)
	TexCoord [2]float32 // offset 48: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 56-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexSize)
	g.put(buf)
	return buf
}

func (g *GPUVertex) put(buf []byte) {
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(g.Normal[i]))
	}
	binary.LittleEndian.PutUint32(buf[48:], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[52:], math.Float32bits(g.TexCoord[1]))
}
