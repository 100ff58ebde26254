package model

import (
	"encoding/binary"
	"errors"
)

// ErrZeroResolution is returned by GeneratePlane when asked for a plane with no grid cells.
var ErrZeroResolution = errors.New("plane resolution must be at least 1")

var white = [4]float32{1, 1, 1, 1}

// Mesh is an indexed triangle list. It is built once on the CPU and uploaded once.
type Mesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// IndexCount returns the number of indices in the mesh.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// VertexBytes serializes all vertices for upload to a vertex buffer.
//
// Returns:
//   - []byte: len(Vertices) * 56 bytes
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*GPUVertexSize)
	for i := range m.Vertices {
		m.Vertices[i].put(buf[i*GPUVertexSize:])
	}
	return buf
}

// IndexBytes serializes all indices as little-endian uint32 for upload to an index buffer.
//
// Returns:
//   - []byte: len(Indices) * 4 bytes
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// cubeFaces lists the four corners of each face followed by its outward normal.
// Corners are ordered so {0,1,2} and {2,3,0} wind counter-clockwise seen from outside.
var cubeFaces = [6]struct {
	corners [4][3]float32
	normal  [3]float32
}{
	{[4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}, [3]float32{0, 0, 1}},
	{[4][3]float32{{-1, 1, -1}, {1, 1, -1}, {1, -1, -1}, {-1, -1, -1}}, [3]float32{0, 0, -1}},
	{[4][3]float32{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}, [3]float32{1, 0, 0}},
	{[4][3]float32{{-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}}, [3]float32{-1, 0, 0}},
	{[4][3]float32{{1, 1, -1}, {-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}}, [3]float32{0, 1, 0}},
	{[4][3]float32{{1, -1, 1}, {-1, -1, 1}, {-1, -1, -1}, {1, -1, -1}}, [3]float32{0, -1, 0}},
}

var cubeUVs = [4][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// GenerateCube appends a 2x2x2 cube centered at the origin: 24 vertices and 36 indices.
// Calling it on a non-empty mesh appends a second cube with offset indices.
//
// Parameters:
//   - mesh: the mesh to append to
func GenerateCube(mesh *Mesh) {
	base := uint32(len(mesh.Vertices))
	for f, face := range cubeFaces {
		for c, p := range face.corners {
			mesh.Vertices = append(mesh.Vertices, GPUVertex{
				Position: [4]float32{p[0], p[1], p[2], 1},
				Color:    white,
				Normal:   [4]float32{face.normal[0], face.normal[1], face.normal[2], 1},
				TexCoord: cubeUVs[c],
			})
		}
		k := base + uint32(f)*4
		mesh.Indices = append(mesh.Indices, k, k+1, k+2, k+2, k+3, k)
	}
}

// GeneratePlane appends a resolution x resolution grid spanning the unit square in XY at Z = 0,
// facing +Z, with texture coordinates equal to the local XY position.
// It produces (resolution+1)^2 vertices and 6*resolution^2 indices.
//
// Parameters:
//   - mesh: the mesh to append to
//   - resolution: the number of grid cells along each side
//
// Returns:
//   - error: ErrZeroResolution if resolution is 0; the mesh is left untouched
func GeneratePlane(mesh *Mesh, resolution uint32) error {
	if resolution == 0 {
		return ErrZeroResolution
	}

	base := uint32(len(mesh.Vertices))
	r := float32(resolution)
	for x := uint32(0); x <= resolution; x++ {
		for y := uint32(0); y <= resolution; y++ {
			u, v := float32(x)/r, float32(y)/r
			mesh.Vertices = append(mesh.Vertices, GPUVertex{
				Position: [4]float32{u, v, 0, 1},
				Color:    white,
				Normal:   [4]float32{0, 0, 1, 1},
				TexCoord: [2]float32{u, v},
			})
		}
	}

	row := resolution + 1
	for x := uint32(0); x < resolution; x++ {
		for y := uint32(0); y < resolution; y++ {
			i0 := base + y*row + x
			i1 := i0 + 1
			i2 := base + (y+1)*row + x
			i3 := i2 + 1
			mesh.Indices = append(mesh.Indices, i0, i2, i1, i2, i3, i1)
		}
	}
	return nil
}
