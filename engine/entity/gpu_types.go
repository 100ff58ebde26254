package entity

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUInstanceDataSource is the canonical WGSL definition of the InstanceInput struct.
// Each mat4 is split into four vec4 columns because vertex attributes cannot be matrices.
//
//go:embed assets/instance_data.wgsl
var GPUInstanceDataSource string

// GPUInstanceDataSize is the byte stride of one record in the instance buffer.
const GPUInstanceDataSize = 128

// GPUInstanceData is the per-instance vertex stream record for one entity.
// Size: 128 bytes (two column-major mat4).
type GPUInstanceData struct {
	Model  mgl32.Mat4 // offset  0: model matrix T*S*R
	Normal mgl32.Mat4 // offset 64: rotation-only normal matrix
}

// Size returns the size of the GPUInstanceData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstanceData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the record into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUInstanceData) Marshal() []byte {
	buf := make([]byte, GPUInstanceDataSize)
	g.put(buf)
	return buf
}

func (g *GPUInstanceData) put(buf []byte) {
	common.PutMat4(buf, g.Model)
	common.PutMat4(buf[64:], g.Normal)
}

// MarshalInstances packs the instance records of entities, in order, into one contiguous buffer.
// Record i occupies bytes [128*i, 128*(i+1)).
//
// Parameters:
//   - entities: the entities to pack
//
// Returns:
//   - []byte: len(entities) * 128 bytes
func MarshalInstances(entities []Entity) []byte {
	buf := make([]byte, len(entities)*GPUInstanceDataSize)
	for i, e := range entities {
		inst := e.InstanceData()
		inst.put(buf[i*GPUInstanceDataSize:])
	}
	return buf
}
