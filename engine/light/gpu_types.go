package light

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUPointLightSource is the canonical WGSL definition of the PointLight struct.
// Matches GPUPointLight layout exactly (32 bytes, uniform aligned).
//
//go:embed assets/point_light.wgsl
var GPUPointLightSource string

// GPUPointLightSize is the byte size of the point light uniform block.
const GPUPointLightSize = 32

// GPUPointLight is the GPU-aligned representation of the point light uniform.
// Size: 32 bytes.
type GPUPointLight struct {
	Position     mgl32.Vec4 // offset  0: homogeneous world-space position
	DiffuseColor mgl32.Vec4 // offset 16: RGB color, w = 1
}

// Size returns the size of the GPUPointLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUPointLight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPointLight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUPointLight) Marshal() []byte {
	buf := make([]byte, GPUPointLightSize)
	common.PutVec4(buf, g.Position)
	common.PutVec4(buf[16:], g.DiffuseColor)
	return buf
}
