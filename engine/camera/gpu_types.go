package camera

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (144 bytes, uniform aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the byte size of the camera uniform block.
const GPUCameraUniformSize = 144

// GPUCameraUniform is the GPU-aligned representation of the camera uniform.
// Size: 144 bytes (two column-major mat4 and a vec4).
type GPUCameraUniform struct {
	View       mgl32.Mat4 // offset   0: world to view
	Projection mgl32.Mat4 // offset  64: view to clip, depth in [0, 1]
	Position   mgl32.Vec4 // offset 128: eye position, w = 1
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, GPUCameraUniformSize)
	common.PutMat4(buf, g.View)
	common.PutMat4(buf[64:], g.Projection)
	common.PutVec4(buf[128:], g.Position)
	return buf
}
