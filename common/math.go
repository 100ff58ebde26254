package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TwoPi is one full turn in radians, as float32.
const TwoPi = float32(2 * math.Pi)

// OpenGLToWGPU remaps OpenGL clip-space depth [-1, 1] to the WebGPU depth range [0, 1].
// Column-major: columns (1,0,0,0), (0,1,0,0), (0,0,0.5,0), (0,0,0.5,1).
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// PerspectiveWGPU creates a right-handed perspective projection for a [0, 1] depth target.
// The OpenGL-convention projection from mgl32 is composed with OpenGLToWGPU.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func PerspectiveWGPU(fovY, aspect, near, far float32) mgl32.Mat4 {
	return OpenGLToWGPU.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// LookTo creates a right-handed view matrix for an eye looking along dir.
//
// Parameters:
//   - eye: camera position in world space
//   - dir: view direction (need not be normalized)
//   - up: up vector defining camera orientation
//
// Returns:
//   - mgl32.Mat4: the view matrix
func LookTo(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, eye.Add(dir), up)
}

// ModelMatrix composes translation, non-uniform scale and rotation as M = T * S * R.
// The order is kept as-is; it differs from the more common T * R * S.
//
// Parameters:
//   - position: translation in world space
//   - rotation: unit quaternion orientation
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the model matrix
func ModelMatrix(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(s).Mul4(rotation.Mat4())
}

// WrapAngle wraps an angle in radians into [0, 2π).
//
// Parameters:
//   - a: the angle in radians
//
// Returns:
//   - float32: the equivalent angle in [0, 2π)
func WrapAngle(a float32) float32 {
	w := float32(math.Mod(float64(a), 2*math.Pi))
	if w < 0 {
		w += TwoPi
	}
	// float32 rounding can land a tiny negative remainder exactly on 2π
	if w >= TwoPi {
		w = 0
	}
	return w
}

// PutMat4 writes a column-major matrix into buf as 16 little-endian float32 values.
// buf must hold at least 64 bytes.
func PutMat4(buf []byte, m mgl32.Mat4) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(m[i]))
	}
}

// PutVec4 writes v into buf as 4 little-endian float32 values.
// buf must hold at least 16 bytes.
func PutVec4(buf []byte, v mgl32.Vec4) {
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
}
