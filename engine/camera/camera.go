package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// SafeHalfPi is the largest pitch magnitude the camera accepts. Staying just short of π/2 keeps
// front × worldUp from degenerating.
const SafeHalfPi = float32(math.Pi/2 - 1e-4)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	yaw      float32
	pitch    float32

	front   mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3
	worldUp mgl32.Vec3

	fovY float32
}

// Camera defines the interface for a first-person camera.
// The camera stores a position and a yaw/pitch orientation and derives an orthonormal
// front/right/up basis from them. It holds no GPU resources; the scene uploads Uniform()
// into the camera bind group each frame.
type Camera interface {
	// Position returns the eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Yaw returns the horizontal angle in radians. Zero looks along +X, growing toward +Z.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the vertical angle in radians, strictly inside (-π/2, π/2).
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// Front returns the unit view direction.
	//
	// Returns:
	//   - mgl32.Vec3: the front vector
	Front() mgl32.Vec3

	// Right returns the unit right vector, front × worldUp.
	//
	// Returns:
	//   - mgl32.Vec3: the right vector
	Right() mgl32.Vec3

	// Up returns the unit camera up vector, right × front.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// FovY returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: the field of view
	FovY() float32

	// SetPosition moves the eye.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// SetOrientation sets yaw and pitch and rebuilds the basis.
	// Yaw is wrapped into [0, 2π); pitch is clamped to ±SafeHalfPi.
	//
	// Parameters:
	//   - yaw: horizontal angle in radians
	//   - pitch: vertical angle in radians
	SetOrientation(yaw, pitch float32)

	// ViewMatrix returns the right-handed view matrix looking along Front from Position.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns a perspective projection remapped to the [0, 1] depth range.
	//
	// Parameters:
	//   - aspect: viewport width / height
	//   - near: near clipping plane distance
	//   - far: far clipping plane distance
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix(aspect, near, far float32) mgl32.Mat4

	// Uniform returns the GPU uniform block for the current state.
	//
	// Parameters:
	//   - aspect: viewport width / height
	//   - near: near clipping plane distance
	//   - far: far clipping plane distance
	//
	// Returns:
	//   - GPUCameraUniform: the uniform data
	Uniform(aspect, near, far float32) GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the origin looking down -Z (yaw -90°, pitch 0) with +Y up
// and a 90° vertical field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:      &sync.Mutex{},
		yaw:     common.WrapAngle(mgl32.DegToRad(-90)),
		worldUp: mgl32.Vec3{0, 1, 0},
		fovY:    mgl32.DegToRad(90),
	}
	for _, option := range options {
		option(c)
	}
	c.updateBasis()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) FovY() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fovY
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
}

func (c *cameraImpl) SetOrientation(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = common.WrapAngle(yaw)
	c.pitch = mgl32.Clamp(pitch, -SafeHalfPi, SafeHalfPi)
	c.updateBasis()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.LookTo(c.position, c.front, c.up)
}

func (c *cameraImpl) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.PerspectiveWGPU(c.fovY, aspect, near, far)
}

func (c *cameraImpl) Uniform(aspect, near, far float32) GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		View:       common.LookTo(c.position, c.front, c.up),
		Projection: common.PerspectiveWGPU(c.fovY, aspect, near, far),
		Position:   c.position.Vec4(1),
	}
}

// updateBasis recomputes front, right and up from yaw and pitch. Caller must hold the mutex.
func (c *cameraImpl) updateBasis() {
	sy, cy := math.Sincos(float64(c.yaw))
	sp, cp := math.Sincos(float64(c.pitch))
	c.front = mgl32.Vec3{float32(cy * cp), float32(sp), float32(sy * cp)}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
