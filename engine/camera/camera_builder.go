package camera

import (
	"github.com/Carmen-Shannon/flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBuilderOption is a functional option for configuring a Camera via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the initial eye position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithOrientation sets the initial yaw and pitch in radians. Yaw is wrapped into [0, 2π) and
// pitch is clamped the same way SetOrientation does.
//
// Parameters:
//   - yaw: horizontal angle in radians
//   - pitch: vertical angle in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera orientation
func WithOrientation(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = common.WrapAngle(yaw)
		c.pitch = mgl32.Clamp(pitch, -SafeHalfPi, SafeHalfPi)
	}
}

// WithWorldUp sets the world up vector used to derive the camera basis.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the world up vector
func WithWorldUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.worldUp = mgl32.Vec3{x, y, z}.Normalize()
	}
}

// WithFovY sets the vertical field of view in radians.
//
// Parameters:
//   - fovY: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFovY(fovY float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovY = fovY
	}
}
