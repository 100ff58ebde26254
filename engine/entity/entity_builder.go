package entity

import "github.com/go-gl/mathgl/mgl32"

// EntityBuilderOption is a functional option for configuring an Entity during construction.
type EntityBuilderOption func(*entity)

// WithID sets the ID of the Entity.
//
// Parameters:
//   - id: the identifier
//
// Returns:
//   - EntityBuilderOption: functional option to set the ID
func WithID(id uint64) EntityBuilderOption {
	return func(e *entity) {
		e.id = id
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - EntityBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) EntityBuilderOption {
	return func(e *entity) {
		e.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial rotation from an axis and an angle.
//
// Parameters:
//   - angle: rotation in radians
//   - axis: rotation axis (normalized internally)
//
// Returns:
//   - EntityBuilderOption: functional option to set the rotation
func WithRotation(angle float32, axis mgl32.Vec3) EntityBuilderOption {
	return func(e *entity) {
		e.rotation = mgl32.QuatRotate(angle, axis.Normalize())
	}
}

// WithUniformScale sets the same scale factor on all three axes.
//
// Parameters:
//   - s: the scale factor
//
// Returns:
//   - EntityBuilderOption: functional option to set the scale
func WithUniformScale(s float32) EntityBuilderOption {
	return func(e *entity) {
		e.scale = mgl32.Vec3{s, s, s}
	}
}

// WithScale sets per-axis scale factors.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - EntityBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) EntityBuilderOption {
	return func(e *entity) {
		e.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithPipelineKey assigns the render pass that draws this entity.
//
// Parameters:
//   - key: the pipeline key registered with the scene
//
// Returns:
//   - EntityBuilderOption: functional option to set the pipeline key
func WithPipelineKey(key string) EntityBuilderOption {
	return func(e *entity) {
		e.pipelineKey = key
	}
}

// WithFollowLight makes the scene copy the light position onto this entity every update.
//
// Parameters:
//   - follow: true to track the light
//
// Returns:
//   - EntityBuilderOption: functional option to set light following
func WithFollowLight(follow bool) EntityBuilderOption {
	return func(e *entity) {
		e.followsLight = follow
	}
}
