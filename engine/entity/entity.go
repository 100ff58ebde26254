package entity

import (
	"github.com/Carmen-Shannon/flycam/common"
	"github.com/Carmen-Shannon/flycam/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type entity struct {
	id           uint64
	mdl          model.Model
	position     mgl32.Vec3
	rotation     mgl32.Quat
	scale        mgl32.Vec3
	pipelineKey  string
	followsLight bool
}

// Entity defines the interface for a drawable object placed in the world.
// An Entity owns a transform and references a Model; it holds no GPU handles.
// The scene derives a GPUInstanceData snapshot from it every frame.
type Entity interface {
	// ID returns the entity's identifier.
	//
	// Returns:
	//   - uint64: the entity ID
	ID() uint64

	// Model returns the Model drawn for this entity.
	//
	// Returns:
	//   - model.Model: the model
	Model() model.Model

	// Position returns the world-space translation.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the orientation as a unit quaternion.
	//
	// Returns:
	//   - mgl32.Quat: the rotation
	Rotation() mgl32.Quat

	// Scale returns the per-axis scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// PipelineKey returns the key of the render pass that draws this entity.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// FollowsLight reports whether the scene snaps this entity to the light position every update.
	//
	// Returns:
	//   - bool: true if the entity tracks the light
	FollowsLight() bool

	// SetPosition moves the entity.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// SetRotation sets the orientation. The quaternion is normalized before it is stored.
	//
	// Parameters:
	//   - q: the new rotation
	SetRotation(q mgl32.Quat)

	// SetScale sets the per-axis scale factors.
	//
	// Parameters:
	//   - s: the new scale
	SetScale(s mgl32.Vec3)

	// ModelMatrix returns T * S * R built from the current transform.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// NormalMatrix returns the rotation matrix only. Non-uniform scale is not compensated.
	//
	// Returns:
	//   - mgl32.Mat4: the normal matrix
	NormalMatrix() mgl32.Mat4

	// InstanceData returns the per-instance record for the current transform.
	//
	// Returns:
	//   - GPUInstanceData: the model and normal matrices
	InstanceData() GPUInstanceData
}

var _ Entity = &entity{}

// NewEntity creates an Entity at the origin with identity rotation and unit scale.
//
// Parameters:
//   - mdl: the model to draw
//   - options: a variadic list of EntityBuilderOption functions
//
// Returns:
//   - Entity: the new entity
func NewEntity(mdl model.Model, options ...EntityBuilderOption) Entity {
	e := &entity{
		mdl:      mdl,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *entity) ID() uint64 {
	return e.id
}

func (e *entity) Model() model.Model {
	return e.mdl
}

func (e *entity) Position() mgl32.Vec3 {
	return e.position
}

func (e *entity) Rotation() mgl32.Quat {
	return e.rotation
}

func (e *entity) Scale() mgl32.Vec3 {
	return e.scale
}

func (e *entity) PipelineKey() string {
	return e.pipelineKey
}

func (e *entity) FollowsLight() bool {
	return e.followsLight
}

func (e *entity) SetPosition(p mgl32.Vec3) {
	e.position = p
}

func (e *entity) SetRotation(q mgl32.Quat) {
	e.rotation = q.Normalize()
}

func (e *entity) SetScale(s mgl32.Vec3) {
	e.scale = s
}

func (e *entity) ModelMatrix() mgl32.Mat4 {
	return common.ModelMatrix(e.position, e.rotation, e.scale)
}

func (e *entity) NormalMatrix() mgl32.Mat4 {
	return e.rotation.Mat4()
}

func (e *entity) InstanceData() GPUInstanceData {
	return GPUInstanceData{
		Model:  e.ModelMatrix(),
		Normal: e.NormalMatrix(),
	}
}
