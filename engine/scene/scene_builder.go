package scene

import (
	"github.com/Carmen-Shannon/flycam/engine/camera"
	"github.com/Carmen-Shannon/flycam/engine/entity"
	"github.com/Carmen-Shannon/flycam/engine/light"
	"github.com/Carmen-Shannon/flycam/engine/renderer/material"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera sets the scene camera. Defaults to camera.NewCamera().
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithController sets the controller that moves the camera. Defaults to camera.NewCameraController().
//
// Parameters:
//   - cc: the camera controller
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithController(cc camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = cc
	}
}

// WithLight sets the point light. Defaults to light.NewPointLight().
//
// Parameters:
//   - l: the light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(l light.PointLight) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}

// WithMaterial replaces the sand material bound by the lit pass.
//
// Parameters:
//   - m: the material, decoded during NewScene
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterial(m material.Material) SceneBuilderOption {
	return func(s *scene) {
		s.material = m
	}
}

// WithEntities replaces the default cube and plane. Entities are drawn in the given order and
// entity i owns instance record i.
//
// Parameters:
//   - entities: the entities to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEntities(entities ...entity.Entity) SceneBuilderOption {
	return func(s *scene) {
		s.entities = append([]entity.Entity{}, entities...)
	}
}

// WithPlaneResolution sets the cell count per side of the default ground plane.
// Ignored when WithEntities is used.
//
// Parameters:
//   - resolution: cells per side, must be at least 1
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPlaneResolution(resolution uint32) SceneBuilderOption {
	return func(s *scene) {
		s.planeResolution = resolution
	}
}

// WithClipPlanes sets the near and far planes used for the camera projection.
//
// Parameters:
//   - near: the near plane distance
//   - far: the far plane distance
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClipPlanes(near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.near = near
		s.far = far
	}
}
