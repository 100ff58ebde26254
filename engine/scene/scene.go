package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/flycam/engine/camera"
	"github.com/Carmen-Shannon/flycam/engine/entity"
	"github.com/Carmen-Shannon/flycam/engine/light"
	"github.com/Carmen-Shannon/flycam/engine/model"
	"github.com/Carmen-Shannon/flycam/engine/renderer"
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/flycam/engine/renderer/material"
	"github.com/Carmen-Shannon/flycam/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/flycam/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Pipeline keys of the two passes every scene registers.
const (
	CubePipelineKey = "cube"
	LitPipelineKey  = "lit"
)

// DefaultPlaneResolution is the number of cells per side of the default ground plane.
const DefaultPlaneResolution = 1024

var (
	//go:embed assets/cube.wgsl
	cubeShaderSource string

	//go:embed assets/lit.wgsl
	litShaderSource string
)

// ErrNoPassForPipeline is returned by Render when an entity names a pipeline key with no pass.
var ErrNoPassForPipeline = errors.New("scene: no pass registered for pipeline")

// pass is a registered pipeline plus the bind groups bound, in group order, before drawing with it.
type pass struct {
	pipelineKey string
	bindGroups  []bind_group_provider.BindGroupProvider
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	r          renderer.Renderer
	cam        camera.Camera
	controller camera.CameraController
	light      light.PointLight
	material   material.Material
	entities   []entity.Entity
	passes     map[string]pass

	cameraProvider   bind_group_provider.BindGroupProvider
	lightProvider    bind_group_provider.BindGroupProvider
	instanceProvider bind_group_provider.BindGroupProvider

	near            float32
	far             float32
	planeResolution uint32
}

// Scene owns the per-frame state of the demo: the fly camera and its controller, the orbiting
// point light, the ordered entity list and the pass table keyed by pipeline key. It talks to the
// GPU only through a renderer.Renderer, so update and draw sequencing run against any backend.
type Scene interface {
	// Renderer returns the renderer the scene draws with.
	Renderer() renderer.Renderer

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the controller that moves the camera.
	Controller() camera.CameraController

	// Light returns the scene's point light.
	Light() light.PointLight

	// Material returns the material bound by the lit pass.
	Material() material.Material

	// Entities returns the entities in draw order. Entity i owns instance record i.
	//
	// Returns:
	//   - []entity.Entity: a copy of the entity list
	Entities() []entity.Entity

	// PipelineKeys returns the keys of the registered passes in sorted order.
	//
	// Returns:
	//   - []string: the pass keys
	PipelineKeys() []string

	// Update advances the scene by one frame and uploads the resulting uniforms. The light moves
	// first, then light-following entities snap to it, then every instance record is rewritten,
	// then the controller moves the camera and the camera uniform is uploaded with the current
	// surface aspect ratio.
	//
	// Parameters:
	//   - dt: seconds since the previous update
	//   - elapsed: seconds since the loop started
	Update(dt, elapsed float64)

	// Render draws one frame. It is a no-op before the renderer is configured. A lost or
	// outdated surface is returned as renderer.ErrSurfaceLost so the caller can resize; any other
	// acquisition error is logged and the frame is dropped.
	//
	// Returns:
	//   - error: renderer.ErrSurfaceLost, an ErrNoPassForPipeline wrap, or nil
	Render() error

	// HandleKey forwards a key transition to the camera controller.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	//   - pressed: true on press, false on release
	//
	// Returns:
	//   - bool: true if the controller consumed the key
	HandleKey(keyCode int, pressed bool) bool

	// HandleMouseMotion forwards a relative mouse movement to the camera controller.
	//
	// Parameters:
	//   - dx: horizontal movement in pixels
	//   - dy: vertical movement in pixels
	HandleMouseMotion(dx, dy float64)

	// Release frees the scene's GPU resources. The renderer itself is not released.
	Release()
}

var _ Scene = &scene{}

// NewScene builds the demo scene on r: it compiles the cube and lit shaders, registers both
// pipelines, decodes and uploads the material, uploads every mesh, allocates one instance record
// per entity and writes the initial light, instance and camera data.
//
// Without WithEntities the scene holds two entities: a 0.01 scaled cube that follows the light on
// the cube pipeline, and a plane rotated -90° about X and scaled by 2 on the lit pipeline.
//
// Parameters:
//   - r: the renderer to draw with
//   - options: a variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the initialized scene
//   - error: an error if any shader, pipeline, asset or buffer could not be created
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if r == nil {
		return nil, errors.New("scene: nil renderer")
	}

	s := &scene{
		mu:              &sync.Mutex{},
		r:               r,
		near:            0.1,
		far:             100,
		planeResolution: DefaultPlaneResolution,
	}
	for _, opt := range options {
		opt(s)
	}

	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.controller == nil {
		s.controller = camera.NewCameraController()
	}
	if s.light == nil {
		s.light = light.NewPointLight()
	}
	if s.material == nil {
		s.material = material.NewMaterial(
			material.WithName("sand"),
			material.WithDiffuseTexture(material.SandDiffuse),
			material.WithNormalTexture(material.SandNormal),
		)
	}
	if s.entities == nil {
		ents, err := defaultEntities(s.planeResolution)
		if err != nil {
			return nil, err
		}
		s.entities = ents
	}

	if err := s.init(); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// defaultEntities returns the light marker cube and the textured ground plane.
func defaultEntities(resolution uint32) ([]entity.Entity, error) {
	plane, err := model.NewPlane("plane", resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to build ground plane: %w", err)
	}
	cube := entity.NewEntity(model.NewCube("cube"),
		entity.WithID(0),
		entity.WithUniformScale(0.01),
		entity.WithPipelineKey(CubePipelineKey),
		entity.WithFollowLight(true),
	)
	ground := entity.NewEntity(plane,
		entity.WithID(1),
		entity.WithRotation(mgl32.DegToRad(-90), mgl32.Vec3{1, 0, 0}),
		entity.WithUniformScale(2),
		entity.WithPipelineKey(LitPipelineKey),
	)
	return []entity.Entity{cube, ground}, nil
}

func (s *scene) init() error {
	cubeShader, err := shader.NewShader(CubePipelineKey, cubeShaderSource)
	if err != nil {
		return fmt.Errorf("failed to build cube shader: %w", err)
	}
	litShader, err := shader.NewShader(LitPipelineKey, litShaderSource)
	if err != nil {
		return fmt.Errorf("failed to build lit shader: %w", err)
	}

	if err := s.r.RegisterPipelines(
		pipeline.NewPipeline(CubePipelineKey, cubeShader),
		pipeline.NewPipeline(LitPipelineKey, litShader),
	); err != nil {
		return fmt.Errorf("failed to register pipelines: %w", err)
	}

	s.cameraProvider = bind_group_provider.NewBindGroupProvider("Camera")
	if err := s.r.InitBindGroup(s.cameraProvider, litShader.BindGroupLayoutDescriptor(0)); err != nil {
		return fmt.Errorf("failed to create camera bind group: %w", err)
	}
	s.lightProvider = bind_group_provider.NewBindGroupProvider("Light")
	if err := s.r.InitBindGroup(s.lightProvider, litShader.BindGroupLayoutDescriptor(1)); err != nil {
		return fmt.Errorf("failed to create light bind group: %w", err)
	}

	if err := s.material.Decode(); err != nil {
		return fmt.Errorf("failed to decode material %q: %w", s.material.Name(), err)
	}
	if err := s.material.Init(s.r, litShader.BindGroupLayoutDescriptor(2)); err != nil {
		return fmt.Errorf("failed to upload material %q: %w", s.material.Name(), err)
	}

	uploaded := make(map[bind_group_provider.BindGroupProvider]bool)
	for _, e := range s.entities {
		mdl := e.Model()
		if uploaded[mdl.MeshProvider()] {
			continue
		}
		if err := s.r.InitMeshBuffers(mdl.MeshProvider(), mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
			return fmt.Errorf("failed to upload mesh %q: %w", mdl.Name(), err)
		}
		uploaded[mdl.MeshProvider()] = true
	}

	s.instanceProvider = bind_group_provider.NewBindGroupProvider("Instances",
		bind_group_provider.WithInstanceStride(entity.GPUInstanceDataSize))
	if err := s.r.InitInstanceBuffer(s.instanceProvider, len(s.entities), entity.GPUInstanceDataSize); err != nil {
		return fmt.Errorf("failed to create instance buffer: %w", err)
	}

	s.passes = map[string]pass{
		CubePipelineKey: {
			pipelineKey: CubePipelineKey,
			bindGroups:  []bind_group_provider.BindGroupProvider{s.cameraProvider},
		},
		LitPipelineKey: {
			pipelineKey: LitPipelineKey,
			bindGroups: []bind_group_provider.BindGroupProvider{
				s.cameraProvider,
				s.lightProvider,
				s.material.BindGroupProvider(),
			},
		},
	}

	lu := s.light.Uniform()
	cu := s.cam.Uniform(s.r.AspectRatio(), s.near, s.far)
	s.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.lightProvider, Binding: 0, Data: lu.Marshal()},
		{Provider: s.instanceProvider, Binding: bind_group_provider.InstanceBinding, Data: entity.MarshalInstances(s.entities)},
		{Provider: s.cameraProvider, Binding: 0, Data: cu.Marshal()},
	})
	return nil
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Controller() camera.CameraController {
	return s.controller
}

func (s *scene) Light() light.PointLight {
	return s.light
}

func (s *scene) Material() material.Material {
	return s.material
}

func (s *scene) Entities() []entity.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entities)
}

func (s *scene) PipelineKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.passes))
	for k := range s.passes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *scene) Update(dt, elapsed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.light.Animate(elapsed)
	lu := s.light.Uniform()
	writes := []bind_group_provider.BufferWrite{
		{Provider: s.lightProvider, Binding: 0, Data: lu.Marshal()},
	}

	lightPos := s.light.Position().Vec3()
	for _, e := range s.entities {
		if e.FollowsLight() {
			e.SetPosition(lightPos)
		}
	}
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: s.instanceProvider,
		Binding:  bind_group_provider.InstanceBinding,
		Data:     entity.MarshalInstances(s.entities),
	})

	s.controller.UpdateCamera(s.cam, float32(dt))
	cu := s.cam.Uniform(s.r.AspectRatio(), s.near, s.far)
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: s.cameraProvider,
		Binding:  0,
		Data:     cu.Marshal(),
	})

	s.r.WriteBuffers(writes)
}

func (s *scene) Render() error {
	if !s.r.Configured() {
		return nil
	}

	if err := s.r.BeginFrame(); err != nil {
		if errors.Is(err, renderer.ErrSurfaceLost) {
			return err
		}
		log.Printf("[Scene] dropping frame: %v", err)
		return nil
	}

	s.mu.Lock()
	drawErr := s.drawEntities()
	s.mu.Unlock()

	if err := s.r.EndFrame(); err != nil {
		log.Printf("[Scene] failed to submit frame: %v", err)
	}
	s.r.Present()
	return drawErr
}

// drawEntities issues one draw per entity in list order. Entity i draws instance record i.
func (s *scene) drawEntities() error {
	for i, e := range s.entities {
		p, ok := s.passes[e.PipelineKey()]
		if !ok {
			return fmt.Errorf("entity %d: %w %q", e.ID(), ErrNoPassForPipeline, e.PipelineKey())
		}
		if err := s.r.DrawCall(p.pipelineKey, e.Model().MeshProvider(), s.instanceProvider, i, p.bindGroups); err != nil {
			return fmt.Errorf("entity %d: %w", e.ID(), err)
		}
	}
	return nil
}

func (s *scene) HandleKey(keyCode int, pressed bool) bool {
	return s.controller.HandleKeyboard(keyCode, pressed)
}

func (s *scene) HandleMouseMotion(dx, dy float64) {
	s.controller.HandleMouseMotion(dx, dy)
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entities {
		e.Model().MeshProvider().Release()
	}
	for _, p := range []bind_group_provider.BindGroupProvider{s.cameraProvider, s.lightProvider, s.instanceProvider} {
		if p != nil {
			p.Release()
		}
	}
	if s.material != nil {
		s.material.Release()
	}
	s.passes = nil
}
