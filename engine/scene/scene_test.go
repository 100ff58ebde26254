package scene

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/flycam/common"
	"github.com/Carmen-Shannon/flycam/engine/entity"
	"github.com/Carmen-Shannon/flycam/engine/model"
	"github.com/Carmen-Shannon/flycam/engine/renderer"
	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/flycam/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

func newTestScene(t *testing.T, options ...SceneBuilderOption) (Scene, renderer.Renderer, *renderer.HeadlessBackend) {
	t.Helper()
	hb := renderer.NewHeadlessBackend()
	r, err := renderer.NewRenderer(nil, renderer.WithBackend(hb))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	s, err := NewScene(r, append([]SceneBuilderOption{WithPlaneResolution(4)}, options...)...)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s, r, hb
}

func floatAt(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
}

func near[T mgl32.Vec3 | mgl32.Vec4](a, b T) bool {
	for i := 0; i < len(a); i++ {
		if d := a[i] - b[i]; d > 1e-4 || d < -1e-4 {
			return false
		}
	}
	return true
}

func TestNewSceneDefaults(t *testing.T) {
	s, _, hb := newTestScene(t)

	if got := hb.Pipelines(); len(got) != 2 || got[0] != CubePipelineKey || got[1] != LitPipelineKey {
		t.Fatalf("registered pipelines = %v", got)
	}
	if got := s.PipelineKeys(); len(got) != 2 || got[0] != CubePipelineKey || got[1] != LitPipelineKey {
		t.Fatalf("PipelineKeys() = %v", got)
	}

	ents := s.Entities()
	if len(ents) != 2 {
		t.Fatalf("len(Entities()) = %d, want 2", len(ents))
	}
	cube, plane := ents[0], ents[1]
	if cube.PipelineKey() != CubePipelineKey || !cube.FollowsLight() || cube.Scale() != (mgl32.Vec3{0.01, 0.01, 0.01}) {
		t.Errorf("cube entity = key %q follows %v scale %v", cube.PipelineKey(), cube.FollowsLight(), cube.Scale())
	}
	if plane.PipelineKey() != LitPipelineKey || plane.FollowsLight() || plane.Scale() != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("plane entity = key %q follows %v scale %v", plane.PipelineKey(), plane.FollowsLight(), plane.Scale())
	}
	if got := plane.Model().IndexCount(); got != 6*4*4 {
		t.Errorf("plane IndexCount() = %d, want 96", got)
	}
	if got := plane.Model().MeshProvider().IndexCount(); got != 96 {
		t.Errorf("plane mesh provider index count = %d, want 96", got)
	}

	writes := hb.Writes()
	if len(writes) != 3 {
		t.Fatalf("initial writes = %d, want 3", len(writes))
	}
	lightPos := mgl32.Vec4{floatAt(writes[0].Data, 0), floatAt(writes[0].Data, 1), floatAt(writes[0].Data, 2), floatAt(writes[0].Data, 3)}
	if lightPos != (mgl32.Vec4{0, 2, 0, 1}) {
		t.Errorf("initial light position = %v, want (0, 2, 0, 1)", lightPos)
	}
	if writes[1].Binding != bind_group_provider.InstanceBinding || len(writes[1].Data) != 2*entity.GPUInstanceDataSize {
		t.Errorf("instance write = binding %d, %d bytes", writes[1].Binding, len(writes[1].Data))
	}
	if got := writes[2].Provider.BufferSize(0); got != 144 {
		t.Errorf("camera buffer size = %d, want 144", got)
	}
}

func TestNewSceneErrors(t *testing.T) {
	if _, err := NewScene(nil); err == nil {
		t.Fatal("NewScene(nil) succeeded")
	}

	r, err := renderer.NewRenderer(nil, renderer.WithBackend(renderer.NewHeadlessBackend()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewScene(r, WithPlaneResolution(0)); !errors.Is(err, model.ErrZeroResolution) {
		t.Fatalf("zero resolution error = %v, want ErrZeroResolution", err)
	}
}

func TestWithMaterial(t *testing.T) {
	m := material.NewMaterial(
		material.WithName("dune"),
		material.WithDiffuseTexture(material.SandDiffuse),
		material.WithNormalTexture(material.SandNormal),
		material.WithMaxTextureSize(16),
	)
	s, _, _ := newTestScene(t, WithMaterial(m))
	if s.Material() != m {
		t.Fatal("scene did not keep the supplied material")
	}
	diffuse, _ := m.StagingData()
	if diffuse.Width != 16 {
		t.Errorf("material not decoded by NewScene: width %d", diffuse.Width)
	}

	r, err := renderer.NewRenderer(nil, renderer.WithBackend(renderer.NewHeadlessBackend()))
	if err != nil {
		t.Fatal(err)
	}
	broken := material.NewMaterial(material.WithName("broken"), material.WithDiffuseTexture(material.SandDiffuse), material.WithNormalTexture(nil))
	if _, err := NewScene(r, WithPlaneResolution(2), WithMaterial(broken)); !errors.Is(err, common.ErrEmptyTexture) {
		t.Fatalf("NewScene with undecodable material = %v, want ErrEmptyTexture", err)
	}
}

func TestUpdateMovesLightAndFollower(t *testing.T) {
	s, _, hb := newTestScene(t)
	before := len(hb.Writes())

	const dt = 1.0 / 60.0
	s.Update(dt, dt)

	angle := 100 * math.Pi / 180 * dt
	want := mgl32.Vec4{
		float32(math.Sin(angle))*0.5 + 1.5,
		0.2,
		float32(math.Cos(angle))*0.5 - 1.5,
		1,
	}
	got := s.Light().Position()
	if !near(got, want) {
		t.Fatalf("light position = %v, want %v", got, want)
	}
	if s.Light().Color() != (mgl32.Vec3{0.3, 0.3, 0.3}) {
		t.Errorf("light color = %v, want 0.3 gray", s.Light().Color())
	}
	if pos := s.Entities()[0].Position(); pos != got.Vec3() {
		t.Errorf("cube position = %v, want light %v", pos, got.Vec3())
	}
	if pos := s.Entities()[1].Position(); pos != (mgl32.Vec3{}) {
		t.Errorf("plane moved to %v", pos)
	}

	writes := hb.Writes()[before:]
	if len(writes) != 3 {
		t.Fatalf("update writes = %d, want 3", len(writes))
	}
	if len(writes[0].Data) != 32 || floatAt(writes[0].Data, 0) != got.X() {
		t.Errorf("light write does not carry the animated position")
	}
	if writes[1].Binding != bind_group_provider.InstanceBinding {
		t.Errorf("second write binding = %d, want instance buffer", writes[1].Binding)
	}
	// The cube model matrix is translation by the light position: column 3 holds it.
	if tx := floatAt(writes[1].Data, 12); tx != got.X() {
		t.Errorf("cube instance translation x = %v, want %v", tx, got.X())
	}
	if len(writes[2].Data) != 144 {
		t.Errorf("camera write = %d bytes, want 144", len(writes[2].Data))
	}
}

func TestForwardKeyMovesCamera(t *testing.T) {
	s, _, _ := newTestScene(t)
	start := s.Camera().Position()
	front := s.Camera().Front()

	if !s.HandleKey(common.KeyW, true) {
		t.Fatal("forward key not consumed")
	}
	s.Update(1, 0)

	want := start.Add(front.Mul(2.5))
	if got := s.Camera().Position(); !near(got, want) {
		t.Fatalf("camera position = %v, want %v", got, want)
	}
}

func TestRenderUnconfiguredIsNoop(t *testing.T) {
	s, _, hb := newTestScene(t)
	if err := s.Render(); err != nil {
		t.Fatalf("Render() = %v, want nil", err)
	}
	if hb.Frames() != 0 || hb.Presented() != 0 {
		t.Fatalf("frames = %d, presented = %d, want none", hb.Frames(), hb.Presented())
	}
}

func TestRenderDrawsEntitiesWithAssignedPasses(t *testing.T) {
	s, r, hb := newTestScene(t)
	if err := r.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	if err := s.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	draws := hb.Draws()
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(draws))
	}
	tests := []struct {
		key        string
		offset     uint64
		bindGroups int
	}{
		{CubePipelineKey, 0, 1},
		{LitPipelineKey, entity.GPUInstanceDataSize, 3},
	}
	for i, tt := range tests {
		d := draws[i]
		if d.Pipeline.PipelineKey() != tt.key {
			t.Errorf("draw %d pipeline = %q, want %q", i, d.Pipeline.PipelineKey(), tt.key)
		}
		if d.InstanceOffset != tt.offset || d.InstanceSize != entity.GPUInstanceDataSize {
			t.Errorf("draw %d instance slice = [%d, +%d)", i, d.InstanceOffset, d.InstanceSize)
		}
		if len(d.BindGroups) != tt.bindGroups {
			t.Errorf("draw %d bind groups = %d, want %d", i, len(d.BindGroups), tt.bindGroups)
		}
		if d.Mesh != s.Entities()[i].Model().MeshProvider() {
			t.Errorf("draw %d uses the wrong mesh", i)
		}
	}
	if draws[1].BindGroups[2] != s.Material().BindGroupProvider() {
		t.Error("lit pass group 2 is not the material")
	}
	if hb.Presented() != 1 {
		t.Errorf("presented = %d, want 1", hb.Presented())
	}
}

func TestRenderMissingPass(t *testing.T) {
	odd := entity.NewEntity(model.NewCube("odd"), entity.WithID(7), entity.WithPipelineKey("wireframe"))
	s, r, hb := newTestScene(t, WithEntities(odd))
	if err := r.Resize(64, 64); err != nil {
		t.Fatal(err)
	}

	err := s.Render()
	if !errors.Is(err, ErrNoPassForPipeline) {
		t.Fatalf("Render() = %v, want ErrNoPassForPipeline", err)
	}
	if hb.Presented() != 1 {
		t.Errorf("frame not completed: presented = %d", hb.Presented())
	}

	// The loop keeps going: the next frame is attempted again.
	if err := s.Render(); !errors.Is(err, ErrNoPassForPipeline) {
		t.Fatalf("second Render() = %v", err)
	}
	if hb.Frames() != 2 {
		t.Errorf("frames = %d, want 2", hb.Frames())
	}
}

func TestRenderAcquisitionErrors(t *testing.T) {
	s, r, hb := newTestScene(t)
	if err := r.Resize(64, 64); err != nil {
		t.Fatal(err)
	}

	hb.FailNextFrame(renderer.ErrSurfaceLost)
	if err := s.Render(); !errors.Is(err, renderer.ErrSurfaceLost) {
		t.Fatalf("lost surface: Render() = %v", err)
	}

	hb.FailNextFrame(errors.New("timeout"))
	if err := s.Render(); err != nil {
		t.Fatalf("timeout: Render() = %v, want nil", err)
	}
	if hb.Frames() != 0 || hb.Presented() != 0 {
		t.Fatalf("frames = %d, presented = %d after failed acquisitions", hb.Frames(), hb.Presented())
	}

	if err := s.Render(); err != nil {
		t.Fatal(err)
	}
	if hb.Presented() != 1 {
		t.Errorf("presented = %d after recovery, want 1", hb.Presented())
	}
}

func TestMouseMotionTurnsCamera(t *testing.T) {
	s, _, _ := newTestScene(t)
	yaw := s.Camera().Yaw()
	s.HandleMouseMotion(100, 0)
	s.Update(1.0/60.0, 0)
	if s.Camera().Yaw() == yaw {
		t.Fatal("yaw unchanged after horizontal mouse motion")
	}
}
