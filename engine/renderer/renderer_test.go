package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeSurface struct{ w, h int }

func (f fakeSurface) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f fakeSurface) Width() int                                { return f.w }
func (f fakeSurface) Height() int                               { return f.h }

func newHeadless(t *testing.T, src SurfaceSource) (Renderer, *HeadlessBackend) {
	t.Helper()
	hb := NewHeadlessBackend()
	r, err := NewRenderer(src, WithBackend(hb))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r, hb
}

func TestResizeClampsToOne(t *testing.T) {
	r, hb := newHeadless(t, nil)
	if r.Configured() {
		t.Fatal("renderer configured before Resize")
	}
	if err := r.Resize(0, 0); err != nil {
		t.Fatal(err)
	}
	if !r.Configured() {
		t.Fatal("renderer not configured after Resize")
	}
	if w, h := r.SurfaceSize(); w != 1 || h != 1 {
		t.Fatalf("SurfaceSize() = %dx%d, want 1x1", w, h)
	}
	if got := hb.SurfaceSizes(); len(got) != 1 || got[0] != [2]int{1, 1} {
		t.Fatalf("backend sizes = %v", got)
	}
}

func TestNewRendererConfiguresFromSource(t *testing.T) {
	r, hb := newHeadless(t, fakeSurface{800, 600})
	if !r.Configured() {
		t.Fatal("renderer not configured")
	}
	if got := r.AspectRatio(); got != float32(800)/600 {
		t.Errorf("AspectRatio() = %v", got)
	}
	if hb.PresentMode() != PresentModeVSync {
		t.Errorf("default present mode = %v, want VSync", hb.PresentMode())
	}
}

func TestNewRendererWithoutSource(t *testing.T) {
	if _, err := NewRenderer(nil); err == nil {
		t.Fatal("NewRenderer(nil) without a backend must fail")
	}
}

func TestBeginFrameUnconfigured(t *testing.T) {
	r, hb := newHeadless(t, nil)
	if err := r.BeginFrame(); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("BeginFrame() = %v, want ErrNotConfigured", err)
	}
	if hb.Frames() != 0 {
		t.Fatal("backend frame started while unconfigured")
	}
	if r.AspectRatio() != 1 {
		t.Errorf("AspectRatio() = %v before Resize, want 1", r.AspectRatio())
	}
}

func TestFrameSequence(t *testing.T) {
	r, hb := newHeadless(t, fakeSurface{640, 480})
	if err := r.RegisterPipelines(pipeline.NewPipeline("cube", nil), pipeline.NewPipeline("cube", nil)); err != nil {
		t.Fatal(err)
	}
	if got := hb.Pipelines(); len(got) != 1 {
		t.Fatalf("registered %v, duplicate keys must be skipped", got)
	}

	mesh := bind_group_provider.NewBindGroupProvider("Cube Mesh")
	instances := bind_group_provider.NewBindGroupProvider("Instances")
	if err := r.InitMeshBuffers(mesh, []byte{0}, []byte{0}, 36); err != nil {
		t.Fatal(err)
	}
	if err := r.InitInstanceBuffer(instances, 2, 128); err != nil {
		t.Fatal(err)
	}

	if err := r.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if err := r.DrawCall("cube", mesh, instances, 1, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.DrawCall("missing", mesh, instances, 0, nil); err == nil {
		t.Error("DrawCall with an unknown pipeline must fail")
	}
	if err := r.EndFrame(); err != nil {
		t.Fatal(err)
	}
	r.Present()

	draws := hb.Draws()
	if len(draws) != 1 {
		t.Fatalf("len(Draws()) = %d, want 1", len(draws))
	}
	if draws[0].InstanceOffset != 128 || draws[0].InstanceSize != 128 {
		t.Errorf("instance slice = [%d, +%d), want [128, +128)", draws[0].InstanceOffset, draws[0].InstanceSize)
	}
	if draws[0].Mesh.IndexCount() != 36 {
		t.Errorf("mesh IndexCount() = %d", draws[0].Mesh.IndexCount())
	}
	if hb.Presented() != 1 {
		t.Errorf("Presented() = %d, want 1", hb.Presented())
	}
	if c := hb.ClearColor(); c != (wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}) {
		t.Errorf("clear color = %+v", c)
	}

	r.Release()
	if r.Configured() || r.Pipeline("cube") != nil {
		t.Error("Release must drop the pipelines and the configured state")
	}
}

func TestInitInstanceBufferRejectsEmpty(t *testing.T) {
	r, _ := newHeadless(t, nil)
	if err := r.InitInstanceBuffer(bind_group_provider.NewBindGroupProvider("Instances"), 0, 128); err == nil {
		t.Fatal("zero instances must fail")
	}
}

func TestInitBindGroupRecordsUniformSizes(t *testing.T) {
	r, _ := newHeadless(t, nil)
	p := bind_group_provider.NewBindGroupProvider("Camera")
	desc := wgpu.BindGroupLayoutDescriptor{Entries: []wgpu.BindGroupLayoutEntry{{
		Binding: 0,
		Buffer:  wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 144},
	}}}
	if err := r.InitBindGroup(p, desc); err != nil {
		t.Fatal(err)
	}
	if p.BufferSize(0) != 144 {
		t.Fatalf("BufferSize(0) = %d, want 144", p.BufferSize(0))
	}
}

func TestSelectSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []wgpu.TextureFormat
		want    wgpu.TextureFormat
	}{
		{"srgb preferred", []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb}, wgpu.TextureFormatBGRA8UnormSrgb},
		{"first otherwise", []wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm}, wgpu.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectSurfaceFormat(tt.formats); got != tt.want {
				t.Errorf("selectSurfaceFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStagingDefaults(t *testing.T) {
	if got := orDefault(wgpu.TextureFormatUndefined, wgpu.TextureFormatRGBA8UnormSrgb); got != wgpu.TextureFormatRGBA8UnormSrgb {
		t.Errorf("unset format = %v", got)
	}
	if got := orDefault(wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb); got != wgpu.TextureFormatRGBA8Unorm {
		t.Errorf("set format = %v", got)
	}
	if got := orDefault[float32](0, 32); got != 32 {
		t.Errorf("unset lod clamp = %v", got)
	}
	if got := orDefault[uint16](4, 1); got != 4 {
		t.Errorf("set anisotropy = %v", got)
	}
}

func TestHeadlessFailNextFrame(t *testing.T) {
	r, hb := newHeadless(t, fakeSurface{1, 1})
	hb.FailNextFrame(ErrSurfaceLost)
	if err := r.BeginFrame(); !errors.Is(err, ErrSurfaceLost) {
		t.Fatalf("BeginFrame() = %v", err)
	}
	if err := r.BeginFrame(); err != nil {
		t.Fatalf("second BeginFrame() = %v", err)
	}
	if err := r.BeginFrame(); !errors.Is(err, ErrFrameInProgress) {
		t.Fatalf("BeginFrame() without Present = %v", err)
	}
}
