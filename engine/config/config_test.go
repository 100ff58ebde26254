package config

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/flycam/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 || !cfg.Window.CaptureCursor {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Renderer.PresentMode != PresentModeVSync {
		t.Errorf("present mode = %q, want vsync", cfg.Renderer.PresentMode)
	}
	if cfg.Engine.FrameLimit != 0 || cfg.Engine.Profiling {
		t.Errorf("engine = %+v, want uncapped without profiling", cfg.Engine)
	}
	if cfg.Camera.Speed != 2.5 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 100 || cfg.Camera.FovDegrees != 90 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Scene.PlaneResolution != 1024 {
		t.Errorf("plane resolution = %d, want 1024", cfg.Scene.PlaneResolution)
	}
	o := cfg.Light.Orbit
	if o.Center != [2]float32{1.5, -1.5} || o.Radius != 0.5 || o.Height != 0.2 || o.DegreesPerSecond != 100 {
		t.Errorf("orbit = %+v", o)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("engine:\n  frame_limit: 144\ncamera:\n  speed: 5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.FrameLimit != 144 || cfg.Camera.Speed != 5 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Engine, cfg.Camera)
	}
	if cfg.Camera.Sensitivity != 1 || cfg.Window.Title != "flycam" {
		t.Errorf("defaults lost: sensitivity %v title %q", cfg.Camera.Sensitivity, cfg.Window.Title)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatal("empty document differs from defaults")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"unknown key", "window:\n  colour: red\n", false},
		{"bad syntax", "window: [", false},
		{"short array", "camera:\n  position: [1, 2]\n", false},
		{"present mode", "renderer:\n  present_mode: mailbox\n", true},
		{"negative frame limit", "engine:\n  frame_limit: -1\n", true},
		{"far before near", "camera:\n  near: 10\n  far: 1\n", true},
		{"fov", "camera:\n  fov_degrees: 180\n", true},
		{"zero plane", "scene:\n  plane_resolution: 0\n", true},
		{"zero width", "window:\n  width: 0\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse succeeded")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Fatalf("errors.Is(err, ErrInvalid) = %v, want %v (err %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestPresentModeCaseInsensitive(t *testing.T) {
	cfg, err := Parse([]byte("renderer:\n  present_mode: Uncapped\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.presentMode() != renderer.PresentModeUncapped {
		t.Fatalf("presentMode() = %v, want uncapped", cfg.presentMode())
	}
}

func TestRendererOptions(t *testing.T) {
	cfg, err := Parse([]byte("renderer:\n  present_mode: uncapped\n  clear_color: [0, 0, 0, 1]\n"))
	if err != nil {
		t.Fatal(err)
	}
	hb := renderer.NewHeadlessBackend()
	r, err := renderer.NewRenderer(nil, append(cfg.RendererOptions(), renderer.WithBackend(hb))...)
	if err != nil {
		t.Fatal(err)
	}
	if hb.PresentMode() != renderer.PresentModeUncapped {
		t.Errorf("backend present mode = %v", hb.PresentMode())
	}
	if err := r.Resize(8, 8); err != nil {
		t.Fatal(err)
	}
	if err := r.BeginFrame(); err != nil {
		t.Fatal(err)
	}
	if got := hb.ClearColor(); got != (wgpu.Color{A: 1}) {
		t.Errorf("clear color = %+v", got)
	}
}

func TestOptionCounts(t *testing.T) {
	cfg := Default()
	if n := len(cfg.WindowOptions()); n != 4 {
		t.Errorf("WindowOptions() = %d options", n)
	}
	if n := len(cfg.SceneOptions()); n != 5 {
		t.Errorf("SceneOptions() = %d options", n)
	}
}
