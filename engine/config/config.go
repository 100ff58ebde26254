package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/flycam/engine/camera"
	"github.com/Carmen-Shannon/flycam/engine/light"
	"github.com/Carmen-Shannon/flycam/engine/renderer"
	"github.com/Carmen-Shannon/flycam/engine/scene"
	"github.com/Carmen-Shannon/flycam/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

//go:embed assets/default.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Parse.
var ErrInvalid = errors.New("config: invalid value")

// Present mode names accepted in renderer.present_mode.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"
)

// Config is the full set of tunables for the demo.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Renderer RendererConfig `yaml:"renderer"`
	Engine   EngineConfig   `yaml:"engine"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Light    LightConfig    `yaml:"light"`
}

type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

type RendererConfig struct {
	PresentMode   string     `yaml:"present_mode"`
	ClearColor    [4]float64 `yaml:"clear_color"`
	ForceSoftware bool       `yaml:"force_software"`
}

type EngineConfig struct {
	// FrameLimit caps frames per second; 0 runs uncapped.
	FrameLimit int  `yaml:"frame_limit"`
	Profiling  bool `yaml:"profiling"`
}

type CameraConfig struct {
	Position     [3]float32 `yaml:"position"`
	YawDegrees   float32    `yaml:"yaw_degrees"`
	PitchDegrees float32    `yaml:"pitch_degrees"`
	FovDegrees   float32    `yaml:"fov_degrees"`
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
	Speed        float32    `yaml:"speed"`
	Sensitivity  float32    `yaml:"sensitivity"`
}

type SceneConfig struct {
	PlaneResolution uint32 `yaml:"plane_resolution"`
}

type LightConfig struct {
	Position [3]float32  `yaml:"position"`
	Color    [3]float32  `yaml:"color"`
	Orbit    OrbitConfig `yaml:"orbit"`
}

type OrbitConfig struct {
	Center           [2]float32 `yaml:"center"`
	Radius           float32    `yaml:"radius"`
	Height           float32    `yaml:"height"`
	DegreesPerSecond float32    `yaml:"degrees_per_second"`
	Color            [3]float32 `yaml:"color"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the embedded defaults
func Default() Config {
	var cfg Config
	if err := decode(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config is invalid: %v", err))
	}
	return cfg
}

// Parse overlays data onto the defaults and validates the result. Keys missing from data keep
// their default values; unknown keys are rejected.
//
// Parameters:
//   - data: YAML document, may be empty
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode error or an ErrInvalid wrap naming the offending key
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every value against its allowed range.
//
// Returns:
//   - error: an ErrInvalid wrap naming the first offending key, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width < 1 || c.Window.Height < 1:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.presentMode() < 0:
		return fmt.Errorf("%w: renderer.present_mode %q", ErrInvalid, c.Renderer.PresentMode)
	case c.Engine.FrameLimit < 0:
		return fmt.Errorf("%w: engine.frame_limit %d", ErrInvalid, c.Engine.FrameLimit)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return fmt.Errorf("%w: camera.fov_degrees %v", ErrInvalid, c.Camera.FovDegrees)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes %v..%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Speed < 0 || c.Camera.Sensitivity < 0:
		return fmt.Errorf("%w: camera speed %v sensitivity %v", ErrInvalid, c.Camera.Speed, c.Camera.Sensitivity)
	case c.Scene.PlaneResolution < 1:
		return fmt.Errorf("%w: scene.plane_resolution must be at least 1", ErrInvalid)
	case c.Light.Orbit.Radius < 0:
		return fmt.Errorf("%w: light.orbit.radius %v", ErrInvalid, c.Light.Orbit.Radius)
	}
	return nil
}

// presentMode maps the configured name to a renderer.PresentMode, -1 if unknown.
func (c Config) presentMode() renderer.PresentMode {
	switch strings.ToLower(c.Renderer.PresentMode) {
	case PresentModeVSync:
		return renderer.PresentModeVSync
	case PresentModeUncapped:
		return renderer.PresentModeUncapped
	}
	return -1
}

// WindowOptions translates the window section into window builder options.
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithWidth(c.Window.Width),
		window.WithHeight(c.Window.Height),
		window.WithCursorCapture(c.Window.CaptureCursor),
	}
}

// RendererOptions translates the renderer section into renderer builder options.
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	cc := c.Renderer.ClearColor
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(c.presentMode()),
		renderer.WithClearColor(wgpu.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}),
		renderer.WithForceSoftwareRenderer(c.Renderer.ForceSoftware),
	}
}

// SceneOptions builds the camera, controller and light and returns them with the scene settings
// as scene builder options.
func (c Config) SceneOptions() []scene.SceneBuilderOption {
	cam := camera.NewCamera(
		camera.WithPosition(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2]),
		camera.WithOrientation(mgl32.DegToRad(c.Camera.YawDegrees), mgl32.DegToRad(c.Camera.PitchDegrees)),
		camera.WithFovY(mgl32.DegToRad(c.Camera.FovDegrees)),
	)
	controller := camera.NewCameraController(
		camera.WithSpeed(c.Camera.Speed),
		camera.WithSensitivity(c.Camera.Sensitivity),
	)
	o := c.Light.Orbit
	pl := light.NewPointLight(
		light.WithPosition(c.Light.Position[0], c.Light.Position[1], c.Light.Position[2]),
		light.WithColor(c.Light.Color[0], c.Light.Color[1], c.Light.Color[2]),
		light.WithOrbit(light.Orbit{
			Center:           mgl32.Vec2{o.Center[0], o.Center[1]},
			Radius:           o.Radius,
			Height:           o.Height,
			DegreesPerSecond: o.DegreesPerSecond,
			Color:            mgl32.Vec3{o.Color[0], o.Color[1], o.Color[2]},
		}),
	)
	return []scene.SceneBuilderOption{
		scene.WithCamera(cam),
		scene.WithController(controller),
		scene.WithLight(pl),
		scene.WithClipPlanes(c.Camera.Near, c.Camera.Far),
		scene.WithPlaneResolution(c.Scene.PlaneResolution),
	}
}
