package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit describes the circular path a point light follows over time.
type Orbit struct {
	// Center is the XZ point the light circles around.
	Center mgl32.Vec2
	// Radius is the distance from Center in the XZ plane.
	Radius float32
	// Height is the constant Y coordinate of the light while orbiting.
	Height float32
	// DegreesPerSecond is the angular speed.
	DegreesPerSecond float32
	// Color is the light color applied while orbiting.
	Color mgl32.Vec3
}

// DefaultOrbit returns the orbit used by the demo scene: radius 0.5 around (1.5, -1.5),
// 0.2 above the ground, 100 degrees per second, dim white.
//
// Returns:
//   - Orbit: the default orbit
func DefaultOrbit() Orbit {
	return Orbit{
		Center:           mgl32.Vec2{1.5, -1.5},
		Radius:           0.5,
		Height:           0.2,
		DegreesPerSecond: 100,
		Color:            mgl32.Vec3{0.3, 0.3, 0.3},
	}
}

// At returns the homogeneous light position after elapsed seconds.
// The angle is measured from +Z toward +X: x = sin(a)*r + cx, z = cos(a)*r + cz.
//
// Parameters:
//   - elapsed: seconds since the start of the loop
//
// Returns:
//   - mgl32.Vec4: the position with w = 1
func (o Orbit) At(elapsed float64) mgl32.Vec4 {
	angle := float64(o.DegreesPerSecond) * math.Pi / 180 * elapsed
	s, c := math.Sincos(angle)
	return mgl32.Vec4{
		float32(s)*o.Radius + o.Center.X(),
		o.Height,
		float32(c)*o.Radius + o.Center.Y(),
		1,
	}
}

// pointLight is the implementation of the PointLight interface.
type pointLight struct {
	position mgl32.Vec4
	color    mgl32.Vec3
	orbit    Orbit
}

// PointLight defines the interface for the single animated light of the scene.
//
// A PointLight holds plain state with no GPU handles. The scene calls Animate once per update and
// uploads Uniform() into the light bind group.
type PointLight interface {
	// Position returns the homogeneous world-space position.
	//
	// Returns:
	//   - mgl32.Vec4: position with w = 1
	Position() mgl32.Vec4

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: the color
	Color() mgl32.Vec3

	// Orbit returns the path followed by Animate.
	//
	// Returns:
	//   - Orbit: the orbit parameters
	Orbit() Orbit

	// SetPosition places the light.
	//
	// Parameters:
	//   - p: homogeneous position
	SetPosition(p mgl32.Vec4)

	// SetColor sets the RGB color.
	//
	// Parameters:
	//   - c: the color
	SetColor(c mgl32.Vec3)

	// Animate moves the light to its orbit position for the given elapsed time and applies the orbit color.
	//
	// Parameters:
	//   - elapsed: seconds since the start of the loop
	Animate(elapsed float64)

	// Uniform returns the GPU uniform block for the current state.
	//
	// Returns:
	//   - GPUPointLight: the uniform data
	Uniform() GPUPointLight
}

var _ PointLight = &pointLight{}

// NewPointLight creates a PointLight at (0, 2, 0) with white color and the default orbit.
//
// Parameters:
//   - options: a variadic list of LightBuilderOption functions
//
// Returns:
//   - PointLight: the new light
func NewPointLight(options ...LightBuilderOption) PointLight {
	l := &pointLight{
		position: mgl32.Vec4{0, 2, 0, 1},
		color:    mgl32.Vec3{1, 1, 1},
		orbit:    DefaultOrbit(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *pointLight) Position() mgl32.Vec4 {
	return l.position
}

func (l *pointLight) Color() mgl32.Vec3 {
	return l.color
}

func (l *pointLight) Orbit() Orbit {
	return l.orbit
}

func (l *pointLight) SetPosition(p mgl32.Vec4) {
	l.position = p
}

func (l *pointLight) SetColor(c mgl32.Vec3) {
	l.color = c
}

func (l *pointLight) Animate(elapsed float64) {
	l.position = l.orbit.At(elapsed)
	l.color = l.orbit.Color
}

func (l *pointLight) Uniform() GPUPointLight {
	return GPUPointLight{
		Position:     l.position,
		DiffuseColor: l.color.Vec4(1),
	}
}
