package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a PointLight during construction.
type LightBuilderOption func(*pointLight)

// WithPosition is an option builder that sets the initial world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *pointLight) {
		l.position = mgl32.Vec4{x, y, z, 1}
	}
}

// WithColor is an option builder that sets the initial RGB color of the light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *pointLight) {
		l.color = mgl32.Vec3{r, g, b}
	}
}

// WithOrbit is an option builder that replaces the orbit followed by Animate.
//
// Parameters:
//   - o: the orbit parameters
//
// Returns:
//   - LightBuilderOption: a function that applies the orbit option
func WithOrbit(o Orbit) LightBuilderOption {
	return func(l *pointLight) {
		l.orbit = o
	}
}
