package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a functional option for configuring a Light.
type LightBuilderOption func(*lightImpl)

// WithDirection sets the direction the light travels. It is normalized; a zero
// vector keeps the default.
//
// Parameters:
//   - d: the direction
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithDirection(d mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.setDirection(d)
	}
}

// WithColor sets the RGB color of the light.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithColor(c mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity sets the scalar multiplier. Negative values clamp to 0.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = max(intensity, 0)
	}
}

// WithAmbient sets the ambient RGB term.
func WithAmbient(c mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = c
	}
}
