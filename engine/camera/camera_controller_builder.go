package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - CameraControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the look-at/pivot point.
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}

// WithRadiusBounds sets the zoom limits.
func WithRadiusBounds(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}

// WithElevationBounds sets the vertical angle limits in radians.
func WithElevationBounds(minElevation, maxElevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = minElevation
		cc.maxElevation = maxElevation
	}
}

// WithAutoRotate sets the idle orbit speed in radians per second.
func WithAutoRotate(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.autoRotate = speed
	}
}

// WithHandRange sets how far a fully deflected hand biases the view.
//
// Parameters:
//   - azimuth: bias in radians at hand.X = +-1
//   - elevation: bias in radians at hand.Y = +-1
//
// Returns:
//   - CameraControllerOption: functional option to set the hand range
func WithHandRange(azimuth, elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.handAzimuth = azimuth
		cc.handElevation = elevation
	}
}

// WithHandRate sets the smoothing rate of the hand bias in 1/seconds.
func WithHandRate(rate float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.handRate = rate
	}
}

// WithResetDuration sets how long Reset takes to glide home, in seconds.
func WithResetDuration(seconds float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.resetDuration = seconds
	}
}
