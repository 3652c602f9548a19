package camera

import (
	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraController drives the camera eye on an orbit around a target. The orbit
// auto-rotates, accepts direct orbit and zoom input, and is biased by the external
// hand coordinate while the hand is active. The bias is smoothed with the same
// exponential law the morph uses, so hand jitter never snaps the view.
type CameraController interface {
	// Update advances auto-rotation, any reset glide and the hand bias by dt.
	//
	// Parameters:
	//   - dt: frame delta in seconds
	//   - hand: the hand coordinate observed this frame
	Update(dt float32, hand signal.Hand)

	// Position returns the eye position.
	Position() mgl32.Vec3

	// Target returns the orbit pivot.
	Target() mgl32.Vec3

	// Radius returns the distance from the target.
	Radius() float32

	// Azimuth returns the effective horizontal angle, hand bias included.
	Azimuth() float32

	// Elevation returns the effective vertical angle, hand bias included.
	Elevation() float32

	// HandBias returns the current smoothed azimuth and elevation offsets.
	HandBias() (azimuth, elevation float32)

	// Orbit rotates the base orbit by the given angles. Elevation is clamped.
	Orbit(deltaAzimuth, deltaElevation float32)

	// Zoom moves the eye toward (negative) or away from (positive) the target.
	Zoom(delta float32)

	// SetAutoRotate sets the auto-rotation speed in radians per second.
	SetAutoRotate(speed float32)

	// Reset glides the orbit back to its initial radius, azimuth and elevation.
	Reset()

	// Resetting reports whether a reset glide is in progress.
	Resetting() bool
}
