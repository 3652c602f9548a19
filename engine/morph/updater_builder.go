package morph

import "github.com/Carmen-Shannon/automation/tools/worker"

// UpdaterBuilderOption is a functional option for configuring an Updater.
type UpdaterBuilderOption func(*updater)

// WithMode sets the rotation regime.
//
// Parameters:
//   - mode: ModeTumble, ModeCameraFacing or ModeSettleFloor
//
// Returns:
//   - UpdaterBuilderOption: functional option to set the mode
func WithMode(mode Mode) UpdaterBuilderOption {
	return func(u *updater) {
		u.mode = mode
	}
}

// WithRate sets the progress smoothing rate in 1/seconds. Larger elements and
// camera-facing elements use faster rates.
//
// Parameters:
//   - rate: smoothing rate
//
// Returns:
//   - UpdaterBuilderOption: functional option to set the progress rate
func WithRate(rate float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.rate = rate
	}
}

// WithRotationRate sets the smoothing rate used when damping toward the settled
// or hanging orientation.
//
// Parameters:
//   - rate: smoothing rate
//
// Returns:
//   - UpdaterBuilderOption: functional option to set the rotation rate
func WithRotationRate(rate float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.rotationRate = rate
	}
}

// WithFaceRate sets how quickly camera-facing elements turn toward the camera.
func WithFaceRate(rate float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.faceRate = rate
	}
}

// WithSettleThreshold sets the raw progress at which rotation switches from
// in-flight to settling. Typical values are 0.8 to 0.9.
//
// Parameters:
//   - threshold: raw progress threshold
//
// Returns:
//   - UpdaterBuilderOption: functional option to set the threshold
func WithSettleThreshold(threshold float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.settleAt = threshold
	}
}

// WithScale sets the scale multipliers applied to each element's base scale in the
// scattered and formed states.
//
// Parameters:
//   - scattered: multiplier at progress 0
//   - formed: multiplier at progress 1
//
// Returns:
//   - UpdaterBuilderOption: functional option to set the scale blend
func WithScale(scattered, formed float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.scatteredScale = scattered
		u.formedScale = formed
	}
}

// WithTumbleSpeed scales the in-flight angular velocity.
func WithTumbleSpeed(speed float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.tumbleSpeed = speed
	}
}

// WithPulse enables the glow pulse.
//
// Parameters:
//   - amplitude: peak deviation of Glow from 1
//   - speed: angular frequency in radians per second
//
// Returns:
//   - UpdaterBuilderOption: functional option to enable the pulse
func WithPulse(amplitude, speed float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.pulseAmplitude = amplitude
		u.pulseSpeed = speed
	}
}

// WithSway sets the roll sway of hanging camera-facing elements.
func WithSway(amplitude, speed float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.swayAmplitude = amplitude
		u.swaySpeed = speed
	}
}

// WithEase replaces the spatial ease curve.
func WithEase(fn EaseFunc) UpdaterBuilderOption {
	return func(u *updater) {
		if fn != nil {
			u.ease = fn
		}
	}
}

// WithPool spreads updates of populations larger than chunkSize over a worker pool.
//
// Parameters:
//   - pool: the worker pool
//   - chunkSize: elements per task
//
// Returns:
//   - UpdaterBuilderOption: functional option to enable parallel updates
func WithPool(pool worker.DynamicWorkerPool, chunkSize int) UpdaterBuilderOption {
	return func(u *updater) {
		u.pool = pool
		if chunkSize > 0 {
			u.chunkSize = chunkSize
		}
	}
}
