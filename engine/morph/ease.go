package morph

import (
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// EaseFunc remaps raw progress in [0, 1] to a spatial blend factor in [0, 1].
type EaseFunc func(t float32) float32

// Ease is the quadratic in-out curve: 2t^2 below one half, 1-2(1-t)^2 above.
func Ease(t float32) float32 {
	return ease.InOutQuad(common.Clamp01(t), 0, 1, 1)
}

// EaseQuint is the steeper quintic in-out curve used by particle clouds.
func EaseQuint(t float32) float32 {
	return ease.InOutQuint(common.Clamp01(t), 0, 1, 1)
}

// Linear leaves progress unchanged.
func Linear(t float32) float32 {
	return common.Clamp01(t)
}

// Blend interpolates componentwise from scattered to formed by t.
//
// Parameters:
//   - scattered: position at t = 0
//   - formed: position at t = 1
//   - t: eased blend factor
//
// Returns:
//   - mgl32.Vec3: the blended position
func Blend(scattered, formed mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		common.Lerp(scattered[0], formed[0], t),
		common.Lerp(scattered[1], formed[1], t),
		common.Lerp(scattered[2], formed[2], t),
	}
}
