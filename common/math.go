package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Lerp linearly interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Clamp01 restricts v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// DampFactor returns the per-frame smoothing factor rate*dt clamped to [0, 1].
// Applying value += (target-value) * DampFactor(rate, dt) never overshoots target,
// no matter how large dt gets.
//
// Parameters:
//   - rate: smoothing rate in 1/seconds
//   - dt: frame delta time in seconds
//
// Returns:
//   - float32: the clamped interpolation factor
func DampFactor(rate, dt float32) float32 {
	if dt <= 0 || rate <= 0 {
		return 0
	}
	return Clamp01(rate * dt)
}

// Damp moves current toward target by the exponential smoothing law.
func Damp(current, target, rate, dt float32) float32 {
	return current + (target-current)*DampFactor(rate, dt)
}

// IsFinite reports whether every component of v is neither NaN nor infinite.
func IsFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// The returned slice shares memory with the input.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Perspective creates a right-handed perspective projection for WebGPU clip space,
// where depth maps to [0, 1] rather than OpenGL's [-1, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = (near * far) / (near - far)
	return m
}

// ModelMatrix composes translation, rotation and uniform scale as T * R * S.
func ModelMatrix(position mgl32.Vec3, rotation mgl32.Quat, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}
