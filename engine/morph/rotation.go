package morph

import (
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// nearestAngle returns the angle equivalent to target (mod 2*pi) closest to current,
// so damping after a long tumble unwinds at most half a turn.
func nearestAngle(current, target float32) float32 {
	const turn = 2 * math32.Pi
	return target + turn*math32.Floor((current-target)/turn+0.5)
}

// dampEuler moves each axis of current toward the nearest equivalent of target.
func dampEuler(current, target mgl32.Vec3, rate, dt float32) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := range out {
		out[i] = common.Damp(current[i], nearestAngle(current[i], target[i]), rate, dt)
	}
	return out
}

// EulerToQuat converts XYZ Euler angles to a quaternion.
func EulerToQuat(e mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(e.X(), e.Y(), e.Z(), mgl32.XYZ)
}

// FacingQuat returns the orientation whose local +Z axis points from position
// toward target with +Y kept as close to world up as possible. ok is false when the
// two points coincide.
func FacingQuat(position, target mgl32.Vec3) (q mgl32.Quat, ok bool) {
	f := target.Sub(position)
	if f.Len() < 1e-6 {
		return mgl32.QuatIdent(), false
	}
	f = f.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	right := up.Cross(f)
	if right.Len() < 1e-6 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	u := f.Cross(right)

	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, u, f).Mat4()).Normalize(), true
}

// HangQuat returns the orientation of an element hanging on a vertical axis: local
// +Z faces outward from the axis through the origin, rolled by roll radians.
func HangQuat(position mgl32.Vec3, roll float32) mgl32.Quat {
	yaw := math32.Atan2(position.X(), position.Z())
	return mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1}))
}

// slerpToward spherically interpolates from toward to by amount along the shortest arc.
func slerpToward(from, to mgl32.Quat, amount float32) mgl32.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl32.QuatSlerp(from, to, amount).Normalize()
}
