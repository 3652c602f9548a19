// Package morph integrates the formed/scattered progress of every animated element
// and turns it into live transforms. Progress follows a continuous control law
// rather than a fixed-duration tween, so a state flip at any point reverses
// smoothly from wherever the element currently is.
package morph

import (
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/chewxy/math32"
)

// ArriveEpsilon is the distance from a target at which progress counts as arrived.
// Progress approaches its target asymptotically and never equals it in finite time.
const ArriveEpsilon = 1e-3

// Advance applies one step of exponential smoothing toward target and clamps the
// result to [0, 1]. rate*dt is clamped to 1 so a long frame lands on the target
// instead of overshooting it.
//
// Parameters:
//   - progress: current value
//   - target: 0 (scattered) or 1 (formed)
//   - rate: smoothing rate in 1/seconds
//   - dt: frame delta time in seconds
//
// Returns:
//   - float32: the advanced value
func Advance(progress, target, rate, dt float32) float32 {
	return common.Clamp01(common.Damp(progress, target, rate, dt))
}

// Arrived reports whether progress is within ArriveEpsilon of target.
func Arrived(progress, target float32) bool {
	return math32.Abs(progress-target) < ArriveEpsilon
}

// State is a single morph progress shared by a whole population, used where the
// blend runs on the GPU and only one scalar is uploaded per frame.
type State struct {
	progress float32
	rate     float32
	ease     EaseFunc
}

// NewState creates a State at progress 0 (scattered).
func NewState(rate float32, fn EaseFunc) *State {
	if fn == nil {
		fn = Ease
	}
	return &State{rate: rate, ease: fn}
}

// Update advances the progress toward target by dt and returns it.
func (s *State) Update(target, dt float32) float32 {
	s.progress = Advance(s.progress, target, s.rate, dt)
	return s.progress
}

// Progress returns the raw progress.
func (s *State) Progress() float32 {
	return s.progress
}

// Eased returns the eased progress.
func (s *State) Eased() float32 {
	return s.ease(s.progress)
}

// Rate returns the smoothing rate.
func (s *State) Rate() float32 {
	return s.rate
}
