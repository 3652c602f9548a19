package scene

import (
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is the input every component reads for one frame. It is built once per
// frame so all components observe the same state, hand and clock.
type Frame struct {
	DT      float32
	Elapsed float32
	Signal  signal.Snapshot

	// Eye is the camera position after this frame's rig update.
	Eye mgl32.Vec3
}

// Target returns the morph target for the frame's state: 1 formed, 0 scattered.
func (f Frame) Target() float32 {
	return f.Signal.State.Target()
}

// MorphInput converts the frame to the per-element updater input.
func (f Frame) MorphInput() morph.Input {
	return morph.Input{
		DT:      f.DT,
		Elapsed: f.Elapsed,
		Target:  f.Target(),
		Camera:  f.Eye,
	}
}
