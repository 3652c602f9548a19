package morph

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const frame = float32(1.0 / 60)

func single(e layout.DualPosition) layout.Population {
	if e.Scale == 0 {
		e.Scale = 1
	}
	return layout.NewPopulation(layout.Shape{}, []layout.DualPosition{e})
}

// run advances u for seconds of 60 Hz frames starting at *elapsed.
func run(u Updater, target, seconds float32, elapsed *float32, camera mgl32.Vec3) {
	steps := int(seconds/frame + 0.5)
	for i := 0; i < steps; i++ {
		*elapsed += frame
		u.Update(Input{DT: frame, Elapsed: *elapsed, Target: target, Camera: camera})
	}
}

func quatClose(a, b mgl32.Quat) bool {
	return math32.Abs(a.Dot(b)) > 0.9999
}

func TestUpdaterScenarioConvergesToFormed(t *testing.T) {
	u := NewUpdater(single(layout.DualPosition{
		Scattered: mgl32.Vec3{10, 0, 0},
		Formed:    mgl32.Vec3{0, 0, 0},
	}), WithRate(2))

	var elapsed float32
	run(u, 1, 3, &elapsed, mgl32.Vec3{})

	if x := u.Transform(0).Position.X(); math32.Abs(x) >= 0.01 {
		t.Errorf("position.x after 3s = %v, want within 0.01 of 0", x)
	}
}

func TestUpdaterFlipReversesSmoothly(t *testing.T) {
	u := NewUpdater(single(layout.DualPosition{Scattered: mgl32.Vec3{10, 0, 0}}), WithRate(2))
	in := Input{DT: frame, Target: 1}

	for u.Progress(0) < 0.7 {
		in.Elapsed += frame
		u.Update(in)
	}
	flipAt := u.Progress(0)
	prev := flipAt
	prevX := u.Transform(0).Position.X()

	in.Target = 0
	for i := 0; i < 120; i++ {
		in.Elapsed += frame
		u.Update(in)
		p := u.Progress(0)
		if p > prev {
			t.Fatalf("frame %d after flip: progress rose from %v to %v", i, prev, p)
		}
		// a single step moves at most rate*dt of the remaining distance
		if prev-p > 2*frame*prev+1e-6 {
			t.Fatalf("frame %d after flip: jump of %v", i, prev-p)
		}
		x := u.Transform(0).Position.X()
		if math32.Abs(x-prevX) > 1 {
			t.Fatalf("frame %d after flip: position jumped from %v to %v", i, prevX, x)
		}
		prev, prevX = p, x
	}
	if prev >= flipAt {
		t.Errorf("progress did not reverse: %v -> %v", flipAt, prev)
	}
}

func TestTumbleSettlesToBaseRotation(t *testing.T) {
	base := mgl32.Vec3{0.4, 1.2, -0.3}
	u := NewUpdater(single(layout.DualPosition{Rotation: base}), WithSettleThreshold(0.85), WithRotationRate(3))

	var elapsed float32
	run(u, 0, 1, &elapsed, mgl32.Vec3{})
	if quatClose(u.Transform(0).Rotation, EulerToQuat(base)) {
		t.Error("scattered element is not tumbling")
	}

	run(u, 1, 12, &elapsed, mgl32.Vec3{})
	if !quatClose(u.Transform(0).Rotation, EulerToQuat(base)) {
		t.Errorf("rotation %v did not settle to base %v", u.Transform(0).Rotation, EulerToQuat(base))
	}
	if !u.Arrived(1) {
		t.Errorf("progress %v not arrived", u.Progress(0))
	}
}

func TestSettleFloorKeepsYaw(t *testing.T) {
	base := mgl32.Vec3{1.1, 2.3, -0.7}
	u := NewUpdater(single(layout.DualPosition{Rotation: base}), WithMode(ModeSettleFloor))

	var elapsed float32
	run(u, 0, 2, &elapsed, mgl32.Vec3{})
	run(u, 1, 12, &elapsed, mgl32.Vec3{})

	want := EulerToQuat(mgl32.Vec3{0, base.Y(), 0})
	if !quatClose(u.Transform(0).Rotation, want) {
		t.Errorf("rotation = %v, want yaw-only %v", u.Transform(0).Rotation, want)
	}
	up := u.Transform(0).Rotation.Rotate(mgl32.Vec3{0, 1, 0})
	if up.Y() < 0.999 {
		t.Errorf("settled element not upright: up = %v", up)
	}
}

func TestCameraFacingTurnsTowardCamera(t *testing.T) {
	pos := mgl32.Vec3{5, 1, 0}
	camera := mgl32.Vec3{0, 2, 20}
	u := NewUpdater(single(layout.DualPosition{Scattered: pos, Formed: mgl32.Vec3{3, 0, 4}}),
		WithMode(ModeCameraFacing), WithFaceRate(5))

	var elapsed float32
	prev := u.Transform(0).Rotation
	for i := 0; i < 300; i++ {
		run(u, 0, frame, &elapsed, camera)
		cur := u.Transform(0).Rotation
		if math32.Abs(cur.Dot(prev)) < 0.99 {
			t.Fatalf("frame %d: orientation snapped", i)
		}
		prev = cur
	}

	forward := u.Transform(0).Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	want := camera.Sub(pos).Normalize()
	if forward.Sub(want).Len() > 1e-2 {
		t.Errorf("forward = %v, want %v", forward, want)
	}
}

func TestCameraFacingHangsOutward(t *testing.T) {
	u := NewUpdater(single(layout.DualPosition{Scattered: mgl32.Vec3{5, 1, 0}, Formed: mgl32.Vec3{3, 0, 4}}),
		WithMode(ModeCameraFacing), WithSway(0, 1))

	var elapsed float32
	run(u, 1, 15, &elapsed, mgl32.Vec3{0, 2, 20})

	forward := u.Transform(0).Rotation.Rotate(mgl32.Vec3{0, 0, 1})
	if forward.Sub(mgl32.Vec3{0.6, 0, 0.8}).Len() > 1e-2 {
		t.Errorf("forward = %v, want outward (0.6, 0, 0.8)", forward)
	}
}

func TestScaleBlend(t *testing.T) {
	u := NewUpdater(single(layout.DualPosition{Scale: 2}), WithScale(1.5, 1))
	if s := u.Transform(0).Scale; s != 3 {
		t.Errorf("initial scale = %v, want 3", s)
	}
	var elapsed float32
	run(u, 1, 10, &elapsed, mgl32.Vec3{})
	if s := u.Transform(0).Scale; math32.Abs(s-2) > 1e-3 {
		t.Errorf("formed scale = %v, want 2", s)
	}
}

func TestGlowPulseIsPhaseOffset(t *testing.T) {
	pop := layout.NewPopulation(layout.Shape{}, []layout.DualPosition{
		{Scale: 1, Phase: layout.PhaseOf(0)},
		{Scale: 1, Phase: layout.PhaseOf(1)},
	})
	u := NewUpdater(pop, WithPulse(0.4, 3))
	u.Update(Input{DT: frame, Elapsed: 1})
	a, b := u.Transform(0).Glow, u.Transform(1).Glow
	if a == b {
		t.Errorf("neighbouring glows equal: %v", a)
	}
	for _, g := range []float32{a, b} {
		if g < 0.6-1e-5 || g > 1.4+1e-5 {
			t.Errorf("glow %v outside 1 +- 0.4", g)
		}
	}
}

func TestActivePrefix(t *testing.T) {
	items := make([]layout.DualPosition, 5)
	for i := range items {
		items[i] = layout.DualPosition{Scattered: mgl32.Vec3{1, 0, 0}, Scale: 1}
	}
	u := NewUpdater(layout.NewPopulation(layout.Shape{}, items))
	u.SetActive(2)
	if u.Active() != 2 || u.Len() != 5 {
		t.Fatalf("Active/Len = %d/%d, want 2/5", u.Active(), u.Len())
	}
	u.Update(Input{DT: frame, Target: 1})
	if u.Progress(1) == 0 || u.Progress(2) != 0 {
		t.Errorf("progress = %v/%v, want only the prefix advanced", u.Progress(1), u.Progress(2))
	}
	u.SetActive(99)
	if u.Active() != 5 {
		t.Errorf("Active() = %d, want clamp to 5", u.Active())
	}
}

func TestPooledUpdateMatchesSerial(t *testing.T) {
	pop := layout.Tree(newRNG(3), 500, layout.TreeOptions{Height: 10, Radius: 4, ScatterRadius: 12})
	serial := NewUpdater(pop)
	pooled := NewUpdater(pop, WithPool(worker.NewDynamicWorkerPool(4, 64, time.Second), 64))

	var e1, e2 float32
	run(serial, 1, 1, &e1, mgl32.Vec3{})
	run(pooled, 1, 1, &e2, mgl32.Vec3{})
	for i := 0; i < pop.Len(); i++ {
		if serial.Transform(i) != pooled.Transform(i) {
			t.Fatalf("element %d differs", i)
		}
	}
}
