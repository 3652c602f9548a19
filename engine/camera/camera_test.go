package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func newTestController(options ...CameraControllerOption) CameraController {
	base := []CameraControllerOption{
		WithRadius(10),
		WithAzimuth(0),
		WithElevation(0),
		WithAutoRotate(0),
	}
	return NewCameraController(append(base, options...)...)
}

func TestControllerInitialPosition(t *testing.T) {
	cc := newTestController()
	want := mgl32.Vec3{0, 0, 10}
	if got := cc.Position(); !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestControllerAutoRotate(t *testing.T) {
	cc := newTestController(WithAutoRotate(0.5))
	cc.Update(2, signal.Hand{})
	if got := cc.Azimuth(); math32.Abs(got-1) > 1e-5 {
		t.Errorf("Azimuth() = %v, want 1", got)
	}
	if got := cc.Position().Len(); math32.Abs(got-10) > 1e-4 {
		t.Errorf("|Position()| = %v, want 10", got)
	}
}

func TestHandBiasIgnoredWhenInactive(t *testing.T) {
	cc := newTestController()
	for range 60 {
		cc.Update(1.0/60, signal.Hand{X: 1, Y: 1, Active: false})
	}
	az, el := cc.HandBias()
	if az != 0 || el != 0 {
		t.Errorf("HandBias() = (%v, %v), want (0, 0)", az, el)
	}
}

func TestHandBiasConvergesAndRelaxes(t *testing.T) {
	cc := newTestController(WithHandRange(0.8, 0.4), WithHandRate(3))
	for range 600 {
		cc.Update(1.0/60, signal.Hand{X: 1, Y: -1, Active: true})
	}
	az, el := cc.HandBias()
	if math32.Abs(az-0.8) > 1e-3 || math32.Abs(el+0.4) > 1e-3 {
		t.Errorf("HandBias() = (%v, %v), want (0.8, -0.4)", az, el)
	}

	for range 600 {
		cc.Update(1.0/60, signal.Hand{})
	}
	az, el = cc.HandBias()
	if math32.Abs(az) > 1e-3 || math32.Abs(el) > 1e-3 {
		t.Errorf("HandBias() after release = (%v, %v), want (0, 0)", az, el)
	}
}

func TestHandBiasIsSmooth(t *testing.T) {
	cc := newTestController(WithHandRange(1, 1), WithHandRate(3))
	cc.Update(1.0/60, signal.Hand{X: 1, Active: true})
	az, _ := cc.HandBias()
	// one frame at rate 3 covers 5% of the way
	if az <= 0 || az > 0.06 {
		t.Errorf("first-frame bias = %v, want (0, 0.06]", az)
	}
}

func TestZoomClamps(t *testing.T) {
	cc := newTestController(WithRadiusBounds(5, 20))
	cc.Zoom(-100)
	if got := cc.Radius(); got != 5 {
		t.Errorf("Radius() = %v, want 5", got)
	}
	cc.Zoom(1000)
	if got := cc.Radius(); got != 20 {
		t.Errorf("Radius() = %v, want 20", got)
	}
}

func TestOrbitClampsElevation(t *testing.T) {
	cc := newTestController(WithElevationBounds(-0.2, 1))
	cc.Orbit(0, 5)
	if got := cc.Elevation(); got != 1 {
		t.Errorf("Elevation() = %v, want 1", got)
	}
}

func TestResetGlidesHome(t *testing.T) {
	cc := newTestController(WithResetDuration(1))
	cc.Orbit(1.5, 0.5)
	cc.Zoom(5)
	cc.Reset()
	if !cc.Resetting() {
		t.Fatal("Resetting() = false after Reset()")
	}

	cc.Update(0.5, signal.Hand{})
	if az := cc.Azimuth(); az <= 0 || az >= 1.5 {
		t.Errorf("mid-glide Azimuth() = %v, want in (0, 1.5)", az)
	}

	for range 10 {
		cc.Update(0.1, signal.Hand{})
	}
	if cc.Resetting() {
		t.Error("Resetting() = true after the glide finished")
	}
	if got := cc.Azimuth(); math32.Abs(got) > 1e-5 {
		t.Errorf("Azimuth() = %v, want 0", got)
	}
	if got := cc.Radius(); math32.Abs(got-10) > 1e-5 {
		t.Errorf("Radius() = %v, want 10", got)
	}
}

func TestResetTakesShortWay(t *testing.T) {
	cc := newTestController(WithResetDuration(1))
	cc.Orbit(2*math32.Pi+0.1, 0)
	cc.Reset()
	for range 10 {
		cc.Update(0.1, signal.Hand{})
		if az := cc.Azimuth(); az < -1e-5 || az > 0.1+1e-5 {
			t.Fatalf("Azimuth() = %v, want within [0, 0.1]", az)
		}
	}
}

func TestOrbitCancelsReset(t *testing.T) {
	cc := newTestController()
	cc.Orbit(1, 0)
	cc.Reset()
	cc.Orbit(0.1, 0)
	if cc.Resetting() {
		t.Error("Resetting() = true after manual Orbit()")
	}
}

func TestCameraCentersTarget(t *testing.T) {
	cc := newTestController(WithTarget(mgl32.Vec3{0, 3, 0}), WithElevation(0.4))
	cam := NewCamera(WithAspect(16.0/9.0), WithController(cc))

	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 3, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	if math32.Abs(ndc.X()) > 1e-4 || math32.Abs(ndc.Y()) > 1e-4 {
		t.Errorf("target NDC = %v, want centered", ndc)
	}
	if ndc.Z() < 0 || ndc.Z() > 1 {
		t.Errorf("target depth = %v, want within [0, 1]", ndc.Z())
	}
}

func TestCameraUniformBasis(t *testing.T) {
	cc := newTestController(WithAzimuth(0.7), WithElevation(0.3))
	cam := NewCamera(WithController(cc))
	u := cam.Uniform()

	forward := cc.Target().Sub(cc.Position()).Normalize()
	if d := u.Right.Dot(forward); math32.Abs(d) > 1e-4 {
		t.Errorf("Right·forward = %v, want 0", d)
	}
	if d := u.Up.Dot(forward); math32.Abs(d) > 1e-4 {
		t.Errorf("Up·forward = %v, want 0", d)
	}
	if !u.Position.ApproxEqualThreshold(cc.Position(), 1e-5) {
		t.Errorf("Position = %v, want %v", u.Position, cc.Position())
	}
	if got := len(u.Marshal()); got != GPUCameraUniformSize {
		t.Errorf("len(Marshal()) = %d, want %d", got, GPUCameraUniformSize)
	}
}

func TestCameraUpdateMovesWithHand(t *testing.T) {
	cc := newTestController()
	cam := NewCamera(WithController(cc))
	before := cam.Position()
	for range 120 {
		cam.Update(1.0/60, signal.Hand{X: 1, Active: true})
	}
	if cam.Position().ApproxEqualThreshold(before, 1e-3) {
		t.Error("camera did not move under an active hand")
	}
}

func TestSetAspectIgnoresDegenerate(t *testing.T) {
	cam := NewCamera(WithAspect(2))
	cam.SetAspect(0)
	if got := cam.Aspect(); got != 2 {
		t.Errorf("Aspect() = %v, want 2", got)
	}
}
