package engine

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/config"
	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/scene"
	"github.com/Carmen-Shannon/oxy-morph/engine/signal"
)

func newTestScene(t *testing.T, active bool) scene.Scene {
	t.Helper()
	cfg := config.Default()
	cfg.Foliage.Count = 200
	cfg.Haze.Count = 20
	cfg.Ornaments.Count = 10
	cfg.Gifts.Count = 4
	cfg.Photos.Count = 4
	cfg.Photos.Active = 2
	cfg.Snow.Count = 10

	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	return scene.NewScene("tree", cam,
		scene.WithActive(active),
		scene.WithComponents(scene.Compose(cfg, nil)...),
	)
}

func TestStepClampsDeltaTime(t *testing.T) {
	e := NewEngine(WithMaxDeltaTime(0.05))

	tests := []struct {
		name string
		dt   float32
		want float32
	}{
		{"normal", 0.016, 0.016},
		{"spike", 2, 0.05},
		{"negative", -1, 0},
		{"nan", float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Step(tt.dt).DT; got != tt.want {
				t.Errorf("Step(%v).DT = %v, want %v", tt.dt, got, tt.want)
			}
		})
	}
	if got := e.Elapsed(); math.Abs(float64(got-0.066)) > 1e-6 {
		t.Errorf("Elapsed() = %v, want 0.066", got)
	}
}

func TestStepSnapshotsSignal(t *testing.T) {
	e := NewEngine()
	e.Signal().SetState(signal.StateFormed)
	e.Signal().SetHand(signal.Hand{X: 2, Y: -0.5, Active: true})

	f := e.Step(0.016)
	if f.Target() != 1 {
		t.Errorf("Target() = %v, want 1", f.Target())
	}
	if f.Signal.Hand.X != 1 || !f.Signal.Hand.Active {
		t.Errorf("hand = %+v, want clamped active hand", f.Signal.Hand)
	}
}

func TestStepUpdatesActiveScenesOnly(t *testing.T) {
	active := newTestScene(t, true)
	idle := newTestScene(t, false)
	e := NewEngine(WithScene(0, active), WithScene(1, idle))
	e.Signal().SetState(signal.StateFormed)

	for range 30 {
		e.Step(1.0 / 60)
	}
	if p := active.Component("gifts").Progress(); p <= 0 {
		t.Errorf("active scene progress = %v, want > 0", p)
	}
	if p := idle.Component("gifts").Progress(); p != 0 {
		t.Errorf("inactive scene progress = %v, want 0", p)
	}
}

func TestStepFrameCarriesCameraEye(t *testing.T) {
	s := newTestScene(t, true)
	e := NewEngine(WithScene(0, s))

	f := e.Step(0.5)
	if want := s.Camera().Position(); f.Eye != want {
		t.Errorf("Eye = %v, want camera position %v", f.Eye, want)
	}
}

func TestTickCallbackSeesFrame(t *testing.T) {
	e := NewEngine()
	var got []float32
	e.SetTickCallback(func(f scene.Frame) {
		got = append(got, f.Elapsed)
	})
	e.Step(0.01)
	e.Step(0.02)
	if len(got) != 2 || math.Abs(float64(got[1]-0.03)) > 1e-6 {
		t.Errorf("callback elapsed = %v, want [0.01 0.03]", got)
	}
}

func TestRenderWithoutRendererIsNoop(t *testing.T) {
	e := NewEngine(WithScene(0, newTestScene(t, true)))
	if err := e.Render(); err != nil {
		t.Errorf("Render() = %v, want nil", err)
	}
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine()
	s := newTestScene(t, true)
	e.AddScene(3, s)
	if e.Scene(3) != s || len(e.Scenes()) != 1 {
		t.Fatal("AddScene did not register")
	}
	e.RemoveScene(3)
	if e.Scene(3) != nil {
		t.Error("RemoveScene left the scene registered")
	}
}

func TestQuitWithoutWindow(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()
}
