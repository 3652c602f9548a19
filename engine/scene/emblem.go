package scene

import (
	"github.com/Carmen-Shannon/oxy-morph/config"
	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	emblemTurns        = 2
	emblemSpinDuration = 1.6
	emblemRise         = 10
)

// emblemSpin plays a whole-turn spin around the vertical axis each time the target
// switches to formed. The tween ends on a multiple of 2π so dropping it is seamless.
type emblemSpin struct {
	tween  *gween.Tween
	angle  float32
	target float32
}

func (s *emblemSpin) update(f Frame) {
	target := f.Target()
	if target == 1 && s.target != 1 {
		s.tween = gween.New(0, emblemTurns*2*math32.Pi, emblemSpinDuration, ease.OutBack)
	}
	s.target = target

	if s.tween == nil {
		return
	}
	angle, done := s.tween.Update(f.DT)
	s.angle = angle
	if done {
		s.tween = nil
		s.angle = 0
	}
}

func (s *emblemSpin) apply(_ Frame, _ int, tr morph.Transform) morph.Transform {
	if s.angle != 0 {
		tr.Rotation = mgl32.QuatRotate(s.angle, mgl32.Vec3{0, 1, 0}).Mul(tr.Rotation)
	}
	return tr
}

// NewEmblem builds the single star above the apex. It morphs faster than the rest of
// the scene so it lands first, and spins in on every transition to formed.
func NewEmblem(tree config.TreeConfig, cfg config.EmblemConfig) *Elements {
	top := tree.FloorY + tree.Height
	pop := layout.NewPopulation(
		layout.Shape{Height: cfg.Size, Radius: cfg.Size, FloorOffset: top},
		[]layout.DualPosition{{
			Formed:    mgl32.Vec3{0, top + cfg.Size*0.6, 0},
			Scattered: mgl32.Vec3{0, top + emblemRise, 0},
			Scale:     cfg.Size,
			Color:     cfg.Color,
			Phase:     layout.PhaseOf(0),
		}},
	)
	updater := morph.NewUpdater(pop,
		morph.WithRate(cfg.Rate),
		morph.WithScale(0.6, 1),
		morph.WithPulse(0.25, 1.5),
		morph.WithTumbleSpeed(0.5),
	)

	spin := &emblemSpin{}
	return NewElements("emblem", Star(5, 1, 0.45, 0.3), updater,
		WithFrameHook(spin.update),
		WithDecorator(spin.apply),
	)
}
