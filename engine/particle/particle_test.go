package particle

import (
	"encoding/binary"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func attrs() Attributes {
	return Attributes{
		Formed:    mgl32.Vec3{0, 4, 1},
		Scattered: mgl32.Vec3{12, -3, 7},
		Size:      0.2,
		Color:     mgl32.Vec3{1, 0, 0},
		Phase:     1.3,
	}
}

func TestEvaluateEndpointsWithoutDrift(t *testing.T) {
	a := attrs()
	u := GPUParticleUniforms{Time: 5, SizeScale: 1, ScatterSize: 2, ScatterAlpha: 0.5}

	u.Progress = 0
	if v := Evaluate(a, u); !v.Position.ApproxEqual(a.Scattered) {
		t.Errorf("progress 0 position = %v, want %v", v.Position, a.Scattered)
	}
	u.Progress = 1
	if v := Evaluate(a, u); !v.Position.ApproxEqual(a.Formed) {
		t.Errorf("progress 1 position = %v, want %v", v.Position, a.Formed)
	}
}

func TestEvaluateMatchesCPUBlend(t *testing.T) {
	a := attrs()
	for i := 0; i <= 20; i++ {
		raw := float32(i) / 20
		u := GPUParticleUniforms{Progress: morph.EaseQuint(raw), SizeScale: 1, ScatterSize: 1, ScatterAlpha: 1}
		got := Evaluate(a, u).Position
		want := morph.Blend(a.Scattered, a.Formed, morph.EaseQuint(raw))
		if !got.ApproxEqualThreshold(want, 1e-4) {
			t.Errorf("raw %v: evaluator %v, CPU blend %v", raw, got, want)
		}
	}
}

func TestEvaluateDriftShrinksWhenFormed(t *testing.T) {
	a := attrs()
	u := GPUParticleUniforms{Time: 2, DriftSpeed: 1, DriftAmplitude: 0.5, SizeScale: 1, ScatterSize: 1, ScatterAlpha: 1}

	u.Progress = 0
	loose := Evaluate(a, u).Position.Sub(a.Scattered).Len()
	u.Progress = 1
	tight := Evaluate(a, u).Position.Sub(a.Formed).Len()

	if math32.Abs(tight-0.3*loose) > 1e-4 {
		t.Errorf("formed drift = %v, want 0.3 * scattered drift %v", tight, loose)
	}
}

func TestEvaluateSizeAndAlpha(t *testing.T) {
	a := attrs()
	u := GPUParticleUniforms{SizeScale: 2, ScatterSize: 1.5, ScatterAlpha: 0.4, Twinkle: 0.3}
	for i := 0; i <= 10; i++ {
		u.Time = float32(i) * 0.37
		u.Progress = float32(i) / 10
		v := Evaluate(a, u)
		if v.Alpha < 0 || v.Alpha > 1 {
			t.Errorf("alpha = %v out of [0, 1]", v.Alpha)
		}
		want := a.Size * 2 * (1.5 + (1-1.5)*u.Progress)
		if math32.Abs(v.Size-want) > 1e-5 {
			t.Errorf("size = %v, want %v", v.Size, want)
		}
	}
}

func TestCloudUploadsEasedProgress(t *testing.T) {
	buf := layout.Particles(rand.New(rand.NewSource(1)), 10, layout.ParticleOptions{Height: 4, Radius: 2, ScatterRadius: 6}, nil)
	c := NewCloud(buf, CloudParams{Rate: 2, SizeScale: 1})
	var u GPUParticleUniforms
	for i := 0; i < 30; i++ {
		u = c.Update(1, 1.0/60, float32(i)/60)
	}
	if u.Progress != morph.EaseQuint(c.State().Progress()) {
		t.Errorf("uploaded progress %v, want eased %v", u.Progress, morph.EaseQuint(c.State().Progress()))
	}
	if u.Time != float32(29)/60 {
		t.Errorf("time = %v", u.Time)
	}
	if c.Len() != 10 || c.Uniforms() != u {
		t.Errorf("Len/Uniforms mismatch")
	}
	if AttributesAt(c.Buffer(), 3).Formed != buf.FormedAt(3) {
		t.Error("AttributesAt reads the wrong slot")
	}
}

func TestUniformLayouts(t *testing.T) {
	p := GPUParticleUniforms{Time: 1, Progress: 2, Twinkle: 8}
	b := p.Marshal()
	if len(b) != 32 || p.Size() != 32 {
		t.Fatalf("particle uniforms = %d bytes, want 32", len(b))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[4:])); got != 2 {
		t.Errorf("progress at offset 4 = %v", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[28:])); got != 8 {
		t.Errorf("twinkle at offset 28 = %v", got)
	}

	s := GPUSnowUniforms{Gust: 3, SizeScale: 5}
	sb := s.Marshal()
	if len(sb) != 32 || math.Float32frombits(binary.LittleEndian.Uint32(sb[12:])) != 3 {
		t.Errorf("snow uniforms layout wrong")
	}
}

func TestVertexLayouts(t *testing.T) {
	layouts := ParticleVertexLayouts()
	if len(layouts) != 5 {
		t.Fatalf("got %d particle layouts, want 5", len(layouts))
	}
	for i, l := range layouts {
		if l.Attributes[0].ShaderLocation != uint32(i) {
			t.Errorf("slot %d bound to location %d", i, l.Attributes[0].ShaderLocation)
		}
	}
	if len(SnowVertexLayouts()) != 4 {
		t.Errorf("snow layouts = %d, want 4", len(SnowVertexLayouts()))
	}
}

func TestShadersShareBlend(t *testing.T) {
	for name, src := range map[string]string{"foliage": FoliageShaderSource, "haze": HazeShaderSource} {
		if !strings.Contains(src, "//@morph:include morph_blend") {
			t.Errorf("%s does not include the shared blend", name)
		}
		if !strings.Contains(src, "morph_position(") {
			t.Errorf("%s does not call morph_position", name)
		}
	}
	if !strings.Contains(MorphBlendSource, "fn morph_position") {
		t.Error("blend source missing morph_position")
	}
	if strings.Contains(SnowShaderSource, "morph_blend") {
		t.Error("snow must not depend on the morph blend")
	}
}

func snowOptions() SnowOptions {
	return SnowOptions{
		Count:        500,
		HalfExtent:   15,
		Top:          12,
		Bottom:       -8,
		SpeedMin:     0.5,
		SpeedMax:     1.5,
		SizeMin:      0.03,
		SizeMax:      0.08,
		Wind:         mgl32.Vec2{1, 1},
		WindStrength: 1.5,
		Sway:         0.3,
	}
}

func TestSnowStaysInColumn(t *testing.T) {
	s := NewSnow(rand.New(rand.NewSource(8)), snowOptions())
	if s.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", s.Len())
	}
	for step := 0; step < 200; step++ {
		u := s.Uniforms(float32(step) * 0.25)
		for i := 0; i < s.Len(); i++ {
			p := s.PositionAt(i, u)
			if p.Y() < -8-1e-3 || p.Y() > 12+1e-3 {
				t.Fatalf("step %d flake %d: y = %v outside column", step, i, p.Y())
			}
		}
	}
}

func TestSnowStartsAtOriginAndFalls(t *testing.T) {
	opts := snowOptions()
	opts.Sway = 0
	opts.WindStrength = 0
	s := NewSnow(rand.New(rand.NewSource(2)), opts)

	u0 := s.Uniforms(0)
	u1 := s.Uniforms(0.1)
	for i := 0; i < s.Len(); i++ {
		origin := mgl32.Vec3{s.Origins[3*i], s.Origins[3*i+1], s.Origins[3*i+2]}
		if p := s.PositionAt(i, u0); !p.ApproxEqualThreshold(origin, 1e-3) {
			t.Fatalf("flake %d at t=0: %v, want origin %v", i, p, origin)
		}
		a, b := s.PositionAt(i, u0), s.PositionAt(i, u1)
		// either it fell by speed*dt or it wrapped to the top
		fell := a.Y() - b.Y()
		if math32.Abs(fell-s.Speeds[i]*0.1) > 1e-3 && b.Y() < a.Y() {
			t.Errorf("flake %d fell %v, want %v", i, fell, s.Speeds[i]*0.1)
		}
	}
}

func TestSnowIgnoresMorph(t *testing.T) {
	s := NewSnow(rand.New(rand.NewSource(2)), snowOptions())
	a := s.Uniforms(3)
	b := s.Uniforms(3)
	if a != b {
		t.Error("snow uniforms depend on something besides time")
	}
	if a.Gust < 0 {
		t.Errorf("gust = %v, want >= 0", a.Gust)
	}
}
