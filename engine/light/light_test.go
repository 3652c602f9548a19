package light

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDirectionIsNormalized(t *testing.T) {
	l := NewLight(WithDirection(mgl32.Vec3{0, -4, 0}))
	if got := l.Direction(); !got.ApproxEqual(mgl32.Vec3{0, -1, 0}) {
		t.Errorf("Direction() = %v, want [0 -1 0]", got)
	}

	l.SetDirection(mgl32.Vec3{})
	if got := l.Direction(); !got.ApproxEqual(mgl32.Vec3{0, -1, 0}) {
		t.Errorf("zero SetDirection changed direction to %v", got)
	}
}

func TestIntensityClamps(t *testing.T) {
	l := NewLight(WithIntensity(-2))
	if l.Intensity() != 0 {
		t.Errorf("Intensity() = %v, want 0", l.Intensity())
	}
	l.SetIntensity(1.5)
	if l.Intensity() != 1.5 {
		t.Errorf("Intensity() = %v, want 1.5", l.Intensity())
	}
}

func TestUniformLayout(t *testing.T) {
	l := NewLight(
		WithDirection(mgl32.Vec3{1, 0, 0}),
		WithColor(mgl32.Vec3{0.5, 0.6, 0.7}),
		WithIntensity(2),
		WithAmbient(mgl32.Vec3{0.1, 0.2, 0.3}),
	)
	u := l.Uniform()
	buf := u.Marshal()
	if len(buf) != u.Size() {
		t.Fatalf("len = %d, want %d", len(buf), u.Size())
	}

	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	checks := []struct {
		name string
		off  int
		want float32
	}{
		{"direction.x", 0, 1},
		{"intensity", 12, 2},
		{"color.g", 20, 0.6},
		{"ambient.b", 40, 0.3},
	}
	for _, c := range checks {
		if got := read(c.off); got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestUniformSourceMatchesLayout(t *testing.T) {
	for _, field := range []string{"direction", "intensity", "color", "ambient"} {
		if !strings.Contains(GPULightUniformSource, field) {
			t.Errorf("LightUniform missing %q", field)
		}
	}
}

func TestBindGroupProvidersAreDistinct(t *testing.T) {
	a, b := NewLight(), NewLight()
	if a.BindGroupProvider().Label() == b.BindGroupProvider().Label() {
		t.Error("two lights share a bind group label")
	}
}
