package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDampFactorNeverOvershoots(t *testing.T) {
	tests := []struct {
		rate, dt, want float32
	}{
		{2, 1.0 / 60, 2.0 / 60},
		{2, 10, 1},
		{2, 0, 0},
		{2, -1, 0},
		{0, 1, 0},
	}
	for _, tt := range tests {
		if got := DampFactor(tt.rate, tt.dt); got != tt.want {
			t.Errorf("DampFactor(%v, %v) = %v, want %v", tt.rate, tt.dt, got, tt.want)
		}
	}
}

func TestDampApproachesTarget(t *testing.T) {
	v := float32(10)
	for i := 0; i < 600; i++ {
		next := Damp(v, 0, 2, 1.0/60)
		if next > v || next < 0 {
			t.Fatalf("step %d: Damp moved from %v to %v", i, v, next)
		}
		v = next
	}
	if v > 0.01 {
		t.Errorf("after 10s v = %v, want < 0.01", v)
	}
}

func TestModelMatrixTranslatesOrigin(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.QuatIdent(), 2)
	p := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !p.Vec3().ApproxEqual(mgl32.Vec3{1, 2, 3}) {
		t.Errorf("origin maps to %v, want (1,2,3)", p)
	}
	q := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !q.Vec3().ApproxEqual(mgl32.Vec3{3, 2, 3}) {
		t.Errorf("unit x maps to %v, want (3,2,3)", q)
	}
}

func TestChunks(t *testing.T) {
	spans := Chunks(10, 4)
	want := []Span{{0, 4}, {4, 8}, {8, 10}}
	if len(spans) != len(want) {
		t.Fatalf("len = %d, want %d", len(spans), len(want))
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, spans[i], want[i])
		}
	}
	if Chunks(0, 4) != nil {
		t.Errorf("Chunks(0, 4) should be nil")
	}
	if got := Chunks(3, 0); len(got) != 1 || got[0] != (Span{0, 3}) {
		t.Errorf("Chunks(3, 0) = %v, want single span", got)
	}
}

func TestIsFinite(t *testing.T) {
	var zero float32
	if !IsFinite(mgl32.Vec3{1, 2, 3}) {
		t.Error("finite vector reported non-finite")
	}
	if IsFinite(mgl32.Vec3{zero / zero, 0, 0}) {
		t.Error("NaN vector reported finite")
	}
}
