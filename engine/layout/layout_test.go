package layout

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func treeOptions() TreeOptions {
	return TreeOptions{
		Height:        14,
		Radius:        5.5,
		Exponent:      1.4,
		ScatterRadius: 18,
		ScaleMin:      0.6,
		ScaleMax:      1.2,
		Palette:       []mgl32.Vec3{{1, 0, 0}, {1, 0.8, 0.2}},
	}
}

func TestTreeCountAndFinite(t *testing.T) {
	for _, count := range []int{0, 1, 2, 500} {
		p := Tree(newRNG(1), count, treeOptions())
		if p.Len() != count {
			t.Errorf("Tree(%d).Len() = %d", count, p.Len())
		}
		if p.Shape().Count != count {
			t.Errorf("Tree(%d).Shape().Count = %d", count, p.Shape().Count)
		}
		for i := 0; i < p.Len(); i++ {
			e := p.At(i)
			if !common.IsFinite(e.Formed) || !common.IsFinite(e.Scattered) {
				t.Fatalf("element %d not finite: %+v", i, e)
			}
		}
	}
}

func TestTreeNegativeCountIsEmpty(t *testing.T) {
	if n := Tree(newRNG(1), -3, treeOptions()).Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}

func TestConeSilhouette(t *testing.T) {
	for _, spiral := range []bool{false, true} {
		opts := treeOptions()
		opts.Spiral = spiral
		p := Tree(newRNG(7), 5000, opts)
		for i := 0; i < p.Len(); i++ {
			f := p.At(i).Formed
			r := math32.Hypot(f.X(), f.Z())
			limit := ConeRadiusAt(opts.Height, opts.Radius, f.Y())
			if r > limit+1e-4 {
				t.Fatalf("spiral=%v element %d: r = %v exceeds silhouette %v at y = %v", spiral, i, r, limit, f.Y())
			}
			if f.Y() < -opts.Height/2-1e-4 || f.Y() > opts.Height/2+1e-4 {
				t.Fatalf("element %d: y = %v outside cone height", i, f.Y())
			}
		}
	}
}

func TestConeHollowCore(t *testing.T) {
	opts := treeOptions()
	opts.MinRadiusFraction = 0.9
	p := Tree(newRNG(3), 2000, opts)
	for i := 0; i < p.Len(); i++ {
		f := p.At(i).Formed
		r := math32.Hypot(f.X(), f.Z())
		limit := ConeRadiusAt(opts.Height, opts.Radius, f.Y())
		if r < 0.9*limit-1e-4 {
			t.Fatalf("element %d: r = %v below hollow core %v", i, r, 0.9*limit)
		}
	}
}

func TestConeMassBiasedTowardBase(t *testing.T) {
	p := Tree(newRNG(5), 10000, treeOptions())
	below := 0
	for i := 0; i < p.Len(); i++ {
		if p.At(i).Formed.Y() < 0 {
			below++
		}
	}
	// U^1.4 < 0.5 with probability 0.5^(1/1.4) ~ 0.61
	if frac := float32(below) / float32(p.Len()); frac < 0.57 || frac > 0.65 {
		t.Errorf("lower half fraction = %v, want ~0.61", frac)
	}
}

func TestSpiralAzimuth(t *testing.T) {
	opts := treeOptions()
	opts.Spiral = true
	p := Tree(newRNG(9), 8, opts)
	for i := 0; i < p.Len(); i++ {
		f := p.At(i).Formed
		if math32.Hypot(f.X(), f.Z()) < 1e-3 {
			continue
		}
		got := math32.Atan2(f.Z(), f.X())
		want := math32.Mod(float32(i)*GoldenAngle, 2*math32.Pi)
		if want > math32.Pi {
			want -= 2 * math32.Pi
		}
		if math32.Abs(got-want) > 1e-3 {
			t.Errorf("element %d azimuth = %v, want %v", i, got, want)
		}
	}
}

func TestTiltReplacesRotation(t *testing.T) {
	opts := treeOptions()
	opts.Tilt = 0.1
	p := Tree(newRNG(2), 100, opts)
	for i := 0; i < p.Len(); i++ {
		r := p.At(i).Rotation
		if r.X() != 0 || r.Y() != 0 || math32.Abs(r.Z()) > 0.1 {
			t.Fatalf("element %d rotation = %v, want roll within 0.1", i, r)
		}
	}
}

func TestSphereUniformVolume(t *testing.T) {
	const (
		n      = 20000
		radius = 10
		bins   = 10
	)
	rng := newRNG(42)
	counts := make([]int, bins)
	for i := 0; i < n; i++ {
		p := SpherePoint(rng, radius)
		r := p.Len()
		if r > radius+1e-3 {
			t.Fatalf("sample %d: r = %v exceeds radius", i, r)
		}
		// (r/R)^3 is uniform on [0,1] under uniform-volume sampling
		u := math32.Pow(r/radius, 3)
		b := int(u * bins)
		if b == bins {
			b--
		}
		counts[b]++
	}
	for b, c := range counts {
		frac := float32(c) / n
		if math32.Abs(frac-0.1) > 0.015 {
			t.Errorf("bin %d fraction = %v, want 0.1 +- 0.015", b, frac)
		}
	}
}

func TestCloud(t *testing.T) {
	center := mgl32.Vec3{0, 5, 0}
	pts := Cloud(newRNG(1), 300, 4, center)
	if len(pts) != 300 {
		t.Fatalf("len = %d, want 300", len(pts))
	}
	for _, p := range pts {
		if p.Sub(center).Len() > 4+1e-3 {
			t.Fatalf("point %v outside ball", p)
		}
	}
	if Cloud(newRNG(1), 0, 4, center) != nil {
		t.Error("Cloud(0) should be nil")
	}
}

func TestMoundScenario(t *testing.T) {
	p := Mound(newRNG(11), 80, MoundOptions{Radius: 6, FloorY: -6, ScatterRadius: 15})
	if p.Len() != 80 {
		t.Fatalf("Len() = %d, want 80", p.Len())
	}
	for i := 0; i < p.Len(); i++ {
		f := p.At(i).Formed
		if f.Y() < -6 || f.Y() > -6+2.5 {
			t.Errorf("element %d: y = %v outside [-6, -3.5]", i, f.Y())
		}
		if r := math32.Hypot(f.X(), f.Z()); r > 6+1e-4 {
			t.Errorf("element %d: r = %v exceeds 6", i, r)
		}
		if y := f.Y() + 6; y > PileHeightAt(math32.Hypot(f.X(), f.Z()), 6, 2.5)+1e-4 {
			t.Errorf("element %d above the pile profile", i)
		}
	}
}

func TestMoundCountAndFinite(t *testing.T) {
	for _, count := range []int{-2, 0, 1, 2, 80} {
		p := Mound(newRNG(3), count, MoundOptions{Radius: 6, FloorY: -6, ScatterRadius: 15})
		want := max(count, 0)
		if p.Len() != want {
			t.Errorf("Mound(%d).Len() = %d, want %d", count, p.Len(), want)
		}
		if p.Shape().Count != want {
			t.Errorf("Mound(%d).Shape().Count = %d, want %d", count, p.Shape().Count, want)
		}
		for i := 0; i < p.Len(); i++ {
			e := p.At(i)
			if !common.IsFinite(e.Formed) || !common.IsFinite(e.Scattered) {
				t.Fatalf("Mound(%d) element %d not finite: %+v", count, i, e)
			}
		}
	}
}

func TestZeroHeightCollapsesOntoAxis(t *testing.T) {
	tree := Tree(newRNG(1), 4, TreeOptions{Height: 0, Radius: 5, ScatterRadius: 10})
	if tree.Len() != 4 {
		t.Fatalf("Tree Len() = %d, want 4", tree.Len())
	}
	for i := 0; i < tree.Len(); i++ {
		f := tree.At(i).Formed
		if !common.IsFinite(f) {
			t.Fatalf("tree element %d formed = %v", i, f)
		}
		if f.X() != 0 || f.Z() != 0 {
			t.Errorf("tree element %d formed = %v, want on the axis", i, f)
		}
	}

	opts := particleOptions()
	opts.Height = 0
	b := Particles(newRNG(1), 64, opts, nil)
	for i := 0; i < b.Len(); i++ {
		if f := b.FormedAt(i); !common.IsFinite(f) || f.X() != 0 || f.Z() != 0 {
			t.Fatalf("particle %d formed = %v, want finite on the axis", i, f)
		}
	}

	if r := ConeRadiusAt(0, 5, 0); r != 0 {
		t.Errorf("ConeRadiusAt(0, 5, 0) = %v, want 0", r)
	}
}

func TestPopulationIsACopy(t *testing.T) {
	items := []DualPosition{{Formed: mgl32.Vec3{1, 2, 3}}}
	p := NewPopulation(Shape{}, items)
	items[0].Formed = mgl32.Vec3{}
	if p.At(0).Formed != (mgl32.Vec3{1, 2, 3}) {
		t.Error("population aliases caller slice")
	}
}

func TestPhaseOf(t *testing.T) {
	for i := 0; i < 100; i++ {
		ph := PhaseOf(i)
		if ph < 0 || ph >= 2*math32.Pi {
			t.Fatalf("PhaseOf(%d) = %v out of range", i, ph)
		}
		if i > 0 && math32.Abs(ph-PhaseOf(i-1)) < 0.1 {
			t.Errorf("adjacent phases %d/%d too close", i-1, i)
		}
	}
}

func particleOptions() ParticleOptions {
	return ParticleOptions{
		Height:            14,
		Radius:            6,
		ScatterRadius:     20,
		Palette:           []mgl32.Vec3{{0.1, 0.6, 0.3}},
		SizeMin:           0.05,
		SizeMax:           0.1,
		AccentProbability: 0.1,
		AccentPalette:     []mgl32.Vec3{{1, 0.85, 0.3}},
		AccentSizeMin:     0.2,
		AccentSizeMax:     0.3,
		ChunkSize:         256,
	}
}

func TestParticlesDeterministicAcrossPool(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(4, 64, time.Second)
	serial := Particles(newRNG(99), 3000, particleOptions(), nil)
	parallel := Particles(newRNG(99), 3000, particleOptions(), pool)

	if serial.Len() != 3000 || parallel.Len() != 3000 {
		t.Fatalf("lengths = %d/%d, want 3000", serial.Len(), parallel.Len())
	}
	for i := range serial.Formed {
		if serial.Formed[i] != parallel.Formed[i] || serial.Scattered[i] != parallel.Scattered[i] {
			t.Fatalf("index %d differs between serial and pooled generation", i)
		}
	}
	if serial.Accents != parallel.Accents {
		t.Errorf("accents = %d/%d", serial.Accents, parallel.Accents)
	}
}

func TestParticlesAttributes(t *testing.T) {
	opts := particleOptions()
	b := Particles(newRNG(4), 10000, opts, nil)
	if len(b.Formed) != 30000 || len(b.Colors) != 30000 || len(b.Phases) != 10000 {
		t.Fatalf("buffer lengths wrong: %d %d %d", len(b.Formed), len(b.Colors), len(b.Phases))
	}
	accents := 0
	for i := 0; i < b.Len(); i++ {
		f := b.FormedAt(i)
		if !common.IsFinite(f) || !common.IsFinite(b.ScatteredAt(i)) {
			t.Fatalf("particle %d not finite", i)
		}
		if r := math32.Hypot(f.X(), f.Z()); r > ConeRadiusAt(opts.Height, opts.Radius, f.Y())+1e-4 {
			t.Fatalf("particle %d outside cone", i)
		}
		if b.ColorAt(i) == opts.AccentPalette[0] {
			accents++
			if b.Sizes[i] < opts.AccentSizeMin || b.Sizes[i] > opts.AccentSizeMax {
				t.Errorf("accent %d size = %v", i, b.Sizes[i])
			}
		} else if b.Sizes[i] < opts.SizeMin || b.Sizes[i] > opts.SizeMax {
			t.Errorf("particle %d size = %v", i, b.Sizes[i])
		}
	}
	if accents != b.Accents {
		t.Errorf("counted %d accents, buffer reports %d", accents, b.Accents)
	}
	if frac := float32(accents) / 10000; frac < 0.08 || frac > 0.12 {
		t.Errorf("accent fraction = %v, want ~0.1", frac)
	}
}

func TestParticlesEmpty(t *testing.T) {
	if b := Particles(newRNG(1), 0, particleOptions(), nil); b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
	if b := Particles(newRNG(1), 1, particleOptions(), nil); b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestHalo(t *testing.T) {
	opts := HaloOptions{
		Radius:        10,
		Center:        mgl32.Vec3{0, 5, 0},
		ScatterRadius: 40,
		SizeMin:       2,
		SizeMax:       4,
	}
	b := Halo(newRNG(8), 500, opts)
	if b.Len() != 500 {
		t.Fatalf("Len() = %d, want 500", b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		if d := b.FormedAt(i).Sub(opts.Center).Len(); d > opts.Radius+1e-4 {
			t.Fatalf("formed %d at distance %v, want <= %v", i, d, opts.Radius)
		}
		if d := b.ScatteredAt(i).Len(); d > opts.ScatterRadius+1e-4 {
			t.Fatalf("scattered %d at distance %v, want <= %v", i, d, opts.ScatterRadius)
		}
		if b.Sizes[i] < 2 || b.Sizes[i] > 4 {
			t.Errorf("size %d = %v, want [2, 4]", i, b.Sizes[i])
		}
		if b.Phases[i] != PhaseOf(i) {
			t.Errorf("phase %d = %v, want %v", i, b.Phases[i], PhaseOf(i))
		}
	}
}

func TestHaloCountAndFinite(t *testing.T) {
	opts := HaloOptions{Radius: 10, ScatterRadius: 40}
	for _, count := range []int{-1, 0, 1, 2, 50} {
		b := Halo(newRNG(8), count, opts)
		if want := max(count, 0); b.Len() != want {
			t.Errorf("Halo(%d).Len() = %d, want %d", count, b.Len(), want)
		}
		for i := 0; i < b.Len(); i++ {
			if !common.IsFinite(b.FormedAt(i)) || !common.IsFinite(b.ScatteredAt(i)) {
				t.Fatalf("Halo(%d) particle %d not finite", count, i)
			}
		}
	}
}
