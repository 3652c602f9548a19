// Package layout generates the paired endpoint tables that every morphing population
// is built from. Each element receives a formed position (cone, spiral or mound) and
// a scattered position (uniform ball) once, at creation time; nothing here is mutated
// afterwards.
//
// All generators take an explicit *rand.Rand so output is reproducible for a seed.
// Geometric parameters are not validated: zero or negative sizes collapse the layout
// and count <= 0 yields an empty population.
package layout

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// GoldenAngle is pi * (3 - sqrt(5)) radians, the azimuth step of a phyllotaxis spiral.
var GoldenAngle = math32.Pi * (3 - math32.Sqrt(5))

// DualPosition is the immutable per-element record of a population.
type DualPosition struct {
	// Formed is the position in the structured layout.
	Formed mgl32.Vec3

	// Scattered is the position in the dispersed cloud.
	Scattered mgl32.Vec3

	// Rotation is the base Euler orientation (radians, XYZ). It is the settle target,
	// and the offset the tumble is added to while in flight.
	Rotation mgl32.Vec3

	// Scale is the per-element base scale, identical in both states.
	Scale float32

	// Color is drawn from the population palette.
	Color mgl32.Vec3

	// Phase desynchronises time-driven effects between neighbours.
	Phase float32
}

// Shape is the population-level geometry the generator was called with.
type Shape struct {
	Count       int
	Height      float32
	Radius      float32
	FloorOffset float32
}

// Population is a fixed-length, insertion-ordered arena of DualPosition records.
// It is a value type with no mutators; components keep their mutable morph state
// in parallel arrays indexed identically.
type Population struct {
	shape Shape
	items []DualPosition
}

// NewPopulation wraps items into a Population. The slice is copied.
func NewPopulation(shape Shape, items []DualPosition) Population {
	owned := make([]DualPosition, len(items))
	copy(owned, items)
	shape.Count = len(owned)
	return Population{shape: shape, items: owned}
}

// Len returns the number of elements.
func (p Population) Len() int {
	return len(p.items)
}

// At returns a copy of element i.
func (p Population) At(i int) DualPosition {
	return p.items[i]
}

// Shape returns the generation parameters.
func (p Population) Shape() Shape {
	return p.shape
}

// PhaseOf returns a stable phase in [0, 2*pi) for a generation index. Consecutive
// indices are spread by the golden ratio so adjacent elements never pulse together.
func PhaseOf(index int) float32 {
	const invPhi = 0.6180339887
	f := float32(index) * invPhi
	return (f - math32.Floor(f)) * 2 * math32.Pi
}

func uniform(rng *rand.Rand) float32 {
	return rng.Float32()
}

func between(rng *rand.Rand, lo, hi float32) float32 {
	return lo + (hi-lo)*rng.Float32()
}

func pick(rng *rand.Rand, palette []mgl32.Vec3) mgl32.Vec3 {
	if len(palette) == 0 {
		return mgl32.Vec3{1, 1, 1}
	}
	return palette[rng.Intn(len(palette))]
}

func randomEuler(rng *rand.Rand) mgl32.Vec3 {
	return mgl32.Vec3{
		uniform(rng) * 2 * math32.Pi,
		uniform(rng) * 2 * math32.Pi,
		uniform(rng) * 2 * math32.Pi,
	}
}
