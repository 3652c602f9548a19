package layout

import (
	"math/rand"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TreeOptions configures the cone/spiral formed layout and its scattered cloud.
type TreeOptions struct {
	Height            float32
	Radius            float32
	Exponent          float32 // defaults to 1.3
	MinRadiusFraction float32

	// Spiral places element i at azimuth i*GoldenAngle instead of a random angle,
	// giving even coverage at low counts.
	Spiral bool

	// Offset is added to every formed position after re-centring.
	Offset mgl32.Vec3

	ScatterRadius float32
	ScatterCenter mgl32.Vec3

	ScaleMin float32
	ScaleMax float32
	Palette  []mgl32.Vec3

	// Tilt, when non-zero, replaces the random base rotation with a small roll in
	// [-Tilt, Tilt]. Used by elements that hang upright.
	Tilt float32
}

// Tree generates count elements on a cone (formed) paired with a spherical cloud
// (scattered).
//
// Parameters:
//   - rng: source of uniform randomness
//   - count: number of elements; <= 0 yields an empty population
//   - opts: shape options
//
// Returns:
//   - Population: the generated arena
func Tree(rng *rand.Rand, count int, opts TreeOptions) Population {
	shape := Shape{Height: opts.Height, Radius: opts.Radius, FloorOffset: opts.Offset.Y()}
	if count <= 0 {
		return NewPopulation(shape, nil)
	}

	cone := ConeSample{
		Height:            opts.Height,
		Radius:            opts.Radius,
		Exponent:          common.Coalesce(opts.Exponent, 1.3),
		MinRadiusFraction: opts.MinRadiusFraction,
	}
	scaleMin := common.Coalesce(opts.ScaleMin, 1)
	scaleMax := common.Coalesce(opts.ScaleMax, scaleMin)

	items := make([]DualPosition, count)
	for i := range items {
		var azimuth float32
		if opts.Spiral {
			azimuth = float32(i) * GoldenAngle
		} else {
			azimuth = uniform(rng) * 2 * math32.Pi
		}

		rotation := randomEuler(rng)
		if opts.Tilt != 0 {
			rotation = mgl32.Vec3{0, 0, between(rng, -opts.Tilt, opts.Tilt)}
		}

		items[i] = DualPosition{
			Formed:    ConePoint(rng, cone, azimuth).Add(opts.Offset),
			Scattered: SpherePoint(rng, opts.ScatterRadius).Add(opts.ScatterCenter),
			Rotation:  rotation,
			Scale:     between(rng, scaleMin, scaleMax),
			Color:     pick(rng, opts.Palette),
			Phase:     PhaseOf(i),
		}
	}
	return NewPopulation(shape, items)
}

// Cloud samples count points uniformly by volume in a ball around center.
func Cloud(rng *rand.Rand, count int, radius float32, center mgl32.Vec3) []mgl32.Vec3 {
	if count <= 0 {
		return nil
	}
	out := make([]mgl32.Vec3, count)
	for i := range out {
		out[i] = SpherePoint(rng, radius).Add(center)
	}
	return out
}

// MoundOptions configures the floor pile layout.
type MoundOptions struct {
	Radius     float32
	FloorY     float32
	PeakHeight float32 // defaults to 2.5

	ScatterRadius float32
	ScatterCenter mgl32.Vec3

	ScaleMin float32
	ScaleMax float32
	Palette  []mgl32.Vec3
}

// Mound generates count elements heaped on the floor (formed) paired with a
// spherical cloud (scattered). Base rotations are fully random; floor-settling
// consumers keep only the yaw.
func Mound(rng *rand.Rand, count int, opts MoundOptions) Population {
	peak := common.Coalesce(opts.PeakHeight, 2.5)
	shape := Shape{Height: peak, Radius: opts.Radius, FloorOffset: opts.FloorY}
	if count <= 0 {
		return NewPopulation(shape, nil)
	}

	scaleMin := common.Coalesce(opts.ScaleMin, 1)
	scaleMax := common.Coalesce(opts.ScaleMax, scaleMin)

	items := make([]DualPosition, count)
	for i := range items {
		items[i] = DualPosition{
			Formed:    MoundPoint(rng, opts.Radius, opts.FloorY, peak),
			Scattered: SpherePoint(rng, opts.ScatterRadius).Add(opts.ScatterCenter),
			Rotation:  randomEuler(rng),
			Scale:     between(rng, scaleMin, scaleMax),
			Color:     pick(rng, opts.Palette),
			Phase:     PhaseOf(i),
		}
	}
	return NewPopulation(shape, items)
}
