package layout

import (
	"log"
	"math/rand"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ParticleOptions configures the bulk particle buffer.
type ParticleOptions struct {
	Height   float32
	Radius   float32
	Exponent float32 // defaults to 1.3
	Offset   mgl32.Vec3

	ScatterRadius float32
	ScatterCenter mgl32.Vec3

	Palette []mgl32.Vec3
	SizeMin float32
	SizeMax float32

	// AccentProbability is the chance each particle joins the accent category,
	// which draws from AccentPalette and the accent size range.
	AccentProbability float32
	AccentPalette     []mgl32.Vec3
	AccentSizeMin     float32
	AccentSizeMax     float32

	// ChunkSize is the number of particles one worker task generates. Defaults to 4096.
	ChunkSize int
}

// ParticleBuffer is the flat, GPU-ready attribute table of a particle population.
// Vector attributes are packed xyz; index i lives at [3i, 3i+3).
type ParticleBuffer struct {
	Formed    []float32
	Scattered []float32
	Sizes     []float32
	Colors    []float32
	Phases    []float32

	// Accents counts particles drawn in the accent category.
	Accents int
}

// Len returns the number of particles.
func (b ParticleBuffer) Len() int {
	return len(b.Sizes)
}

// FormedAt returns the formed position of particle i.
func (b ParticleBuffer) FormedAt(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Formed[3*i], b.Formed[3*i+1], b.Formed[3*i+2]}
}

// ScatteredAt returns the scattered position of particle i.
func (b ParticleBuffer) ScatteredAt(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Scattered[3*i], b.Scattered[3*i+1], b.Scattered[3*i+2]}
}

// ColorAt returns the color of particle i.
func (b ParticleBuffer) ColorAt(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Colors[3*i], b.Colors[3*i+1], b.Colors[3*i+2]}
}

// Particles generates count particles with the cone radial/height math into flat
// buffers. Work is split into chunks; each chunk gets its own generator seeded from
// rng before any task runs, so the result depends only on rng and never on how the
// pool schedules tasks. A nil pool generates every chunk on the calling goroutine.
//
// Parameters:
//   - rng: source of uniform randomness
//   - count: number of particles; <= 0 yields an empty buffer
//   - opts: shape and attribute options
//   - pool: optional worker pool
//
// Returns:
//   - ParticleBuffer: the generated attribute table
func Particles(rng *rand.Rand, count int, opts ParticleOptions, pool worker.DynamicWorkerPool) ParticleBuffer {
	if count <= 0 {
		return ParticleBuffer{}
	}

	buf := ParticleBuffer{
		Formed:    make([]float32, 3*count),
		Scattered: make([]float32, 3*count),
		Sizes:     make([]float32, count),
		Colors:    make([]float32, 3*count),
		Phases:    make([]float32, count),
	}

	spans := common.Chunks(count, common.Coalesce(opts.ChunkSize, 4096))
	seeds := make([]int64, len(spans))
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	accents := make([]int, len(spans))

	if pool == nil {
		for i, span := range spans {
			accents[i] = fillParticles(&buf, span, rand.New(rand.NewSource(seeds[i])), opts)
		}
	} else {
		var wg sync.WaitGroup
		for i, span := range spans {
			wg.Add(1)
			pool.SubmitTask(worker.Task{
				ID: i,
				Do: func() (any, error) {
					defer wg.Done()
					accents[i] = fillParticles(&buf, span, rand.New(rand.NewSource(seeds[i])), opts)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	for _, n := range accents {
		buf.Accents += n
	}
	log.Printf("[Layout] generated %d particles in %d chunks (%d accents)", count, len(spans), buf.Accents)
	return buf
}

// fillParticles writes span into buf. Spans never overlap so concurrent calls are safe.
func fillParticles(buf *ParticleBuffer, span common.Span, rng *rand.Rand, opts ParticleOptions) int {
	cone := ConeSample{
		Height:   opts.Height,
		Radius:   opts.Radius,
		Exponent: common.Coalesce(opts.Exponent, 1.3),
	}
	sizeMin := common.Coalesce(opts.SizeMin, 1)
	sizeMax := common.Coalesce(opts.SizeMax, sizeMin)
	accentMin := common.Coalesce(opts.AccentSizeMin, sizeMax)
	accentMax := common.Coalesce(opts.AccentSizeMax, accentMin)

	accents := 0
	for i := span.Start; i < span.End; i++ {
		formed := ConePoint(rng, cone, uniform(rng)*2*math32.Pi).Add(opts.Offset)
		scattered := SpherePoint(rng, opts.ScatterRadius).Add(opts.ScatterCenter)

		var color mgl32.Vec3
		var size float32
		if uniform(rng) < opts.AccentProbability {
			color = pick(rng, opts.AccentPalette)
			size = between(rng, accentMin, accentMax)
			accents++
		} else {
			color = pick(rng, opts.Palette)
			size = between(rng, sizeMin, sizeMax)
		}

		copy(buf.Formed[3*i:3*i+3], formed[:])
		copy(buf.Scattered[3*i:3*i+3], scattered[:])
		copy(buf.Colors[3*i:3*i+3], color[:])
		buf.Sizes[i] = size
		buf.Phases[i] = uniform(rng) * 2 * math32.Pi
	}
	return accents
}

// HaloOptions configures a background haze population.
type HaloOptions struct {
	// Radius and Center bound the formed cloud, usually a loose sphere around the tree.
	Radius float32
	Center mgl32.Vec3

	ScatterRadius float32
	ScatterCenter mgl32.Vec3

	Palette []mgl32.Vec3
	SizeMin float32
	SizeMax float32
}

// Halo generates a soft particle cloud whose formed and scattered endpoints are both
// spherical. It is small enough to generate on the calling goroutine.
//
// Parameters:
//   - rng: source of uniform randomness
//   - count: number of particles; <= 0 yields an empty buffer
//   - opts: cloud options
//
// Returns:
//   - ParticleBuffer: the generated attribute table
func Halo(rng *rand.Rand, count int, opts HaloOptions) ParticleBuffer {
	if count <= 0 {
		return ParticleBuffer{}
	}
	formed := Cloud(rng, count, opts.Radius, opts.Center)
	scattered := Cloud(rng, count, opts.ScatterRadius, opts.ScatterCenter)
	sizeMin := common.Coalesce(opts.SizeMin, 1)
	sizeMax := common.Coalesce(opts.SizeMax, sizeMin)

	buf := ParticleBuffer{
		Formed:    make([]float32, 3*count),
		Scattered: make([]float32, 3*count),
		Sizes:     make([]float32, count),
		Colors:    make([]float32, 3*count),
		Phases:    make([]float32, count),
	}
	for i := range count {
		color := pick(rng, opts.Palette)
		copy(buf.Formed[3*i:3*i+3], formed[i][:])
		copy(buf.Scattered[3*i:3*i+3], scattered[i][:])
		copy(buf.Colors[3*i:3*i+3], color[:])
		buf.Sizes[i] = between(rng, sizeMin, sizeMax)
		buf.Phases[i] = PhaseOf(i)
	}
	return buf
}
