package particle

import (
	"log"
	"math/rand"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SnowOptions configures the ambient snowfall.
type SnowOptions struct {
	Count      int
	HalfExtent float32 // flakes spawn in [-HalfExtent, HalfExtent] on x and z
	Top        float32
	Bottom     float32

	SpeedMin float32
	SpeedMax float32
	SizeMin  float32
	SizeMax  float32

	// Wind is the horizontal wind direction; it is normalized.
	Wind         mgl32.Vec2
	WindStrength float32
	Sway         float32
	SizeScale    float32
}

// Snow is a fall-and-wrap particle field. It never reads the morph state.
type Snow struct {
	opts  SnowOptions
	noise *perlin.Perlin

	Origins []float32
	Speeds  []float32
	Phases  []float32
	Sizes   []float32
}

// NewSnow scatters opts.Count flakes through the fall column. Sway phases come from
// a noise field over the spawn position so neighbouring flakes drift together.
//
// Parameters:
//   - rng: source of uniform randomness
//   - opts: snowfall options
//
// Returns:
//   - *Snow: the flake field
func NewSnow(rng *rand.Rand, opts SnowOptions) *Snow {
	if opts.Wind.Len() > 0 {
		opts.Wind = opts.Wind.Normalize()
	}
	opts.SizeScale = common.Coalesce(opts.SizeScale, 1)

	n := max(opts.Count, 0)
	s := &Snow{
		opts:    opts,
		noise:   perlin.NewPerlin(2, 2, 3, rng.Int63()),
		Origins: make([]float32, 3*n),
		Speeds:  make([]float32, n),
		Phases:  make([]float32, n),
		Sizes:   make([]float32, n),
	}

	for i := 0; i < n; i++ {
		x := (rng.Float32()*2 - 1) * opts.HalfExtent
		z := (rng.Float32()*2 - 1) * opts.HalfExtent
		y := opts.Bottom + rng.Float32()*(opts.Top-opts.Bottom)
		s.Origins[3*i], s.Origins[3*i+1], s.Origins[3*i+2] = x, y, z
		s.Speeds[i] = opts.SpeedMin + rng.Float32()*(opts.SpeedMax-opts.SpeedMin)
		s.Sizes[i] = opts.SizeMin + rng.Float32()*(opts.SizeMax-opts.SizeMin)

		field := float32(s.noise.Noise2D(float64(x)*0.15, float64(z)*0.15))
		s.Phases[i] = field*2*math32.Pi + rng.Float32()*0.5
	}

	log.Printf("[Snow] %d flakes in [%.1f, %.1f]", n, opts.Bottom, opts.Top)
	return s
}

// Len returns the flake count.
func (s *Snow) Len() int {
	return len(s.Speeds)
}

// Uniforms returns the snow uniforms at elapsed seconds. Wind strength gusts along
// a one-dimensional noise curve.
func (s *Snow) Uniforms(elapsed float32) GPUSnowUniforms {
	gust := s.opts.WindStrength * (1 + 0.5*float32(s.noise.Noise1D(float64(elapsed)*0.2)))
	return GPUSnowUniforms{
		Time:      elapsed,
		Top:       s.opts.Top,
		Bottom:    s.opts.Bottom,
		Gust:      gust,
		WindX:     s.opts.Wind.X(),
		WindZ:     s.opts.Wind.Y(),
		Sway:      s.opts.Sway,
		SizeScale: s.opts.SizeScale,
	}
}

// PositionAt evaluates flake i under u on the CPU.
func (s *Snow) PositionAt(i int, u GPUSnowUniforms) mgl32.Vec3 {
	origin := mgl32.Vec3{s.Origins[3*i], s.Origins[3*i+1], s.Origins[3*i+2]}
	return SnowPosition(origin, s.Speeds[i], s.Phases[i], u)
}

// SnowFallen mirrors snow_fallen: the wrapped fraction of the column covered.
func SnowFallen(originY, speed float32, u GPUSnowUniforms) float32 {
	h := u.Top - u.Bottom
	f := ((u.Top - originY) + speed*u.Time) / h
	return f - math32.Floor(f)
}

// SnowPosition mirrors snow_position.
func SnowPosition(origin mgl32.Vec3, speed, phase float32, u GPUSnowUniforms) mgl32.Vec3 {
	fallen := SnowFallen(origin.Y(), speed, u)
	return mgl32.Vec3{
		origin.X() + math32.Sin(u.Time*0.7+phase)*u.Sway + u.WindX*u.Gust*fallen,
		u.Top - fallen*(u.Top-u.Bottom),
		origin.Z() + math32.Cos(u.Time*0.5+phase*1.7)*u.Sway + u.WindZ*u.Gust*fallen,
	}
}
