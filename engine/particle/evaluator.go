// Package particle holds the GPU-side morph for the bulk particle populations: the
// uniform and attribute layouts, the WGSL programs, and a CPU reference of the same
// formulas used to validate them. It also contains the ambient snowfall, which
// animates independently of the formed/scattered state.
package particle

import (
	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Attributes are the invariant per-particle inputs of the evaluator.
type Attributes struct {
	Formed    mgl32.Vec3
	Scattered mgl32.Vec3
	Size      float32
	Color     mgl32.Vec3
	Phase     float32
}

// AttributesAt reads particle i out of a flat buffer.
func AttributesAt(b layout.ParticleBuffer, i int) Attributes {
	return Attributes{
		Formed:    b.FormedAt(i),
		Scattered: b.ScatteredAt(i),
		Size:      b.Sizes[i],
		Color:     b.ColorAt(i),
		Phase:     b.Phases[i],
	}
}

// Vertex is the evaluated state of one particle.
type Vertex struct {
	Position mgl32.Vec3
	Size     float32
	Alpha    float32
}

// Evaluate computes what morph_position, morph_size and morph_alpha produce on the
// device for one particle.
//
// Parameters:
//   - a: the particle attributes
//   - u: the uniforms for the frame; u.Progress is already eased
//
// Returns:
//   - Vertex: the particle center, size and alpha
func Evaluate(a Attributes, u GPUParticleUniforms) Vertex {
	p := u.Progress
	t := u.Time * u.DriftSpeed
	drift := mgl32.Vec3{
		math32.Sin(t + a.Phase),
		math32.Cos(t*0.8 + a.Phase*1.3),
		math32.Sin(t*0.6 + a.Phase*0.7),
	}.Mul(u.DriftAmplitude * (1 - 0.7*p))

	base := mgl32.Vec3{
		common.Lerp(a.Scattered[0], a.Formed[0], p),
		common.Lerp(a.Scattered[1], a.Formed[1], p),
		common.Lerp(a.Scattered[2], a.Formed[2], p),
	}

	shimmer := 1 - u.Twinkle*0.5*(1+math32.Sin(u.Time*2+a.Phase))
	return Vertex{
		Position: base.Add(drift),
		Size:     a.Size * u.SizeScale * common.Lerp(u.ScatterSize, 1, p),
		Alpha:    common.Lerp(u.ScatterAlpha, 1, p) * shimmer,
	}
}
