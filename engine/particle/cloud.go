package particle

import (
	"github.com/Carmen-Shannon/oxy-morph/engine/layout"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
)

// CloudParams are the per-population constants of a particle cloud.
type CloudParams struct {
	Rate           float32
	DriftSpeed     float32
	DriftAmplitude float32
	SizeScale      float32
	ScatterSize    float32
	ScatterAlpha   float32
	Twinkle        float32

	// Ease defaults to morph.EaseQuint.
	Ease morph.EaseFunc
}

// Cloud is a GPU-evaluated particle population: an immutable attribute buffer and a
// single morph state shared by every particle.
type Cloud struct {
	buffer   layout.ParticleBuffer
	state    *morph.State
	uniforms GPUParticleUniforms
}

// NewCloud wraps buffer with a morph state starting scattered.
func NewCloud(buffer layout.ParticleBuffer, params CloudParams) *Cloud {
	fn := params.Ease
	if fn == nil {
		fn = morph.EaseQuint
	}
	return &Cloud{
		buffer: buffer,
		state:  morph.NewState(params.Rate, fn),
		uniforms: GPUParticleUniforms{
			DriftSpeed:     params.DriftSpeed,
			DriftAmplitude: params.DriftAmplitude,
			SizeScale:      params.SizeScale,
			ScatterSize:    params.ScatterSize,
			ScatterAlpha:   params.ScatterAlpha,
			Twinkle:        params.Twinkle,
		},
	}
}

// Update advances the shared progress and returns the uniforms to upload. The ease
// is applied here, once per population per frame.
//
// Parameters:
//   - target: 0 or 1
//   - dt: frame delta in seconds
//   - elapsed: frame time in seconds
//
// Returns:
//   - GPUParticleUniforms: the uniforms for this frame
func (c *Cloud) Update(target, dt, elapsed float32) GPUParticleUniforms {
	c.state.Update(target, dt)
	c.uniforms.Time = elapsed
	c.uniforms.Progress = c.state.Eased()
	return c.uniforms
}

// Uniforms returns the uniforms computed by the last Update.
func (c *Cloud) Uniforms() GPUParticleUniforms {
	return c.uniforms
}

// Buffer returns the attribute table.
func (c *Cloud) Buffer() layout.ParticleBuffer {
	return c.buffer
}

// State returns the population morph state.
func (c *Cloud) State() *morph.State {
	return c.state
}

// Len returns the particle count.
func (c *Cloud) Len() int {
	return c.buffer.Len()
}
