package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/particle"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/bind_group_provider"
)

// Snowfall is the ambient snow component. It runs on its own clock and ignores the
// morph target, so it reports no progress and is always arrived.
type Snowfall struct {
	name     string
	snow     *particle.Snow
	uniforms particle.GPUSnowUniforms

	flakes bind_group_provider.BindGroupProvider
	params bind_group_provider.BindGroupProvider
	ready  bool
}

var _ Component = &Snowfall{}

// NewSnowfall wraps snow as a scene component.
func NewSnowfall(name string, snow *particle.Snow) *Snowfall {
	return &Snowfall{name: name, snow: snow}
}

func (s *Snowfall) Name() string {
	return s.name
}

// Uniforms returns the uniforms computed by the last Update.
func (s *Snowfall) Uniforms() particle.GPUSnowUniforms {
	return s.uniforms
}

func (s *Snowfall) Update(f Frame) {
	s.uniforms = s.snow.Uniforms(f.Elapsed)
}

func (s *Snowfall) Count() int {
	return s.snow.Len()
}

func (s *Snowfall) Progress() float32 {
	return 0
}

func (s *Snowfall) Arrived(float32) bool {
	return true
}

func (s *Snowfall) Prepare(r renderer.Renderer) error {
	if s.snow.Len() == 0 {
		return nil
	}
	if !s.ready {
		p, err := ensurePipeline(r, PipelineSnow)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		s.flakes = bind_group_provider.NewBindGroupProvider(s.name,
			bind_group_provider.WithVertexCount(particle.QuadVertices))
		err = r.InitVertexBuffers(s.flakes,
			common.SliceToBytes(s.snow.Origins),
			common.SliceToBytes(s.snow.Speeds),
			common.SliceToBytes(s.snow.Phases),
			common.SliceToBytes(s.snow.Sizes),
		)
		if err != nil {
			return fmt.Errorf("%s: flakes: %w", s.name, err)
		}
		s.params = bind_group_provider.NewBindGroupProvider(s.name + " Params")
		if err := r.InitBindGroup(s.params, groupLayout(p, 1)); err != nil {
			return fmt.Errorf("%s: params: %w", s.name, err)
		}
		s.ready = true
	}

	r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: s.params, Index: 0, Data: s.uniforms.Marshal()},
	})
	return nil
}

func (s *Snowfall) Draw(r renderer.Renderer, env Bindings) error {
	if !s.ready {
		return nil
	}
	return r.DrawCall(PipelineSnow, s.flakes, uint32(s.snow.Len()),
		[]bind_group_provider.BindGroupProvider{env.Camera, s.params})
}

func (s *Snowfall) Release() {
	if s.flakes != nil {
		s.flakes.Release()
	}
	if s.params != nil {
		s.params.Release()
	}
	s.ready = false
}
