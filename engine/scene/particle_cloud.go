package scene

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/engine/particle"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/bind_group_provider"
)

// CloudKind selects the particle program a ParticleCloud draws with.
type CloudKind uint8

const (
	// CloudFoliage draws the shaped, star-footprint particles of the tree body.
	CloudFoliage CloudKind = iota

	// CloudHaze draws soft round particles around the tree.
	CloudHaze
)

func (k CloudKind) pipelineKey() string {
	if k == CloudHaze {
		return PipelineHaze
	}
	return PipelineFoliage
}

// ParticleCloud is a GPU-evaluated particle population. Its attribute buffers are
// uploaded once; each frame only the 32-byte uniform block changes.
type ParticleCloud struct {
	name  string
	kind  CloudKind
	cloud *particle.Cloud

	attributes bind_group_provider.BindGroupProvider
	params     bind_group_provider.BindGroupProvider
	ready      bool
}

var _ Component = &ParticleCloud{}

// NewParticleCloud wraps cloud as a scene component.
//
// Parameters:
//   - name: the component name
//   - kind: the particle program to draw with
//   - cloud: the particle population and its morph state
//
// Returns:
//   - *ParticleCloud: the component
func NewParticleCloud(name string, kind CloudKind, cloud *particle.Cloud) *ParticleCloud {
	return &ParticleCloud{name: name, kind: kind, cloud: cloud}
}

func (c *ParticleCloud) Name() string {
	return c.name
}

// Cloud returns the wrapped particle population.
func (c *ParticleCloud) Cloud() *particle.Cloud {
	return c.cloud
}

func (c *ParticleCloud) Update(f Frame) {
	c.cloud.Update(f.Target(), f.DT, f.Elapsed)
}

func (c *ParticleCloud) Count() int {
	return c.cloud.Len()
}

func (c *ParticleCloud) Progress() float32 {
	return c.cloud.State().Progress()
}

func (c *ParticleCloud) Arrived(target float32) bool {
	return morph.Arrived(c.Progress(), target)
}

func (c *ParticleCloud) Prepare(r renderer.Renderer) error {
	if c.cloud.Len() == 0 {
		return nil
	}
	if !c.ready {
		if err := c.init(r); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}

	u := c.cloud.Uniforms()
	r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: c.params, Index: 0, Data: u.Marshal()},
	})
	return nil
}

func (c *ParticleCloud) init(r renderer.Renderer) error {
	p, err := ensurePipeline(r, c.kind.pipelineKey())
	if err != nil {
		return err
	}

	buf := c.cloud.Buffer()
	c.attributes = bind_group_provider.NewBindGroupProvider(c.name,
		bind_group_provider.WithVertexCount(particle.QuadVertices))
	err = r.InitVertexBuffers(c.attributes,
		common.SliceToBytes(buf.Formed),
		common.SliceToBytes(buf.Scattered),
		common.SliceToBytes(buf.Sizes),
		common.SliceToBytes(buf.Colors),
		common.SliceToBytes(buf.Phases),
	)
	if err != nil {
		return fmt.Errorf("attributes: %w", err)
	}

	c.params = bind_group_provider.NewBindGroupProvider(c.name + " Params")
	if err := r.InitBindGroup(c.params, groupLayout(p, 1)); err != nil {
		return fmt.Errorf("params: %w", err)
	}

	c.ready = true
	log.Printf("[Scene] %s: uploaded %d particles", c.name, buf.Len())
	return nil
}

func (c *ParticleCloud) Draw(r renderer.Renderer, env Bindings) error {
	if !c.ready {
		return nil
	}
	return r.DrawCall(c.kind.pipelineKey(), c.attributes, uint32(c.cloud.Len()),
		[]bind_group_provider.BindGroupProvider{env.Camera, c.params})
}

func (c *ParticleCloud) Release() {
	if c.attributes != nil {
		c.attributes.Release()
	}
	if c.params != nil {
		c.params.Release()
	}
	c.ready = false
}
