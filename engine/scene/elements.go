package scene

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-morph/common"
	"github.com/Carmen-Shannon/oxy-morph/engine/morph"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/bind_group_provider"
)

// Decorator adjusts element i's transform after the morph update and before it is
// packed for upload. It must not retain tr.
type Decorator func(f Frame, i int, tr morph.Transform) morph.Transform

// Elements is a CPU-updated population of one mesh drawn instanced. The morph
// updater owns the per-element state; Elements packs the active prefix into
// instance records each frame.
type Elements struct {
	name    string
	mesh    Mesh
	updater morph.Updater

	decorate Decorator
	onFrame  func(f Frame)

	instances []GPUInstance
	staging   []byte

	provider bind_group_provider.BindGroupProvider
	ready    bool
}

var _ Component = &Elements{}

// ElementsOption is a functional option for configuring Elements.
type ElementsOption func(*Elements)

// WithDecorator installs a per-element transform adjustment.
//
// Parameters:
//   - d: the decorator
//
// Returns:
//   - ElementsOption: option function to apply
func WithDecorator(d Decorator) ElementsOption {
	return func(e *Elements) {
		e.decorate = d
	}
}

// WithFrameHook installs a function called once per frame before the elements update.
func WithFrameHook(fn func(f Frame)) ElementsOption {
	return func(e *Elements) {
		e.onFrame = fn
	}
}

// NewElements creates an instanced mesh population driven by updater.
//
// Parameters:
//   - name: the component name
//   - mesh: the mesh drawn for every element
//   - updater: the morph updater owning the population
//   - options: functional options
//
// Returns:
//   - *Elements: the component
func NewElements(name string, mesh Mesh, updater morph.Updater, options ...ElementsOption) *Elements {
	e := &Elements{
		name:      name,
		mesh:      mesh,
		updater:   updater,
		instances: make([]GPUInstance, updater.Len()),
		staging:   make([]byte, updater.Len()*GPUInstanceSize),
	}
	for _, option := range options {
		option(e)
	}
	e.pack(Frame{})
	return e
}

func (e *Elements) Name() string {
	return e.name
}

// Updater returns the morph updater driving the population.
func (e *Elements) Updater() morph.Updater {
	return e.updater
}

// Instance returns the packed instance record of element i.
func (e *Elements) Instance(i int) GPUInstance {
	return e.instances[i]
}

// SetActive limits rendering and updating to the first n reserved slots.
func (e *Elements) SetActive(n int) {
	e.updater.SetActive(n)
}

func (e *Elements) Update(f Frame) {
	if e.onFrame != nil {
		e.onFrame(f)
	}
	e.updater.Update(f.MorphInput())
	e.pack(f)
}

func (e *Elements) pack(f Frame) {
	pop := e.updater.Population()
	for i := range e.updater.Active() {
		tr := e.updater.Transform(i)
		if e.decorate != nil {
			tr = e.decorate(f, i, tr)
		}
		e.instances[i] = GPUInstance{
			Model: common.ModelMatrix(tr.Position, tr.Rotation, tr.Scale),
			Color: pop.At(i).Color,
			Glow:  tr.Glow,
		}
	}
}

func (e *Elements) Count() int {
	return e.updater.Active()
}

// Progress returns the mean raw progress of the active elements.
func (e *Elements) Progress() float32 {
	n := e.updater.Active()
	if n == 0 {
		return 0
	}
	var sum float32
	for i := range n {
		sum += e.updater.Progress(i)
	}
	return sum / float32(n)
}

func (e *Elements) Arrived(target float32) bool {
	return e.updater.Arrived(target)
}

func (e *Elements) Prepare(r renderer.Renderer) error {
	if e.updater.Len() == 0 || len(e.mesh.Indices) == 0 {
		return nil
	}
	if !e.ready {
		if err := e.init(r); err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
	}

	n := e.updater.Active()
	if n == 0 {
		return nil
	}
	for i := range n {
		e.instances[i].MarshalTo(e.staging[i*GPUInstanceSize:])
	}
	r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: e.provider, Index: 1, Vertex: true, Data: e.staging[:n*GPUInstanceSize]},
	})
	return nil
}

func (e *Elements) init(r renderer.Renderer) error {
	if _, err := ensurePipeline(r, PipelineInstanced); err != nil {
		return err
	}

	// The instance slot is sized for every reserved element so SetActive never
	// reallocates.
	e.provider = bind_group_provider.NewBindGroupProvider(e.name)
	if err := r.InitVertexBuffers(e.provider, e.mesh.VertexBytes(), e.staging); err != nil {
		return fmt.Errorf("vertices: %w", err)
	}
	if err := r.InitIndexBuffer(e.provider, e.mesh.IndexBytes(), len(e.mesh.Indices)); err != nil {
		return fmt.Errorf("indices: %w", err)
	}

	e.ready = true
	log.Printf("[Scene] %s: %d slots, %d triangles per mesh", e.name, e.updater.Len(), len(e.mesh.Indices)/3)
	return nil
}

func (e *Elements) Draw(r renderer.Renderer, env Bindings) error {
	if !e.ready {
		return nil
	}
	return r.DrawCall(PipelineInstanced, e.provider, uint32(e.updater.Active()),
		[]bind_group_provider.BindGroupProvider{env.Camera, env.Light})
}

func (e *Elements) Release() {
	if e.provider != nil {
		e.provider.Release()
	}
	e.ready = false
}
