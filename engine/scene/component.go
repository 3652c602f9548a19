package scene

import (
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/bind_group_provider"
)

// Bindings are the scene-wide bind groups shared by every component's draw call.
// Camera is always group 0; lit programs read Light as group 1.
type Bindings struct {
	Camera bind_group_provider.BindGroupProvider
	Light  bind_group_provider.BindGroupProvider
}

// Component is one visual population owned by a scene. Each component owns its
// population and morph state exclusively; the scene only hands it frames.
//
// Update is pure CPU work and runs headless. Prepare and Draw touch the GPU and are
// only called when the scene has a renderer.
type Component interface {
	// Name identifies the component in logs and lookups.
	Name() string

	// Update advances the component by one frame.
	//
	// Parameters:
	//   - f: the frame shared by every component
	Update(f Frame)

	// Count returns the number of elements currently rendered.
	Count() int

	// Progress returns the component's representative raw morph progress in [0, 1].
	Progress() float32

	// Arrived reports whether every element has settled on target.
	Arrived(target float32) bool

	// Prepare creates GPU resources on first use and stages this frame's buffer writes.
	//
	// Parameters:
	//   - r: the renderer owning the device
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	Prepare(r renderer.Renderer) error

	// Draw encodes the component's draw call inside the current render pass.
	//
	// Parameters:
	//   - r: the renderer owning the pass
	//   - env: the scene-wide bind groups
	//
	// Returns:
	//   - error: an error if the pipeline is missing
	Draw(r renderer.Renderer, env Bindings) error

	// Release frees the component's GPU buffers.
	Release()
}
