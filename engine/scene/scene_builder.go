package scene

import (
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRenderer attaches the renderer at construction.
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.r = r
	}
}

// WithComponents appends initial components in draw order.
//
// Parameters:
//   - components: the components to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComponents(components ...Component) SceneBuilderOption {
	return func(s *scene) {
		s.components = append(s.components, components...)
	}
}

// WithLight replaces the default key light.
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}
