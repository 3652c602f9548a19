package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option for configuring a Shader.
type ShaderBuilderOption func(*shader)

// WithVertexLayouts sets the vertex buffer layouts, in slot order.
//
// Parameters:
//   - layouts: one layout per vertex buffer slot
//
// Returns:
//   - ShaderBuilderOption: functional option to set the vertex layouts
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = append(s.vertexLayouts, layouts...)
	}
}

// WithUniformSize records the byte size of the uniform bound at group, used as the
// binding's MinBindingSize.
func WithUniformSize(group int, size uint64) ShaderBuilderOption {
	return func(s *shader) {
		s.uniformSizes[group] = size
	}
}

// WithPreProcessor replaces the default include pre-processor.
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(s *shader) {
		s.pp = pp
	}
}
