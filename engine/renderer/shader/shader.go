package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader is bound to.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	vertexLayouts              []wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	uniformSizes               map[int]uint64

	pp PreProcessor
}

// Shader is a pre-processed WGSL program bound to one pipeline stage, together with
// the vertex buffer layouts and bind group layouts needed to build a pipeline for it.
type Shader interface {
	// Key returns the unique identifier of the shader.
	Key() string

	// Source returns the pre-processed WGSL source.
	Source() string

	// Type returns the pipeline stage.
	Type() ShaderType

	// EntryPoint returns the name of the stage entry function.
	EntryPoint() string

	// VertexLayouts returns the vertex buffer layouts in slot order. Empty for
	// fragment shaders.
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors returns the layouts reflected from the
	// @group/@binding declarations, keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes source and reflects its entry point and bind groups.
// Panics when the source cannot be pre-processed or has no entry point for the
// requested stage; shaders are embedded at build time so either is a programming
// error.
//
// Parameters:
//   - key: unique identifier
//   - shaderType: the pipeline stage
//   - source: raw WGSL, possibly containing //@morph:include directives
//   - options: functional options
//
// Returns:
//   - Shader: the shader
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) Shader {
	s := &shader{
		key:          key,
		shaderType:   shaderType,
		uniformSizes: make(map[int]uint64),
	}
	for _, option := range options {
		option(s)
	}
	if s.pp == nil {
		s.pp = NewPreProcessor()
	}

	processed, err := s.pp.Process(source)
	if err != nil {
		panic(fmt.Errorf("shader %s: %w", key, err))
	}
	s.source = processed

	s.entryPoint = parseEntryPoint(processed, shaderType)
	if s.entryPoint == "" {
		panic(fmt.Errorf("shader %s: no entry point for stage %d", key, shaderType))
	}
	s.bindGroupLayoutDescriptors = parseBindGroupLayouts(processed, s.uniformSizes)
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Type() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	if s.shaderType != ShaderTypeVertex {
		return nil
	}
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}
