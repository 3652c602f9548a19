package scene

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/particle"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-morph/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// InstancedShaderSource renders lit, instanced meshes with a per-instance glow.
//
//go:embed assets/instanced.wgsl
var InstancedShaderSource string

// Pipeline keys registered by the scene components.
const (
	PipelineFoliage   = "foliage"
	PipelineHaze      = "haze"
	PipelineSnow      = "snow"
	PipelineInstanced = "instanced"
)

var (
	particleUniformSize = uint64((&particle.GPUParticleUniforms{}).Size())
	snowUniformSize     = uint64((&particle.GPUSnowUniforms{}).Size())
)

// newPipeline builds the vertex and fragment shaders for one of the scene's
// programs and wraps them in a pipeline with the program's blend state.
//
// Panics on an unknown key; the keys are the constants above.
func newPipeline(key string) pipeline.Pipeline {
	var (
		source  string
		layouts []wgpu.VertexBufferLayout
		opts    []pipeline.PipelineBuilderOption
		sizes   = map[int]uint64{0: camera.GPUCameraUniformSize}
	)

	switch key {
	case PipelineFoliage, PipelineHaze:
		source = particle.FoliageShaderSource
		if key == PipelineHaze {
			source = particle.HazeShaderSource
		}
		layouts = particle.ParticleVertexLayouts()
		sizes[1] = particleUniformSize
		opts = append(opts,
			pipeline.WithBlendMode(pipeline.BlendAdditive),
			pipeline.WithDepthWriteEnabled(false),
		)
	case PipelineSnow:
		source = particle.SnowShaderSource
		layouts = particle.SnowVertexLayouts()
		sizes[1] = snowUniformSize
		opts = append(opts,
			pipeline.WithBlendMode(pipeline.BlendAlpha),
			pipeline.WithDepthWriteEnabled(false),
		)
	case PipelineInstanced:
		source = InstancedShaderSource
		layouts = []wgpu.VertexBufferLayout{MeshVertexLayout(), InstanceVertexLayout()}
		sizes[1] = light.GPULightUniformSize
		opts = append(opts, pipeline.WithCullMode(wgpu.CullModeBack))
	default:
		panic("scene: unknown pipeline " + key)
	}

	shaderOpts := make([]shader.ShaderBuilderOption, 0, len(sizes))
	for group, size := range sizes {
		shaderOpts = append(shaderOpts, shader.WithUniformSize(group, size))
	}
	vs := shader.NewShader(key+"_vs", shader.ShaderTypeVertex, source,
		append(shaderOpts, shader.WithVertexLayouts(layouts...))...)
	fs := shader.NewShader(key+"_fs", shader.ShaderTypeFragment, source, shaderOpts...)

	return pipeline.NewPipeline(key, append(opts, pipeline.WithShaders(vs, fs))...)
}

// cameraLayout is the group 0 layout shared by every scene program.
func cameraLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "camera",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: camera.GPUCameraUniformSize,
				},
			},
		},
	}
}

// lightLayout is the group 1 layout of the lit instanced program.
func lightLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "light",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: light.GPULightUniformSize,
				},
			},
		},
	}
}

// groupLayout returns the reflected layout of group from the registered pipeline's
// vertex shader.
func groupLayout(p pipeline.Pipeline, group int) wgpu.BindGroupLayoutDescriptor {
	return p.Shader(shader.ShaderTypeVertex).BindGroupLayoutDescriptors()[group]
}

// ensurePipeline returns the renderer's pipeline for key, building and registering
// it on first use.
func ensurePipeline(r renderer.Renderer, key string) (pipeline.Pipeline, error) {
	if p := r.Pipeline(key); p != nil {
		return p, nil
	}
	if err := r.RegisterPipelines(newPipeline(key)); err != nil {
		return nil, err
	}
	return r.Pipeline(key), nil
}
