package particle

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUParticleUniformsSource is the WGSL definition of ParticleUniforms.
// Matches GPUParticleUniforms exactly (32 bytes).
//
//go:embed assets/particle_uniforms.wgsl
var GPUParticleUniformsSource string

// MorphBlendSource holds the particle blend law shared by every morphing particle
// program. Evaluate is its CPU mirror.
//
//go:embed assets/morph_blend.wgsl
var MorphBlendSource string

// BillboardSource provides quad_corner for camera-aligned quads.
//
//go:embed assets/billboard.wgsl
var BillboardSource string

// GPUSnowUniformsSource is the WGSL definition of SnowUniforms together with the
// fall-and-wrap motion functions. SnowPosition is its CPU mirror.
//
//go:embed assets/snow_motion.wgsl
var GPUSnowUniformsSource string

// FoliageShaderSource renders the shaped, star-footprint particle population.
//
//go:embed assets/foliage.wgsl
var FoliageShaderSource string

// HazeShaderSource renders the soft background particle population.
//
//go:embed assets/haze.wgsl
var HazeShaderSource string

// SnowShaderSource renders the ambient snowfall.
//
//go:embed assets/snow.wgsl
var SnowShaderSource string

// QuadVertices is the vertex count of one billboard (two triangles).
const QuadVertices = 6

// GPUParticleUniforms is the per-population uniform block uploaded once per frame.
// Size: 32 bytes.
type GPUParticleUniforms struct {
	Time           float32 // offset  0: elapsed seconds
	Progress       float32 // offset  4: eased morph progress
	DriftSpeed     float32 // offset  8
	DriftAmplitude float32 // offset 12
	SizeScale      float32 // offset 16
	ScatterSize    float32 // offset 20: size multiplier at progress 0
	ScatterAlpha   float32 // offset 24: alpha multiplier at progress 0
	Twinkle        float32 // offset 28: shimmer depth in [0, 1]
}

// Size returns the size of the GPUParticleUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUParticleUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParticleUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUParticleUniforms) Marshal() []byte {
	return putFloats(make([]byte, g.Size()),
		g.Time, g.Progress, g.DriftSpeed, g.DriftAmplitude,
		g.SizeScale, g.ScatterSize, g.ScatterAlpha, g.Twinkle)
}

// GPUSnowUniforms is the snowfall uniform block. Size: 32 bytes.
type GPUSnowUniforms struct {
	Time      float32 // offset  0
	Top       float32 // offset  4: spawn height
	Bottom    float32 // offset  8: wrap height
	Gust      float32 // offset 12: wind strength this frame
	WindX     float32 // offset 16
	WindZ     float32 // offset 20
	Sway      float32 // offset 24: lateral sway amplitude
	SizeScale float32 // offset 28
}

// Size returns the size of the GPUSnowUniforms struct in bytes.
func (g *GPUSnowUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSnowUniforms struct into a byte buffer suitable for GPU upload.
func (g *GPUSnowUniforms) Marshal() []byte {
	return putFloats(make([]byte, g.Size()),
		g.Time, g.Top, g.Bottom, g.Gust, g.WindX, g.WindZ, g.Sway, g.SizeScale)
}

func putFloats(buf []byte, values ...float32) []byte {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func instanceAttribute(format wgpu.VertexFormat, stride uint64, location uint32) wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: stride,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: format, Offset: 0, ShaderLocation: location},
		},
	}
}

// ParticleVertexLayouts returns one instance-stepped buffer per attribute, in slot
// order: formed, scattered, size, color, phase. Each slot maps directly onto one
// flat slice of a layout.ParticleBuffer.
//
// Returns:
//   - []wgpu.VertexBufferLayout: the five buffer layouts
func ParticleVertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		instanceAttribute(wgpu.VertexFormatFloat32x3, 12, 0),
		instanceAttribute(wgpu.VertexFormatFloat32x3, 12, 1),
		instanceAttribute(wgpu.VertexFormatFloat32, 4, 2),
		instanceAttribute(wgpu.VertexFormatFloat32x3, 12, 3),
		instanceAttribute(wgpu.VertexFormatFloat32, 4, 4),
	}
}

// SnowVertexLayouts returns the flake buffer layouts in slot order: origin, speed,
// phase, size.
func SnowVertexLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		instanceAttribute(wgpu.VertexFormatFloat32x3, 12, 0),
		instanceAttribute(wgpu.VertexFormatFloat32, 4, 1),
		instanceAttribute(wgpu.VertexFormatFloat32, 4, 2),
		instanceAttribute(wgpu.VertexFormatFloat32, 4, 3),
	}
}
