package scene

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUInstanceSize is the byte stride of one GPUInstance.
const GPUInstanceSize = 80

// GPUInstance is the per-element record read by the instanced mesh shader.
type GPUInstance struct {
	Model mgl32.Mat4 // offset  0: locations 2..5, one column each
	Color mgl32.Vec3 // offset 64: location 6 rgb
	Glow  float32    // offset 76: location 6 a
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUInstance) Size() int {
	return GPUInstanceSize
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalTo(buf)
	return buf
}

// MarshalTo writes the instance into the first GPUInstanceSize bytes of buf.
func (g *GPUInstance) MarshalTo(buf []byte) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[76:], math.Float32bits(g.Glow))
}

// InstanceVertexLayout is the per-instance slot of instanced meshes.
func InstanceVertexLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, 5)
	for col := range 4 {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(col * 16),
			ShaderLocation: uint32(2 + col),
		})
	}
	attrs = append(attrs, wgpu.VertexAttribute{
		Format:         wgpu.VertexFormatFloat32x4,
		Offset:         64,
		ShaderLocation: 6,
	})
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUInstanceSize,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}
