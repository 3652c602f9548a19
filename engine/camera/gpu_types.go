package camera

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (112 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the byte size of the WGSL CameraUniform struct.
const GPUCameraUniformSize = 112

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Right and Up carry the camera basis so billboards can face the eye without
// inverting the view matrix per vertex.
type GPUCameraUniform struct {
	ViewProj mgl32.Mat4 // offset  0: mat4x4<f32>, column-major
	Position mgl32.Vec3 // offset 64: vec3<f32> + pad
	Right    mgl32.Vec3 // offset 80: vec3<f32> + pad
	Up       mgl32.Vec3 // offset 96: vec3<f32> + pad
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPUCameraUniform) Size() int {
	return GPUCameraUniformSize
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	putVec3 := func(offset int, v mgl32.Vec3) {
		for i := range 3 {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v[i]))
		}
	}
	putVec3(64, g.Position)
	putVec3(80, g.Right)
	putVec3(96, g.Up)
	return buf
}
