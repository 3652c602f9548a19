package light

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPULightUniformSource is the canonical WGSL definition of the LightUniform struct.
// Matches GPULightUniform layout exactly (48 bytes).
//
//go:embed assets/light_uniform.wgsl
var GPULightUniformSource string

// GPULightUniformSize is the byte size of GPULightUniform.
const GPULightUniformSize = 48

// GPULightUniform is the GPU-aligned key light and ambient term read by lit mesh
// programs. Size: 48 bytes (each vec3 padded to 16).
type GPULightUniform struct {
	Direction mgl32.Vec3 // offset  0: normalized direction the light travels
	Intensity float32    // offset 12
	Color     mgl32.Vec3 // offset 16
	Ambient   mgl32.Vec3 // offset 32
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULightUniform) Size() int {
	return GPULightUniformSize
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, GPULightUniformSize)
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
	}
	for i := range 3 {
		put(i*4, g.Direction[i])
		put(16+i*4, g.Color[i])
		put(32+i*4, g.Ambient[i])
	}
	put(12, g.Intensity)
	return buf
}
