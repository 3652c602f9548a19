package scene

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshVertexSize is the byte stride of one MeshVertex: position and normal.
const MeshVertexSize = 24

// MeshVertex is one flat-shaded vertex.
type MeshVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Mesh is an indexed triangle list centred on the origin.
type Mesh struct {
	Vertices []MeshVertex
	Indices  []uint32
}

// VertexBytes packs the vertices for upload.
func (m Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*MeshVertexSize)
	for i, v := range m.Vertices {
		o := i * MeshVertexSize
		for k := range 3 {
			binary.LittleEndian.PutUint32(buf[o+k*4:], math.Float32bits(v.Position[k]))
			binary.LittleEndian.PutUint32(buf[o+12+k*4:], math.Float32bits(v.Normal[k]))
		}
	}
	return buf
}

// IndexBytes packs the indices as little-endian uint32.
func (m Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// tri appends a flat-shaded triangle, flipping the winding when needed so the
// normal points away from the origin.
func (m *Mesh) tri(a, b, c mgl32.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return
	}
	n = n.Normalize()
	if n.Dot(a.Add(b).Add(c)) < 0 {
		b, c = c, b
		n = n.Mul(-1)
	}
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		MeshVertex{Position: a, Normal: n},
		MeshVertex{Position: b, Normal: n},
		MeshVertex{Position: c, Normal: n},
	)
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// Box builds an axis-aligned box with the given full extents.
func Box(width, height, depth float32) Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	var m Mesh
	for axis := range 3 {
		u, v := (axis+1)%3, (axis+2)%3
		for _, sign := range []float32{-1, 1} {
			corner := func(su, sv float32) mgl32.Vec3 {
				var p mgl32.Vec3
				p[axis] = sign * half[axis]
				p[u] = su * half[u]
				p[v] = sv * half[v]
				return p
			}
			c00, c10, c11, c01 := corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)
			m.tri(c00, c10, c11)
			m.tri(c00, c11, c01)
		}
	}
	return m
}

// Octahedron builds a gem with its six points at distance radius on the axes.
func Octahedron(radius float32) Mesh {
	var m Mesh
	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			for _, sz := range []float32{-1, 1} {
				m.tri(
					mgl32.Vec3{sx * radius, 0, 0},
					mgl32.Vec3{0, sy * radius, 0},
					mgl32.Vec3{0, 0, sz * radius},
				)
			}
		}
	}
	return m
}

// Star builds a faceted star in the XY plane: the outline alternates between outer
// and inner radius and each face rises to an apex at +-depth on Z.
//
// Parameters:
//   - points: number of star points (at least 2)
//   - outer: tip radius
//   - inner: notch radius
//   - depth: apex height on each side
//
// Returns:
//   - Mesh: the star mesh
func Star(points int, outer, inner, depth float32) Mesh {
	points = max(points, 2)
	outline := make([]mgl32.Vec3, 2*points)
	for i := range outline {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		// first tip points up
		sin, cos := math32.Sincos(math32.Pi/2 + float32(i)*math32.Pi/float32(points))
		outline[i] = mgl32.Vec3{r * cos, r * sin, 0}
	}

	front := mgl32.Vec3{0, 0, depth}
	back := mgl32.Vec3{0, 0, -depth}
	var m Mesh
	for i := range outline {
		a, b := outline[i], outline[(i+1)%len(outline)]
		m.tri(front, a, b)
		m.tri(back, b, a)
	}
	return m
}

// MeshVertexLayout is the per-vertex slot of instanced meshes: position at
// location 0 and normal at location 1.
func MeshVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: MeshVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}
