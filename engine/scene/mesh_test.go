package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMeshTriangleCounts(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
		tris int
	}{
		{"box", Box(1, 2, 3), 12},
		{"octahedron", Octahedron(1), 8},
		{"star", Star(5, 1, 0.45, 0.3), 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.mesh.Indices) / 3; got != tt.tris {
				t.Errorf("triangles = %d, want %d", got, tt.tris)
			}
			if len(tt.mesh.VertexBytes()) != len(tt.mesh.Vertices)*MeshVertexSize {
				t.Errorf("vertex bytes = %d", len(tt.mesh.VertexBytes()))
			}
			if len(tt.mesh.IndexBytes()) != len(tt.mesh.Indices)*4 {
				t.Errorf("index bytes = %d", len(tt.mesh.IndexBytes()))
			}
		})
	}
}

func TestMeshNormalsPointOutward(t *testing.T) {
	for name, m := range map[string]Mesh{"box": Box(1, 1, 1), "octahedron": Octahedron(2), "star": Star(6, 1, 0.5, 0.2)} {
		for i := 0; i < len(m.Indices); i += 3 {
			a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
			centroid := a.Position.Add(b.Position).Add(c.Position)
			if a.Normal.Dot(centroid) < 0 {
				t.Errorf("%s: triangle %d normal %v points inward", name, i/3, a.Normal)
			}
			if d := math.Abs(float64(a.Normal.Len()) - 1); d > 1e-5 {
				t.Errorf("%s: triangle %d normal not unit: %v", name, i/3, a.Normal)
			}
		}
	}
}

func TestBoxExtents(t *testing.T) {
	m := Box(2, 4, 6)
	var hi mgl32.Vec3
	for _, v := range m.Vertices {
		for k := range 3 {
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	if !hi.ApproxEqual(mgl32.Vec3{1, 2, 3}) {
		t.Errorf("max corner = %v, want [1 2 3]", hi)
	}
}

func TestGPUInstanceLayout(t *testing.T) {
	inst := GPUInstance{
		Model: mgl32.Translate3D(1, 2, 3),
		Color: mgl32.Vec3{0.5, 0.25, 0.125},
		Glow:  1.5,
	}
	buf := inst.Marshal()
	if len(buf) != GPUInstanceSize {
		t.Fatalf("len = %d, want %d", len(buf), GPUInstanceSize)
	}
	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	if got := read(48); got != 1 {
		t.Errorf("translation x = %v, want 1", got)
	}
	if got := read(68); got != 0.25 {
		t.Errorf("color g = %v, want 0.25", got)
	}
	if got := read(76); got != 1.5 {
		t.Errorf("glow = %v, want 1.5", got)
	}
}
