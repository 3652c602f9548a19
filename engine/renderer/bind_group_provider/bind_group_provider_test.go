package bind_group_provider

import "testing"

func TestVertexSlotsGrow(t *testing.T) {
	p := NewBindGroupProvider("quad", WithVertexCount(6))
	p.SetVertexBuffer(3, nil)
	if len(p.VertexBuffers()) != 4 {
		t.Errorf("slots = %d, want 4", len(p.VertexBuffers()))
	}
	if p.VertexBuffer(9) != nil || p.VertexBuffer(-1) != nil {
		t.Error("out of range slot should be nil")
	}
	if p.VertexCount() != 6 || p.Label() != "quad" {
		t.Errorf("VertexCount/Label = %d/%q", p.VertexCount(), p.Label())
	}
	p.Release()
}
