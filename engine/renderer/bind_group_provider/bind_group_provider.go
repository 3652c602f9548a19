package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the implementation of the BindGroupProvider interface.
type bindGroupProvider struct {
	label string

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer

	vertexBuffers []*wgpu.Buffer
	vertexCount   int
	indexBuffer   *wgpu.Buffer
	indexCount    int
}

// BindGroupProvider owns the GPU resources one draw or one bind group needs: a bind
// group with its uniform buffers, per-slot vertex buffers, and an optional index
// buffer. The renderer fills it; components write to it and hand it to draw calls.
type BindGroupProvider interface {
	// Label returns the debug label used for every GPU object created for this provider.
	Label() string

	// BindGroup returns the bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created with.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer bound at binding.
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the vertex buffer in slot, or nil.
	VertexBuffer(slot int) *wgpu.Buffer

	// VertexBuffers returns every vertex buffer in slot order.
	VertexBuffers() []*wgpu.Buffer

	// VertexCount returns the vertex count used by non-indexed draws.
	VertexCount() int

	// IndexBuffer returns the index buffer, or nil for non-indexed draws.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices.
	IndexCount() int

	SetBindGroup(bg *wgpu.BindGroup)
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)
	SetVertexBuffer(slot int, buf *wgpu.Buffer)
	SetIndexBuffer(buf *wgpu.Buffer, count int)

	// Release frees every GPU object held by the provider.
	Release()
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: debug label
//   - options: functional options
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer(slot int) *wgpu.Buffer {
	if slot < 0 || slot >= len(p.vertexBuffers) {
		return nil
	}
	return p.vertexBuffers[slot]
}

func (p *bindGroupProvider) VertexBuffers() []*wgpu.Buffer {
	return p.vertexBuffers
}

func (p *bindGroupProvider) VertexCount() int {
	return p.vertexCount
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(slot int, buf *wgpu.Buffer) {
	for len(p.vertexBuffers) <= slot {
		p.vertexBuffers = append(p.vertexBuffers, nil)
	}
	p.vertexBuffers[slot] = buf
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer, count int) {
	p.indexBuffer = buf
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	for k, buf := range p.buffers {
		buf.Release()
		delete(p.buffers, k)
	}
	for i, buf := range p.vertexBuffers {
		if buf != nil {
			buf.Release()
		}
		p.vertexBuffers[i] = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}
