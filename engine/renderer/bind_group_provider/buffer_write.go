package bind_group_provider

// BufferWrite describes a single GPU buffer write. With Vertex unset, Index is a
// uniform binding on the provider's bind group; with Vertex set, it is a vertex
// buffer slot.
type BufferWrite struct {
	Provider BindGroupProvider
	Index    int
	Vertex   bool
	Offset   uint64
	Data     []byte
}
