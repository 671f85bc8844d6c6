package mesh

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexStride is the size of one interleaved Vertex in bytes.
const VertexStride = (3 + 3 + 2) * 4

// Mesh holds the complete primitive mesh data ready for GPU upload.
type Mesh struct {
	Kind     Kind
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
