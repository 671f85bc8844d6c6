package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/internal/logger"
)

// gpuMesh is one uploaded primitive.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// MeshLibrary uploads each primitive kind once and draws it on demand.
type MeshLibrary struct {
	meshes map[mesh.Kind]*gpuMesh
}

// NewMeshLibrary returns an empty library.
func NewMeshLibrary() *MeshLibrary {
	return &MeshLibrary{meshes: make(map[mesh.Kind]*gpuMesh)}
}

// Load builds and uploads kind. Loading a kind that is already resident is
// a no-op, so buffers are never leaked by a second request.
func (l *MeshLibrary) Load(kind mesh.Kind) error {
	if _, ok := l.meshes[kind]; ok {
		return nil
	}
	geom := mesh.Build(kind)
	if geom == nil {
		return fmt.Errorf("unknown mesh kind %v", kind)
	}

	m := &gpuMesh{indexCount: int32(len(geom.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(geom.Vertices)*mesh.VertexStride, unsafe.Pointer(&geom.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geom.Indices)*4, unsafe.Pointer(&geom.Indices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.VertexStride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.VertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, mesh.VertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	l.meshes[kind] = m
	logger.Debug("mesh loaded",
		zap.Stringer("kind", kind),
		zap.Int("vertices", len(geom.Vertices)),
		zap.Int("triangles", geom.TriangleCount()),
	)
	return nil
}

// Draw issues the indexed draw for kind. Kinds that were never loaded are
// skipped.
func (l *MeshLibrary) Draw(kind mesh.Kind) {
	m, ok := l.meshes[kind]
	if !ok {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Close deletes every buffer.
func (l *MeshLibrary) Close() {
	for kind, m := range l.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		delete(l.meshes, kind)
	}
}
