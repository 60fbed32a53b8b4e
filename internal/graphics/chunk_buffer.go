package graphics

import (
	"crafter/internal/meshing"
	"crafter/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Vertex attribute locations of the chunk shader.
const (
	attribPosition = 0
	attribColor    = 1
	attribTexCoord = 2
)

// ChunkBuffer is an uploaded chunk mesh. It owns one VAO with its vertex and
// index buffers.
type ChunkBuffer struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

var _ world.MeshHandle = (*ChunkBuffer)(nil)

// NewChunkBuffer uploads m. Must be called on the GL thread.
func NewChunkBuffer(m meshing.Mesh) *ChunkBuffer {
	b := &ChunkBuffer{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStrideBytes)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, meshing.PositionOffset*4)
	gl.EnableVertexAttribArray(attribColor)
	gl.VertexAttribPointerWithOffset(attribColor, 3, gl.FLOAT, false, stride, meshing.ColorOffset*4)
	gl.EnableVertexAttribArray(attribTexCoord)
	gl.VertexAttribPointerWithOffset(attribTexCoord, 2, gl.FLOAT, false, stride, meshing.TexCoordOffset*4)

	gl.BindVertexArray(0)
	return b
}

// Draw issues the indexed draw call. The shader must already be bound.
func (b *ChunkBuffer) Draw() {
	if b.indexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
}

// Release frees the GL objects. Safe to call more than once.
func (b *ChunkBuffer) Release() {
	if b.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.vao, b.vbo, b.ebo, b.indexCount = 0, 0, 0, 0
}

// Uploader creates ChunkBuffers for the mesh scheduler on the GL thread.
type Uploader struct{}

func (Uploader) Upload(m meshing.Mesh) world.MeshHandle {
	return NewChunkBuffer(m)
}
