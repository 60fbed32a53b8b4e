package meshing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// GPU buffer layout: interleaved [position:3][color:3][texcoord:2] float32 per
// vertex, uint32 triangle-list indices, counter-clockwise front faces.
const (
	FloatsPerVertex   = 8
	VertexStrideBytes = FloatsPerVertex * 4
	VerticesPerFace   = 4
	FloatsPerFace     = FloatsPerVertex * VerticesPerFace
	IndicesPerFace    = 6

	PositionOffset = 0
	ColorOffset    = 3
	TexCoordOffset = 6
)

// SideShade darkens vertical faces relative to the top and bottom.
const SideShade = 0.75 / 16.0

// quadIndices are the two triangles of a face, relative to its first vertex.
var quadIndices = [IndicesPerFace]uint32{0, 1, 2, 2, 3, 0}

// Mesh is a finished vertex/index buffer pair.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// Empty reports whether there is nothing to draw.
func (m Mesh) Empty() bool {
	return len(m.Indices) == 0
}

func (m Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

func (m Mesh) FaceCount() int {
	return len(m.Indices) / IndicesPerFace
}

// Capacity is the dry-run counterpart of Builder: it counts the floats and
// indices an emission pass will write without writing anything.
type Capacity struct {
	Floats  int
	Indices int
}

// addFace accounts for one emitted face.
func (c *Capacity) addFace() {
	c.Floats += FloatsPerFace
	c.Indices += IndicesPerFace
}

// AddBlock accounts for every face set in mask. It takes the same arguments
// as Builder.AddBlock so both passes can be driven by one loop.
func (c *Capacity) AddBlock(_ *[6][8]float32, mask Mask, _ mgl32.Vec3, _ float32) {
	for _, d := range Directions {
		if mask.Has(d) {
			c.addFace()
		}
	}
}

// Faces returns the number of faces counted so far.
func (c Capacity) Faces() int {
	return c.Indices / IndicesPerFace
}

// Builder owns the buffers and cursors of one mesh build. Its buffers are
// allocated once from a Capacity and must not be outgrown.
type Builder struct {
	vertices []float32
	indices  []uint32

	floatCursor int
	indexCursor int
	vertexBase  uint32
}

// NewBuilder allocates buffers of exactly the planned size.
func NewBuilder(c Capacity) *Builder {
	return &Builder{
		vertices: make([]float32, c.Floats),
		indices:  make([]uint32, c.Indices),
	}
}

// EmitFace writes one quad. uv holds the four transformed texture coordinate
// pairs in the fixed corner winding.
func (b *Builder) EmitFace(d Direction, uv [8]float32, origin mgl32.Vec3, light float32) {
	if b.floatCursor+FloatsPerFace > len(b.vertices) || b.indexCursor+IndicesPerFace > len(b.indices) {
		panic(fmt.Sprintf("mesh builder overflow: face %s at %v exceeds planned capacity %d floats / %d indices",
			d, origin, len(b.vertices), len(b.indices)))
	}

	v := b.vertices[b.floatCursor : b.floatCursor+FloatsPerFace]
	for i, corner := range faceCorners[d] {
		p := corner.Add(origin)
		o := i * FloatsPerVertex
		v[o+0], v[o+1], v[o+2] = p.X(), p.Y(), p.Z()
		v[o+3], v[o+4], v[o+5] = light, light, light
		v[o+6], v[o+7] = uv[i*2], uv[i*2+1]
	}
	b.floatCursor += FloatsPerFace

	for i, idx := range quadIndices {
		b.indices[b.indexCursor+i] = idx + b.vertexBase
	}
	b.indexCursor += IndicesPerFace
	b.vertexBase += VerticesPerFace
}

// AddBlock emits the faces set in mask in the fixed direction order. faces
// holds the texture coordinates per direction. Side faces are shaded.
func (b *Builder) AddBlock(faces *[6][8]float32, mask Mask, origin mgl32.Vec3, light float32) {
	for _, d := range Directions {
		if !mask.Has(d) {
			continue
		}
		l := light
		if d.IsSide() {
			l -= SideShade
		}
		b.EmitFace(d, faces[d], origin, l)
	}
}

// Finish returns the buffers written so far.
func (b *Builder) Finish() Mesh {
	return Mesh{
		Vertices: b.vertices[:b.floatCursor],
		Indices:  b.indices[:b.indexCursor],
	}
}

// Complete reports whether the planned capacity was used exactly.
func (b *Builder) Complete() bool {
	return b.floatCursor == len(b.vertices) && b.indexCursor == len(b.indices)
}
