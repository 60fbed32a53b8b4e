package meshing

import (
	"crafter/internal/profiling"
	"crafter/internal/registry"
	"crafter/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// blockSink is implemented by both passes of a chunk build.
type blockSink interface {
	AddBlock(faces *[6][8]float32, mask Mask, origin mgl32.Vec3, light float32)
}

var (
	_ blockSink = (*Builder)(nil)
	_ blockSink = (*Capacity)(nil)
)

// visibleBlock is one block of a chunk that has at least one face to draw.
type visibleBlock struct {
	faces  [6][8]float32
	mask   Mask
	origin mgl32.Vec3
	light  float32
}

// cullMask returns the faces of the block at (x, y, z) that border a
// non-opaque voxel.
func cullMask(s *Snapshot, reg *registry.Registry, x, y, z int) Mask {
	var m Mask
	for _, d := range Directions {
		dx, dy, dz := d.Offset()
		if !reg.IsOpaque(s.blockAt(x+dx, y+dy, z+dz)) {
			m = m.With(d)
		}
	}
	return m
}

// collect walks the snapshot once and records every block with a visible face.
func collect(s *Snapshot, reg *registry.Registry, tex TexCoordSource) []visibleBlock {
	var out []visibleBlock
	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				i := world.Index(x, y, z)
				def := reg.Get(s.blocks[i])
				if def == nil || def.DrawType != registry.DrawNormal {
					continue
				}
				mask := cullMask(s, reg, x, y, z)
				if mask == 0 {
					continue
				}
				out = append(out, visibleBlock{
					faces:  blockFaces(tex, def, s.rotations[i]),
					mask:   mask,
					origin: mgl32.Vec3{float32(x), float32(y), float32(z)},
					light:  float32(s.lights[i]) / world.MaxLight,
				})
			}
		}
	}
	return out
}

func feed(sink blockSink, blocks []visibleBlock) {
	for i := range blocks {
		b := &blocks[i]
		sink.AddBlock(&b.faces, b.mask, b.origin, b.light)
	}
}

// BuildChunkMesh meshes a chunk snapshot in chunk-local coordinates. A
// capacity pass sizes the buffers exactly before the emission pass fills them.
func BuildChunkMesh(s *Snapshot, reg *registry.Registry, tex TexCoordSource) Mesh {
	defer profiling.Track("meshing.BuildChunkMesh")()

	blocks := collect(s, reg, tex)

	var c Capacity
	feed(&c, blocks)
	if c.Indices == 0 {
		return Mesh{}
	}

	b := NewBuilder(c)
	feed(b, blocks)
	return b.Finish()
}

// DryRunBlock adds the size of one block's visible faces to c.
func DryRunBlock(c *Capacity, up, down, south, north, west, east bool) {
	c.AddBlock(nil, NewMask(up, down, south, north, west, east), mgl32.Vec3{}, 0)
}

// EmitBlock writes one block's visible faces at origin.
func EmitBlock(b *Builder, faces *[6][8]float32, origin mgl32.Vec3, light float32, up, down, south, north, west, east bool) {
	b.AddBlock(faces, NewMask(up, down, south, north, west, east), origin, light)
}
