package meshing

import "crafter/internal/world"

// edgeLen is the size of one neighbor boundary plane.
const edgeLen = world.ChunkSizeY * world.ChunkSizeX

// edge holds the block ids of a neighbor's boundary plane, indexed y*16+t where
// t runs along the shared border.
type edge [edgeLen]uint32

// Snapshot is an immutable copy of everything one chunk build reads: the
// chunk's own arrays and the boundary planes of its four planar neighbors.
// Taken on the owning goroutine, it lets builds run without locking the world.
type Snapshot struct {
	Coord   world.ChunkCoord
	Version uint64

	blocks    [world.ChunkVolume]uint32
	rotations [world.ChunkVolume]uint8
	lights    [world.ChunkVolume]uint8

	// neighbors in ChunkCoord.Neighbors order: +x, -x, +z, -z. nil when the
	// neighbor chunk is not loaded.
	neighbors [4]*edge
}

// TakeSnapshot copies c and the touching planes of its loaded neighbors.
func TakeSnapshot(store *world.ChunkStore, c *world.Chunk) *Snapshot {
	s := &Snapshot{
		Coord:     c.Coord(),
		Version:   c.Version(),
		blocks:    c.Blocks(),
		rotations: c.Rotations(),
		lights:    c.Lights(),
	}
	if store == nil {
		return s
	}
	for i, n := range s.Coord.Neighbors() {
		nc := store.GetChunk(n.X, n.Z, false)
		if nc == nil {
			continue
		}
		e := &edge{}
		for y := 0; y < world.ChunkSizeY; y++ {
			for t := 0; t < world.ChunkSizeX; t++ {
				var id uint32
				switch i {
				case 0: // +x neighbor, its x=0 plane
					id = nc.Block(0, y, t)
				case 1: // -x neighbor, its last x plane
					id = nc.Block(world.ChunkSizeX-1, y, t)
				case 2: // +z neighbor, its z=0 plane
					id = nc.Block(t, y, 0)
				case 3: // -z neighbor, its last z plane
					id = nc.Block(t, y, world.ChunkSizeZ-1)
				}
				e[y*world.ChunkSizeX+t] = id
			}
		}
		s.neighbors[i] = e
	}
	return s
}

// blockAt returns the block id at chunk-local coordinates that may be one step
// outside the chunk horizontally. Missing neighbors and out-of-range heights
// read as air.
func (s *Snapshot) blockAt(x, y, z int) uint32 {
	if y < 0 || y >= world.ChunkSizeY {
		return 0
	}
	var e *edge
	var t int
	switch {
	case x >= world.ChunkSizeX:
		e, t = s.neighbors[0], z
	case x < 0:
		e, t = s.neighbors[1], z
	case z >= world.ChunkSizeZ:
		e, t = s.neighbors[2], x
	case z < 0:
		e, t = s.neighbors[3], x
	default:
		return s.blocks[world.Index(x, y, z)]
	}
	if e == nil {
		return 0
	}
	return e[y*world.ChunkSizeX+t]
}

// HasNeighbor reports whether neighbor i (ChunkCoord.Neighbors order) was loaded.
func (s *Snapshot) HasNeighbor(i int) bool {
	return i >= 0 && i < 4 && s.neighbors[i] != nil
}
