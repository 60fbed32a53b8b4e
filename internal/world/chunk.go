package world

import "strconv"

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 128
	ChunkSizeZ = 16

	// ChunkVolume is the length of the per-voxel arrays.
	ChunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ
	// ColumnCount is the length of the heightmap.
	ColumnCount = ChunkSizeX * ChunkSizeZ

	// MaxLight is the brightest per-voxel light level.
	MaxLight = 15
)

// MeshHandle is an uploaded chunk mesh owned by the renderer.
type MeshHandle interface {
	Release()
}

// Chunk represents a 16x128x16 column of the world
type Chunk struct {
	X, Z int32

	key       string
	block     [ChunkVolume]uint32
	rotation  [ChunkVolume]uint8
	light     [ChunkVolume]uint8
	heightmap [ColumnCount]uint8

	mesh    MeshHandle
	version uint64
}

// NewChunk creates an empty, fully lit chunk at the specified chunk coordinates
func NewChunk(x, z int32) *Chunk {
	c := &Chunk{
		X:   x,
		Z:   z,
		key: Key(x, z),
	}
	for i := range c.light {
		c.light[i] = MaxLight
	}
	return c
}

// Key is the canonical string key of a chunk coordinate.
func Key(x, z int32) string {
	return strconv.Itoa(int(x)) + " " + strconv.Itoa(int(z))
}

// Key returns the chunk's key, "x z".
func (c *Chunk) Key() string {
	return c.key
}

// Coord returns the chunk coordinate.
func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Z: c.Z}
}

// Index converts local coordinates to a flat array index.
func Index(x, y, z int) int {
	return x*ChunkSizeY*ChunkSizeZ + y*ChunkSizeZ + z
}

// InBounds reports whether local coordinates are inside a chunk.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// Block returns the block id at local coordinates; air outside the chunk.
func (c *Chunk) Block(x, y, z int) uint32 {
	if !InBounds(x, y, z) {
		return 0
	}
	return c.block[Index(x, y, z)]
}

// SetBlock sets the block id at local coordinates.
func (c *Chunk) SetBlock(x, y, z int, id uint32) {
	if !InBounds(x, y, z) {
		return
	}
	i := Index(x, y, z)
	if c.block[i] != id {
		c.block[i] = id
		c.version++
	}
}

// Rotation returns the quarter-turn rotation of the voxel.
func (c *Chunk) Rotation(x, y, z int) uint8 {
	if !InBounds(x, y, z) {
		return 0
	}
	return c.rotation[Index(x, y, z)]
}

func (c *Chunk) SetRotation(x, y, z int, r uint8) {
	if !InBounds(x, y, z) {
		return
	}
	i := Index(x, y, z)
	if c.rotation[i] != r%4 {
		c.rotation[i] = r % 4
		c.version++
	}
}

// Light returns the light level of the voxel.
func (c *Chunk) Light(x, y, z int) uint8 {
	if !InBounds(x, y, z) {
		return MaxLight
	}
	return c.light[Index(x, y, z)]
}

func (c *Chunk) SetLight(x, y, z int, level uint8) {
	if !InBounds(x, y, z) {
		return
	}
	level = min(level, MaxLight)
	i := Index(x, y, z)
	if c.light[i] != level {
		c.light[i] = level
		c.version++
	}
}

// Height returns the heightmap entry of a column.
func (c *Chunk) Height(x, z int) uint8 {
	if x < 0 || x >= ChunkSizeX || z < 0 || z >= ChunkSizeZ {
		return 0
	}
	return c.heightmap[x*ChunkSizeZ+z]
}

func (c *Chunk) SetHeight(x, z int, h uint8) {
	if x < 0 || x >= ChunkSizeX || z < 0 || z >= ChunkSizeZ {
		return
	}
	c.heightmap[x*ChunkSizeZ+z] = h
}

// Version increases on every block, rotation or light change. Mesh builds
// record it to detect stale results.
func (c *Chunk) Version() uint64 {
	return c.version
}

// Mesh returns the current mesh handle, or nil.
func (c *Chunk) Mesh() MeshHandle {
	return c.mesh
}

// SetMesh installs a new mesh and returns the previous one for release.
func (c *Chunk) SetMesh(m MeshHandle) MeshHandle {
	old := c.mesh
	c.mesh = m
	return old
}

// Blocks copies the block array.
func (c *Chunk) Blocks() [ChunkVolume]uint32 {
	return c.block
}

// Rotations copies the rotation array.
func (c *Chunk) Rotations() [ChunkVolume]uint8 {
	return c.rotation
}

// Lights copies the light array.
func (c *Chunk) Lights() [ChunkVolume]uint8 {
	return c.light
}

// IsEmpty reports whether the chunk holds only air.
func (c *Chunk) IsEmpty() bool {
	for _, b := range c.block {
		if b != 0 {
			return false
		}
	}
	return true
}
